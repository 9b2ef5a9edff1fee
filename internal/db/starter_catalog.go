package db

import "github.com/geocoder89/toolhub/internal/domain/tool"

// starterCatalog is the initial directory content inserted by SeedTools.
var starterCatalog = []tool.CreateRequest{
	{
		Name:            "Sitepaige",
		Description:     "AI web developer that generates complete websites with frontend, backend, database, and APIs from natural language descriptions. Free export with full code ownership.",
		LongDescription: "AI web developer that generates complete websites with frontend, backend, database, and APIs from natural language descriptions. Free export with full code ownership. Perfect for rapid prototyping and MVP development.",
		Category:        "Website Builder",
		Pricing:         "Paid",
		Tags:            []string{"#AIWebsiteBuilder", "#NoCode", "#FullStack"},
		Image:           "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=500&h=300&fit=crop",
		URL:             "https://sitepaige.com",
		Featured:        true,
	},
	{
		Name:            "Quickads",
		Description:     "AI ad generator with a 20M+ ad library, fast image and video creation, and direct publishing tools for small businesses, agencies, and marketing teams.",
		LongDescription: "AI ad generator with a 20M+ ad library, fast image and video creation, and direct publishing tools for small businesses, agencies, and marketing teams. Create professional ads in minutes.",
		Category:        "Advertising",
		Pricing:         "Paid",
		Tags:            []string{"#AIAdvertising", "#MetaAds", "#AdCreation"},
		Image:           "https://images.unsplash.com/photo-1533750349088-cd871a92f312?w=500&h=300&fit=crop",
		URL:             "https://quickads.ai",
	},
	{
		Name:            "Do It Free",
		Description:     "DoItFree.ai turns how to searches into structured learning paths with curated resources, videos, and communities, helping you learn any skill for free, step by step.",
		LongDescription: "DoItFree.ai turns how to searches into structured learning paths with curated resources, videos, and communities, helping you learn any skill for free, step by step. Perfect for self-learners.",
		Category:        "Education",
		Pricing:         "Free",
		Tags:            []string{"#AILearning", "#LearningTool", "#Education"},
		Image:           "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?w=500&h=300&fit=crop",
		URL:             "https://doitfree.ai",
	},
	{
		Name:            "Radiant",
		Description:     "Radiant captures Mac meetings and executes the follow-up work. Sends emails in Gmail, and updates in Notion without prompts or manual setup.",
		LongDescription: "Radiant captures Mac meetings and executes the follow-up work. Sends emails in Gmail, and updates in Notion without prompts or manual setup. Automate your meeting workflow completely.",
		Category:        "Productivity",
		Pricing:         "Free",
		Tags:            []string{"#AIAssistant", "#AIMeetings", "#Productivity"},
		Image:           "https://images.unsplash.com/photo-1553877522-43269d4ea984?w=500&h=300&fit=crop",
		URL:             "https://radiant.ai",
	},
	{
		Name:            "Hostinger Horizons",
		Description:     "Hostinger Horizons is a no-code builder that uses conversational AI to turn plain-language prompts into web apps, with Supabase integration, hosting, and real-time editing included.",
		LongDescription: "Hostinger Horizons is a no-code builder that uses conversational AI to turn plain-language prompts into web apps, with Supabase integration, hosting, and real-time editing included. Build complex apps without writing code.",
		Category:        "NoCode",
		Pricing:         "Freemium",
		Tags:            []string{"#AIApps", "#AIWebDevelopment", "#NoCode"},
		Image:           "https://images.unsplash.com/photo-1551434678-e076c223a692?w=500&h=300&fit=crop",
		URL:             "https://hostinger.com",
	},
	{
		Name:            "Higgsfield",
		Description:     "AI video platform with precision camera control for filmmakers and creators. Generate cinematic shots using crash zooms, dolly moves, and creative angles.",
		LongDescription: "AI video platform with precision camera control for filmmakers and creators. Generate cinematic shots using crash zooms, dolly moves, and creative angles. Multi-model access including Sora 2 with unlimited generations on paid plans.",
		Category:        "Video Generation",
		Pricing:         "Freemium",
		Tags:            []string{"#AIVideo", "#GenerativeVideo", "#VideoCreation"},
		Image:           "https://images.unsplash.com/photo-1492691527719-9d1e07e534b4?w=500&h=300&fit=crop",
		URL:             "https://higgsfield.ai",
		Featured:        true,
	},
	{
		Name:            "BeFreed",
		Description:     "AI learning app that converts book summaries into short audio lessons with flashcards, an AI tutor, and adaptive learning plans for busy schedules.",
		LongDescription: "AI learning app that converts book summaries, podcasts, and articles into short audio lessons with flashcards, an AI tutor, and adaptive learning plans for busy schedules. Learn on the go.",
		Category:        "Education",
		Pricing:         "Freemium",
		Tags:            []string{"#AILearning", "#microlearning", "#AudioLearning"},
		Image:           "https://images.unsplash.com/photo-1456513080510-7bf3a84b82f8?w=500&h=300&fit=crop",
		URL:             "https://befreed.ai",
	},
	{
		Name:            "CoTester",
		Description:     "AI testing agent that auto-generates self-healing test cases from JIRA stories, adapts to UI changes mid-execution, and runs across real browsers.",
		LongDescription: "AI testing agent that auto-generates self-healing test cases from JIRA stories, adapts to UI changes mid-execution, and runs across real browsers with human checkpoints for enterprise control.",
		Category:        "Automation",
		Pricing:         "Paid",
		Tags:            []string{"#AITesting", "#TestAutomation", "#QA"},
		Image:           "https://images.unsplash.com/photo-1518770660439-4636190af475?w=500&h=300&fit=crop",
		URL:             "https://cotester.ai",
	},
	{
		Name:            "isFake.ai",
		Description:     "Multi-modal AI detector that analyzes text, images, video, and audio for synthetic patterns, providing confidence scores and visual explanations.",
		LongDescription: "Multi-modal AI detector that analyzes text, images, video, and audio for synthetic patterns, providing confidence scores and visual explanations for content verification.",
		Category:        "AI Detection",
		Pricing:         "Freemium",
		Tags:            []string{"#AIDetection", "#ContentVerification", "#DeepFake"},
		Image:           "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=500&h=300&fit=crop",
		URL:             "https://isfake.ai",
	},
	{
		Name:            "HeyGen",
		Description:     "Create high-quality videos with HeyGen AI video generator. Featuring Sora2, a multilingual platform that creates professional content in minutes.",
		LongDescription: "Create high-quality videos with HeyGen AI video generator. Featuring Sora2, a multilingual platform that creates professional, multilingual content in minutes. Now featuring Sora2, for instant scene and B-roll generation.",
		Category:        "Text-to-Video",
		Pricing:         "Paid",
		Tags:            []string{"#AIavatars", "#UGC", "#Sora2"},
		Image:           "https://images.unsplash.com/photo-1492691527719-9d1e07e534b4?w=500&h=300&fit=crop",
		URL:             "https://heygen.com",
	},
	{
		Name:            "Galaxy AI",
		Description:     "Galaxy.ai combines GPT, Claude, Gemini, Midjourney, Sora 2, Nano Banana, and thousands more into one affordable plan.",
		LongDescription: "Galaxy.ai combines GPT, Claude, Gemini, Midjourney, Sora 2, Nano Banana, and thousands more into one affordable $15 monthly plan. Create text, images, video, audio, and code from a single platform.",
		Category:        "Productivity",
		Pricing:         "Paid",
		Tags:            []string{"#AIToolsHub", "#AllInOneAI", "#MultiModel"},
		Image:           "https://images.unsplash.com/photo-1451187580459-43490279c0fa?w=500&h=300&fit=crop",
		URL:             "https://galaxy.ai",
	},
	{
		Name:            "Arcads",
		Description:     "Arcads uses AI to turn your text scripts into complete video ads. Choose an AI actor and get a finished video with lip sync, music, and captions.",
		LongDescription: "Arcads uses AI to turn your text scripts into complete video ads. Choose an AI actor and get a finished video with lip sync, music, and captions. Perfect for marketing teams.",
		Category:        "Video Generation",
		Pricing:         "Freemium",
		Tags:            []string{"#UGC", "#AIAds", "#AIMarketing"},
		Image:           "https://images.unsplash.com/photo-1485846234645-a62644f84728?w=500&h=300&fit=crop",
		URL:             "https://arcads.ai",
	},
	{
		Name:            "Perplexity AI",
		Description:     "Perplexity AI is an advanced AI-powered search engine that provides accurate, real-time answers with citations. Get FREE 1 month Pro account at https://pplx.ai/vongocdiem97799",
		LongDescription: "Perplexity AI revolutionizes how you search and discover information online. Unlike traditional search engines, Perplexity uses advanced AI models to understand your questions and provide direct, accurate answers with proper citations. Key features include: Real-time web search with AI-powered summaries, Multi-source citation for transparency, Voice search capabilities, Follow-up question suggestions, and Pro mode with GPT-4 and Claude access. 🎁 Special Offer: Claim your FREE 1 month Pro account at https://pplx.ai/vongocdiem97799 to unlock unlimited Pro searches, advanced AI models, and priority support!",
		Category:        "Productivity",
		Pricing:         "Freemium",
		Tags:            []string{"#AISearch", "#Research", "#Productivity", "#FreeTrial"},
		Image:           "https://images.unsplash.com/photo-1488590528505-98d2b5aba04b?w=500&h=300&fit=crop",
		URL:             "https://pplx.ai/vongocdiem97799",
		Featured:        true,
	},
	{
		Name:            "Comet Browser",
		Description:     "Comet is an AI-native browser that integrates ChatGPT, Claude, and Gemini directly into your browsing experience. Claim FREE 1 month Pro at https://pplx.ai/vongocdiem97799",
		LongDescription: "Comet Browser redefines web browsing by seamlessly integrating powerful AI assistants directly into your browser. No more switching tabs or copying text between windows. Key features include: Built-in ChatGPT, Claude, and Gemini integration, AI-powered summarization of web pages, Smart tab management with AI organization, Privacy-focused browsing with ad-blocking, Real-time translation and content explanation, and Instant answers without leaving your current page. 🎁 Special Launch Offer: Get FREE 1 month Pro access at https://pplx.ai/vongocdiem97799 - Experience the future of AI-powered browsing with unlimited AI queries, advanced models access, and premium features!",
		Category:        "Productivity",
		Pricing:         "Freemium",
		Tags:            []string{"#AIBrowser", "#Productivity", "#ChatGPT", "#FreeTrial"},
		Image:           "https://images.unsplash.com/photo-1547954575-855750c57bd3?w=500&h=300&fit=crop",
		URL:             "https://pplx.ai/vongocdiem97799",
		Featured:        true,
	},
}
