package tool

var categories = []string{
	FilterAll,
	"Website Builder",
	"Advertising",
	"Education",
	"Productivity",
	"NoCode",
	"Video Generation",
	"Automation",
	"AI Detection",
	"Text-to-Video",
	"Marketing",
	"Writing",
	"Image Generation",
	"Audio",
	"Code Assistant",
}

// Categories returns the fixed category list shown to clients, "All" first.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}
