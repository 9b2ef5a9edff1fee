package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleTool() Tool {
	return Tool{
		ID:          "t-1",
		Name:        "Sitepaige",
		Description: "AI web developer that generates complete websites",
		Category:    "Website Builder",
		Pricing:     PricingPaid,
		Tags:        []string{"#AIWebsiteBuilder", "#NoCode"},
	}
}

func TestNewFilter_Normalizes(t *testing.T) {
	f := NewFilter("", FilterAll, "")
	assert.Nil(t, f.Search)
	assert.Nil(t, f.Category)
	assert.Nil(t, f.Pricing)

	f = NewFilter("ai", "Education", "Free")
	require.NotNil(t, f.Search)
	require.NotNil(t, f.Category)
	require.NotNil(t, f.Pricing)
	assert.Equal(t, "ai", *f.Search)
	assert.Equal(t, "Education", *f.Category)
	assert.Equal(t, "Free", *f.Pricing)
}

func TestFilterMatches(t *testing.T) {
	tl := sampleTool()

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty_filter", filter: Filter{}, want: true},
		{name: "search_name_case_insensitive", filter: Filter{Search: strPtr("SITEPAIGE")}, want: true},
		{name: "search_description", filter: Filter{Search: strPtr("complete web")}, want: true},
		{name: "search_tag", filter: Filter{Search: strPtr("nocode")}, want: true},
		{name: "search_long_description_not_searched", filter: Filter{Search: strPtr("zzz")}, want: false},
		{name: "category_exact", filter: Filter{Category: strPtr("Website Builder")}, want: true},
		{name: "category_case_sensitive", filter: Filter{Category: strPtr("website builder")}, want: false},
		{name: "pricing_mismatch", filter: Filter{Pricing: strPtr(PricingFree)}, want: false},
		{
			name:   "conjunction_all_match",
			filter: Filter{Search: strPtr("ai"), Category: strPtr("Website Builder"), Pricing: strPtr(PricingPaid)},
			want:   true,
		},
		{
			name:   "conjunction_one_fails",
			filter: Filter{Search: strPtr("ai"), Category: strPtr("Website Builder"), Pricing: strPtr(PricingFree)},
			want:   false,
		},
		{name: "regex_chars_are_literal", filter: Filter{Search: strPtr(".*")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tl))
		})
	}
}

func TestPatchApply(t *testing.T) {
	orig := sampleTool()

	assert.True(t, Patch{}.IsEmpty())
	assert.Equal(t, orig, Patch{}.Apply(orig))

	featured := true
	tags := []string{"#new"}
	p := Patch{Name: strPtr("Renamed"), Featured: &featured, Tags: &tags}
	assert.False(t, p.IsEmpty())

	got := p.Apply(orig)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.Featured)
	assert.Equal(t, []string{"#new"}, got.Tags)
	assert.Equal(t, orig.Description, got.Description)
	assert.Equal(t, orig.Category, got.Category)

	tags[0] = "#mutated"
	assert.Equal(t, "#new", got.Tags[0], "patched tags must not alias the request")
}

func TestNewFromCreateRequest(t *testing.T) {
	tl := NewFromCreateRequest(CreateRequest{Name: "X", Category: "Audio", Pricing: PricingFree})

	assert.NotEmpty(t, tl.ID)
	assert.NotNil(t, tl.Tags)
	assert.Empty(t, tl.Tags)
	assert.False(t, tl.CreatedAt.IsZero())
	assert.Equal(t, tl.CreatedAt, tl.UpdatedAt)
}

func TestCategories_StartWithAllAndAreCopies(t *testing.T) {
	c := Categories()
	require.NotEmpty(t, c)
	assert.Equal(t, FilterAll, c[0])
	assert.Contains(t, c, "Education")

	c[0] = "mutated"
	assert.Equal(t, FilterAll, Categories()[0])
}
