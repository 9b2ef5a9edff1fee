package tool

import "strings"

// FilterAll is the sentinel the UI sends for "no category/pricing filter".
const FilterAll = "All"

// Filter is a conjunction of optional predicates. A nil field imposes no
// constraint.
type Filter struct {
	Search   *string
	Category *string
	Pricing  *string
}

// NewFilter normalizes raw query values: an empty search and an empty or
// "All" category/pricing are dropped.
func NewFilter(search, category, pricing string) Filter {
	var f Filter

	if search != "" {
		f.Search = &search
	}
	if category != "" && category != FilterAll {
		f.Category = &category
	}
	if pricing != "" && pricing != FilterAll {
		f.Pricing = &pricing
	}

	return f
}

// Matches evaluates the filter against a single tool. Search is a
// case-insensitive substring test over name, description and tags.
func (f Filter) Matches(t Tool) bool {
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Pricing != nil && t.Pricing != *f.Pricing {
		return false
	}
	if f.Search != nil && !matchesSearch(t, strings.ToLower(*f.Search)) {
		return false
	}
	return true
}

func matchesSearch(t Tool, term string) bool {
	if strings.Contains(strings.ToLower(t.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of t.
func (t Tool) Clone() Tool {
	t.Tags = cloneTags(t.Tags)
	return t
}
