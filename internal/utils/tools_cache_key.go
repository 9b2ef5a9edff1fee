package utils

import (
	"strconv"
	"strings"

	"github.com/geocoder89/toolhub/internal/domain/tool"
)

// ToolsListCachePrefix namespaces every catalog list entry so a single
// prefix invalidation drops them all.
const ToolsListCachePrefix = "tools:list:v1:"

// BuildToolsListCacheKey normalizes a filter into a cache key under the
// given invalidation generation. Category and pricing are exact-match so
// they keep their case; search is folded.
func BuildToolsListCacheKey(gen int64, f tool.Filter) string {
	s := ""
	if f.Search != nil {
		s = strings.ToLower(*f.Search)
	}
	c := ""
	if f.Category != nil {
		c = *f.Category
	}
	p := ""
	if f.Pricing != nil {
		p = *f.Pricing
	}

	return ToolsListCachePrefix +
		"g" + strconv.FormatInt(gen, 10) +
		":q=" + escapeKeyPart(s) +
		":category=" + escapeKeyPart(c) +
		":pricing=" + escapeKeyPart(p)
}

// escapeKeyPart keeps user input from forging another key's separators.
func escapeKeyPart(s string) string {
	return strings.NewReplacer("%", "%25", ":", "%3A").Replace(s)
}
