package model

import "sort"

// PageResult holds the in-scope links discovered on one successfully
// fetched page. It is created once per page, is immutable after
// construction, and ownership transfers to the aggregator when it is
// sent on the results channel.
//
// Design decision: Links is a sorted slice rather than a map-backed set
// because:
//  1. The link set is fixed at construction time; no membership tests follow
//  2. Sorted links make per-page output and tests deterministic
//  3. A slice serializes naturally to JSON and SQLite
type PageResult struct {
	// URL is the absolute URL of the fetched page.
	URL string `json:"url"`

	// Links contains the deduplicated, in-scope absolute links found on
	// the page, in lexical order. Empty for pages without in-scope links.
	Links []string `json:"links"`
}

// NewPageResult creates a PageResult from a set of discovered links.
// The set keys are copied and sorted; the input map is not retained.
func NewPageResult(url string, links map[string]struct{}) *PageResult {
	sorted := make([]string, 0, len(links))
	for link := range links {
		sorted = append(sorted, link)
	}
	sort.Strings(sorted)

	return &PageResult{
		URL:   url,
		Links: sorted,
	}
}

// HasLink reports whether the result contains the given link.
func (p *PageResult) HasLink(link string) bool {
	i := sort.SearchStrings(p.Links, link)
	return i < len(p.Links) && p.Links[i] == link
}
