package crawler

import (
	"net/url"
	"strings"
)

// Scope restricts a crawl to the seed's authority. The boundary is the
// seed's host[:port], captured once at startup and immutable for the run.
//
// Matching is a serialized-URL prefix comparison against the boundary under
// either HTTP scheme: authority-based, not path-based, with no
// normalization beyond what the resolver already performed. Any path under
// the matching host and port is in scope.
type Scope struct {
	httpPrefix  string
	httpsPrefix string
	boundary    string
}

// NewScope captures the scope boundary from the parsed seed URL.
func NewScope(seed *url.URL) Scope {
	boundary := seed.Host
	return Scope{
		httpPrefix:  "http://" + boundary,
		httpsPrefix: "https://" + boundary,
		boundary:    boundary,
	}
}

// Boundary returns the host[:port] the scope was built from.
func (s Scope) Boundary() string {
	return s.boundary
}

// Allows reports whether an absolute URL falls inside the scope boundary.
func (s Scope) Allows(absURL string) bool {
	return strings.HasPrefix(absURL, s.httpPrefix) ||
		strings.HasPrefix(absURL, s.httpsPrefix)
}

// Filter retains only the URLs that fall inside the scope boundary.
// The input set is not modified.
func (s Scope) Filter(urls map[string]struct{}) map[string]struct{} {
	kept := make(map[string]struct{}, len(urls))
	for u := range urls {
		if s.Allows(u) {
			kept[u] = struct{}{}
		}
	}
	return kept
}
