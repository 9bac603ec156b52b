package crawler

import (
	"net/url"
	"strings"
)

// Resolve turns a raw href into an absolute URL against the given base.
//
//   - Already-absolute hrefs are used as-is.
//   - Scheme-relative hrefs (//host/path) take the base's scheme.
//   - Everything else resolves against the base with standard URL-joining
//     semantics (dot-segment resolution, query and fragment replacement).
//
// The second return value is false when the href cannot be turned into a
// valid absolute URL. Such links are dropped by the caller; resolution
// failure is never a crawl-fatal condition.
func Resolve(base *url.URL, raw string) (string, bool) {
	if strings.HasPrefix(raw, "//") {
		raw = base.Scheme + ":" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if u.IsAbs() {
		return u.String(), true
	}

	resolved := base.ResolveReference(u)
	if !resolved.IsAbs() || resolved.Host == "" {
		return "", false
	}
	return resolved.String(), true
}
