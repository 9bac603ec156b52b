package crawler

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractLinks parses page markup and returns the set of distinct raw href
// values found on anchor (<a>) and link (<link>) elements.
//
// Design decision: We use golang.org/x/net/html rather than a regex
// because:
//  1. It correctly handles malformed HTML common on the web
//  2. It finds hrefs regardless of attribute order or quoting style
//  3. More maintainable than complex regex patterns
//
// Parsing is permissive: x/net/html recovers from malformed markup, so
// extraction yields whatever hrefs are locatable instead of aborting.
// Pages with no anchor or link elements yield an empty set.
func ExtractLinks(content io.Reader) map[string]struct{} {
	links := make(map[string]struct{})

	doc, err := html.Parse(content)
	if err != nil {
		// html.Parse only fails on reader errors; there is nothing to
		// extract from a body that could not be read.
		return links
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "a" || n.Data == "link") {
			if href := getAttr(n, "href"); !skipHref(href) {
				links[href] = struct{}{}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

// skipHref reports whether an href value carries no crawlable target.
// Non-navigational schemes and bare fragments never resolve to pages.
func skipHref(href string) bool {
	if href == "" || href == "#" {
		return true
	}
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}
