// Package crawler implements the spdrs crawl engine: same-origin web
// crawling with unbounded concurrent fan-out and duplicate suppression.
//
// # Architecture
//
// The package is designed around the Scheduler type, which drives one
// goroutine per crawled page. Each page goroutine fetches its URL,
// extracts raw hrefs from the markup, resolves them against the page URL,
// filters them to the seed's authority, publishes a PageResult on the
// results channel, and then spawns a goroutine for every in-scope link
// that has not been dispatched before.
//
// # Components
//
//   - Scheduler: orchestrates fetch, extract, resolve, filter, and fan-out
//   - Fetcher: the GET capability; HTTPFetcher is the net/http implementation
//   - ExtractLinks: permissive DOM-based href extraction
//   - Resolve: raw href to absolute URL resolution
//   - Scope: the seed-authority filter
//   - Seen: the atomic check-and-insert registry gating duplicate work
//
// # Concurrency
//
// The Seen registry is the only mutable state shared between page
// goroutines; every access goes through its single critical section.
// In-flight pages are tracked with a WaitGroup, and the results channel
// is closed once the WaitGroup drains, which is how the aggregator knows
// the crawl is over. An optional semaphore bounds simultaneous fetches;
// it is acquired inside each page goroutine, so scheduling a child never
// blocks the parent and the bound cannot deadlock the fan-out.
//
// # Usage
//
//	sched := crawler.NewScheduler(fetcher, crawler.WithLogger(logger))
//	report, err := sched.Crawl(ctx, "http://example.com/", func(page *model.PageResult) {
//		fmt.Println(page.URL)
//	})
//
// # Termination
//
// Termination relies entirely on the finite, shrinking set of unseen
// in-scope URLs. A site that perpetually mints unseen URLs (infinite
// pagination and the like) crawls without bound; that is an accepted
// limitation, not something the engine works around.
package crawler
