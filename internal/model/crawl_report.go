package model

import "time"

// CrawlReport summarizes one complete crawl run. Pages appear in arrival
// order, which reflects concurrent completion order and is nondeterministic
// across runs.
type CrawlReport struct {
	// Seed is the URL the crawl started from.
	Seed string `json:"seed"`

	// Boundary is the seed's host[:port]; only URLs under this authority
	// were fetched.
	Boundary string `json:"boundary"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the crawl.
	Elapsed time.Duration `json:"elapsed"`

	// Pages contains one result per successfully fetched page, in the
	// order the aggregator received them.
	Pages []*PageResult `json:"pages"`

	// Failed counts pages whose fetch ended in a transport error or a
	// non-success status. Failed pages yield no PageResult.
	Failed int `json:"failed"`
}

// NewCrawlReport creates an empty report for the given seed and boundary.
func NewCrawlReport(seed, boundary string) *CrawlReport {
	return &CrawlReport{
		Seed:      seed,
		Boundary:  boundary,
		StartedAt: time.Now(),
		Pages:     make([]*PageResult, 0),
	}
}

// AddPage appends a page result in arrival order.
func (r *CrawlReport) AddPage(page *PageResult) {
	r.Pages = append(r.Pages, page)
}

// LinkCount returns the total number of in-scope links across all pages.
func (r *CrawlReport) LinkCount() int {
	total := 0
	for _, p := range r.Pages {
		total += len(p.Links)
	}
	return total
}
