package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/mchlrhw/spdrs/internal/model"
)

// ErrMissingHost is returned when the seed URL has no host component.
var ErrMissingHost = errors.New("seed URL has no host")

// resultBuffer is the capacity of the results channel. The aggregator
// drains concurrently with the producers, so the buffer only smooths
// bursts; correctness does not depend on its size.
const resultBuffer = 64

// Scheduler orchestrates a crawl: fetch, extract, resolve, filter, dedup,
// and recurse, one goroutine per page.
type Scheduler struct {
	// fetcher is the GET capability used for every page.
	fetcher Fetcher

	// logger receives per-page diagnostics.
	logger *slog.Logger

	// limit bounds simultaneous page fetches. 0 means unlimited, the
	// reference behavior.
	limit int64
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets a custom logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithConcurrencyLimit bounds the number of pages fetched simultaneously.
// Zero or negative means unlimited fan-out.
func WithConcurrencyLimit(n int64) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewScheduler creates a Scheduler using the given Fetcher.
func NewScheduler(fetcher Fetcher, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{fetcher: fetcher}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Crawl fetches the seed page and every in-scope link reachable from it,
// each exactly once. The visit callback, when non-nil, runs on the
// aggregator goroutine for every PageResult in arrival order; arrival
// order reflects concurrent completion order and is nondeterministic.
// Crawl returns once every page goroutine has finished and the results
// channel has been drained.
//
// The seed must be an absolute URL with a host; anything else is a
// startup error and nothing is crawled.
func (s *Scheduler) Crawl(ctx context.Context, seed string, visit func(*model.PageResult)) (*model.CrawlReport, error) {
	seedURL, err := url.Parse(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if !seedURL.IsAbs() {
		return nil, fmt.Errorf("seed URL %q is not absolute", seed)
	}
	if seedURL.Host == "" {
		return nil, ErrMissingHost
	}

	scope := NewScope(seedURL)
	seen := NewSeen()
	report := model.NewCrawlReport(seed, scope.Boundary())
	results := make(chan *model.PageResult, resultBuffer)

	s.logger.Debug("restricting links", "boundary", scope.Boundary())

	var sem *semaphore.Weighted
	if s.limit > 0 {
		sem = semaphore.NewWeighted(s.limit)
	}

	var wg sync.WaitGroup
	var failed atomic.Int64

	var crawlPage func(pageURL string)
	crawlPage = func(pageURL string) {
		defer wg.Done()

		if sem != nil {
			// Acquired here, inside the page goroutine, so a parent
			// spawning children never blocks on the bound.
			if err := sem.Acquire(ctx, 1); err != nil {
				failed.Add(1)
				return
			}
			defer sem.Release(1)
		}

		s.logger.Debug("fetching", "url", pageURL)
		body, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			// Local to this page: no result, no follow-up links, and
			// sibling pages are unaffected.
			s.logger.Warn("fetch failed", "url", pageURL, "error", err)
			failed.Add(1)
			return
		}

		base, err := url.Parse(pageURL)
		if err != nil {
			failed.Add(1)
			return
		}

		raw := ExtractLinks(strings.NewReader(body))
		resolved := make(map[string]struct{}, len(raw))
		for href := range raw {
			abs, ok := Resolve(base, href)
			if !ok {
				// Unresolvable hrefs are dropped silently.
				continue
			}
			resolved[abs] = struct{}{}
		}
		filtered := scope.Filter(resolved)
		s.logger.Debug("extracted links",
			"url", pageURL,
			"found", len(raw),
			"in_scope", len(filtered),
		)

		// The page's own result goes out before any child is scheduled,
		// so it is never lost even when all its children are later
		// suppressed as duplicates.
		results <- model.NewPageResult(pageURL, filtered)

		for link := range filtered {
			if !seen.MarkIfNew(link) {
				s.logger.Debug("already seen, skipping", "url", link)
				continue
			}
			wg.Add(1)
			go crawlPage(link)
		}
	}

	// Every URL is marked before its goroutine is spawned, the seed
	// included, so a link back to an in-flight page never respawns it.
	seen.MarkIfNew(seed)
	wg.Add(1)
	go crawlPage(seed)

	// Close the channel once the in-flight counter drains; that is the
	// aggregator's signal that no producer remains.
	go func() {
		wg.Wait()
		close(results)
	}()

	for page := range results {
		report.AddPage(page)
		if visit != nil {
			visit(page)
		}
	}

	report.Failed = int(failed.Load())
	report.Elapsed = time.Since(report.StartedAt)

	s.logger.Debug("crawl finished",
		"pages", len(report.Pages),
		"failed", report.Failed,
		"elapsed", report.Elapsed,
	)

	return report, nil
}
