package crawler

import "sync"

// Seen is the process-wide registry of already-dispatched absolute URLs.
// It is the only mutable state shared between page goroutines; every
// access goes through MarkIfNew's single critical section.
//
// Design decision: membership test and insertion are one indivisible
// operation. A separate "contains" check followed by a separate insert is
// a race that lets two concurrent discoverers dispatch the same URL; the
// combined check-and-insert eliminates that race entirely.
type Seen struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewSeen creates an empty registry. It lives for the duration of one
// crawl run and is never cleared.
func NewSeen() *Seen {
	return &Seen{urls: make(map[string]struct{})}
}

// MarkIfNew records the URL and reports whether this was its first
// presentation. It returns true exactly once per URL regardless of how
// many goroutines present it concurrently.
func (s *Seen) MarkIfNew(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[url]; ok {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}

// Len returns the number of distinct URLs recorded so far.
func (s *Seen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}
