// Package model defines the data structures shared across the spdrs crawl
// engine: per-page crawl results and the per-run crawl report.
package model
