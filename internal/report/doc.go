// Package report renders completed crawl runs in several formats.
//
// The text format mirrors the live crawl output: one line per page
// followed by an indented bullet per in-scope link, in arrival order.
// JSON serves tool integration, and Markdown produces a shareable
// document with a summary table.
package report
