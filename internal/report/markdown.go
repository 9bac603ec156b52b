package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/mchlrhw/spdrs/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown, designed for
// documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CrawlReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writePages(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with crawl information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.CrawlReport) {
	md.H1("spdrs Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", "`" + report.Seed + "`"},
			{"Boundary", "`" + report.Boundary + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.String()},
			{"Pages", strconv.Itoa(len(report.Pages))},
			{"Links", strconv.Itoa(report.LinkCount())},
			{"Failed Fetches", strconv.Itoa(report.Failed)},
		},
	})
	md.PlainText("")
}

// writePages writes each page and its discovered links, in arrival order.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Pages")
	md.PlainText("")

	if len(report.Pages) == 0 {
		md.PlainText("No pages were crawled.")
		md.PlainText("")
		return
	}

	for _, page := range report.Pages {
		md.PlainTextf("`%s`", page.URL)
		md.PlainText("")
		if len(page.Links) > 0 {
			md.BulletList(page.Links...)
			md.PlainText("")
		}
	}
}
