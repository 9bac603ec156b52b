package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mchlrhw/spdrs/internal/model"
)

// TextWriter outputs the crawl in plain text: each page's URL on its own
// line followed by one indented bullet per in-scope link, in arrival
// order. This is the same shape the CLI streams during a live crawl, so a
// text report file matches what scrolled past on the terminal.
type TextWriter struct {
	baseWriter

	// summary appends a trailing pages/links/failures summary block.
	summary bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithSummary appends a short summary block after the page listing.
func WithSummary(enabled bool) TextWriterOption {
	return func(w *TextWriter) {
		w.summary = enabled
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in plain text.
func (w *TextWriter) Write(report *model.CrawlReport) (int, error) {
	var sb strings.Builder

	for _, page := range report.Pages {
		WritePage(&sb, page)
	}

	if w.summary {
		fmt.Fprintf(&sb, "\n%d pages, %d links, %d failed fetches in %s\n",
			len(report.Pages),
			report.LinkCount(),
			report.Failed,
			report.Elapsed.Round(time.Millisecond),
		)
	}

	return w.output.Write([]byte(sb.String()))
}

// WritePage renders a single page result in the text format. The CLI uses
// it to stream results as they arrive; TextWriter uses it for the full
// report so both outputs stay identical.
func WritePage(out io.Writer, page *model.PageResult) {
	fmt.Fprintln(out, page.URL)
	for _, link := range page.Links {
		fmt.Fprintf(out, "  * %s\n", link)
	}
}
