package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mchlrhw/spdrs/internal/model"
)

// sampleReport builds a small two-page report for writer tests.
func sampleReport() *model.CrawlReport {
	report := model.NewCrawlReport("http://example.com/", "example.com")
	report.AddPage(model.NewPageResult("http://example.com/", map[string]struct{}{
		"http://example.com/a": {},
		"http://example.com/b": {},
	}))
	report.AddPage(model.NewPageResult("http://example.com/a", nil))
	report.Failed = 1
	report.Elapsed = 1500 * time.Millisecond
	return report
}

func TestTextWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders pages with indented bullets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "http://example.com/\n" +
			"  * http://example.com/a\n" +
			"  * http://example.com/b\n" +
			"http://example.com/a\n"
		if buf.String() != want {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("summary block is optional", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf, WithSummary(true)).Write(sampleReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "2 pages, 2 links, 1 failed fetches") {
			t.Errorf("expected summary line, got:\n%s", buf.String())
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded model.CrawlReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Seed != "http://example.com/" {
		t.Errorf("unexpected seed: %q", decoded.Seed)
	}
	if len(decoded.Pages) != 2 {
		t.Errorf("expected 2 pages, got %d", len(decoded.Pages))
	}
	if decoded.Failed != 1 {
		t.Errorf("expected 1 failed fetch, got %d", decoded.Failed)
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# spdrs Crawl Report",
		"## Pages",
		"`http://example.com/`",
		"http://example.com/a",
		"example.com",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected markdown output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	multi := NewMultiWriter(NewTextWriter(&first), NewTextWriter(&second))

	if _, err := multi.Write(sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.String() != second.String() {
		t.Error("expected identical output from both writers")
	}
	if first.Len() == 0 {
		t.Error("expected output to be written")
	}
}
