package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSecureHandler(t *testing.T) {
	t.Parallel()

	t.Run("masks sensitive keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)

		logger.Info("request sent",
			"cookie", "session=abc123",
			"authorization", "Bearer deadbeef",
			"url", "http://example.com/",
		)

		out := buf.String()
		if strings.Contains(out, "session=abc123") {
			t.Error("cookie value leaked into log output")
		}
		if strings.Contains(out, "deadbeef") {
			t.Error("authorization value leaked into log output")
		}
		if !strings.Contains(out, MaskValue) {
			t.Error("expected masked values in log output")
		}
		if !strings.Contains(out, "http://example.com/") {
			t.Error("non-sensitive attribute should be preserved")
		}
	})

	t.Run("masks sensitive values under innocent keys", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)

		logger.Info("header set", "value", "Bearer super-secret-token")

		if strings.Contains(buf.String(), "super-secret-token") {
			t.Error("bearer token leaked into log output")
		}
	})

	t.Run("masks keys inside groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)

		logger.Info("site config loaded",
			slog.Group("site", "cookie", "auth=xyz", "host", "example.com"),
		)

		out := buf.String()
		if strings.Contains(out, "auth=xyz") {
			t.Error("grouped cookie value leaked into log output")
		}
		if !strings.Contains(out, "example.com") {
			t.Error("grouped non-sensitive attribute should be preserved")
		}
	})

	t.Run("masks attrs added via With", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true).With("token", "tok-12345")

		logger.Info("crawl started")

		if strings.Contains(buf.String(), "tok-12345") {
			t.Error("With-attached token leaked into log output")
		}
	})

	t.Run("verbose controls level", func(t *testing.T) {
		t.Parallel()

		var quiet bytes.Buffer
		NewSecureLogger(&quiet, false).Debug("hidden")
		if quiet.Len() != 0 {
			t.Errorf("expected no debug output when not verbose, got %q", quiet.String())
		}

		var loud bytes.Buffer
		NewSecureLogger(&loud, true).Debug("visible")
		if !strings.Contains(loud.String(), "visible") {
			t.Error("expected debug output when verbose")
		}
	})
}
