package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, cfg.Concurrency)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("expected default user agent %q, got %q", DefaultUserAgent, cfg.UserAgent)
	}
	if cfg.MaxBodySize != int64(DefaultMaxBodySize) {
		t.Errorf("expected default max body size %d, got %d", DefaultMaxBodySize, cfg.MaxBodySize)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Seed = "http://example.com/"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config passes",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing seed",
			mutate:  func(c *Config) { c.Seed = "" },
			wantErr: ErrNoSeed,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Concurrency = -1 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "negative max body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name: "json and markdown conflict",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestXDGDataDir(t *testing.T) {
	t.Parallel()

	dir := XDGDataDir()

	if dir == "" {
		t.Fatal("expected a non-empty data directory")
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("expected data dir to end in %q, got %q", AppName, dir)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads site settings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `
defaults:
  userAgent: "custom-agent/2.0"
sites:
  example.com:
    cookie: "session=abc"
    headers:
      Authorization: "Bearer token"
  intranet:8080:
    cookie: "auth=xyz"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		site := cf.GetSiteConfig("example.com")
		if site.Cookie != "session=abc" {
			t.Errorf("expected cookie from site entry, got %q", site.Cookie)
		}
		if site.UserAgent != "custom-agent/2.0" {
			t.Errorf("expected user agent from defaults, got %q", site.UserAgent)
		}
		if site.Headers["Authorization"] != "Bearer token" {
			t.Errorf("expected authorization header, got %v", site.Headers)
		}

		unknown := cf.GetSiteConfig("nowhere.example")
		if unknown.Cookie != "" {
			t.Errorf("expected no cookie for unknown host, got %q", unknown.Cookie)
		}
		if unknown.UserAgent != "custom-agent/2.0" {
			t.Errorf("expected defaults for unknown host, got %q", unknown.UserAgent)
		}
	})

	t.Run("missing file is ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sites: ["), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected an error for malformed yaml")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins when it exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "my-config")
		if err := os.WriteFile(path, []byte("sites: {}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit but absent path yields empty", func(t *testing.T) {
		t.Parallel()

		absent := filepath.Join(t.TempDir(), "absent")
		if got := FindConfigFile(absent); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})
}

func TestSiteConfigMerge(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: SiteConfig{
			Headers: map[string]string{"X-Base": "1"},
		},
		Sites: map[string]SiteConfig{
			"h:8000": {
				Headers: map[string]string{"X-Site": "2"},
			},
		},
	}

	merged := cf.GetSiteConfig("h:8000")

	if !strings.Contains(merged.Headers["X-Site"], "2") {
		t.Errorf("expected site header present, got %v", merged.Headers)
	}
	// Site headers merge over, not replace, the defaults.
	if merged.Headers["X-Base"] != "1" {
		t.Errorf("expected default header retained, got %v", merged.Headers)
	}
}
