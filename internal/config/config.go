package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout applies to each individual page fetch. A crawl has no
	// overall deadline; a hung fetch stalls only its own page goroutine, so
	// the per-request timeout is what keeps a run from wedging on one
	// unresponsive server.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency of 0 means unbounded fan-out: one goroutine per
	// discovered page with no ceiling. Termination then relies on the
	// finite set of unseen in-scope URLs. Set a positive value via the
	// --concurrency flag to bound simultaneous fetches.
	DefaultConcurrency = 0

	// DefaultUserAgent identifies spdrs in HTTP requests. A descriptive
	// User-Agent lets operators identify crawler traffic in their logs.
	DefaultUserAgent = "spdrs/1.0 (+https://github.com/mchlrhw/spdrs)"

	// DefaultMaxBodySize limits the response body read per page. 5MB covers
	// any realistic HTML page while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "spdrs"
)

// Config holds all configuration options for a crawl run.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
type Config struct {
	// Seed is the URL the crawl starts from. It must parse as an absolute
	// URL with a host component.
	Seed string

	// Timeout is the per-request fetch timeout.
	Timeout time.Duration

	// Concurrency bounds simultaneous page fetches. 0 means unlimited.
	Concurrency int64

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize caps how much of each response body is read.
	MaxBodySize int64

	// Verbose enables debug-level log output on stderr.
	Verbose bool

	// ConfigFilePath is an explicit path to the site-configuration file.
	// If empty, .spdrs is searched for in the current directory and then
	// in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-host settings loaded from the config file.
	SiteConfigs *File

	// JSONReport switches the end-of-run report to JSON.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport switches the end-of-run report to Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	// Parent directories are created as needed.
	ReportFile string

	// SaveToDB archives the completed run in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	DBDir string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for spdrs.
// On Linux: ~/.local/share/spdrs
// On macOS: ~/Library/Application Support/spdrs
// On Windows: %LOCALAPPDATA%\spdrs
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for spdrs.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found; fixing one error often makes the
// rest irrelevant. Called once after CLI parsing, before any crawling.
func (c *Config) Validate() error {
	if c.Seed == "" {
		return ErrNoSeed
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency < 0 {
		return ErrInvalidConcurrency
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
