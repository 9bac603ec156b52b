package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mchlrhw/spdrs/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for spdrs.
// The root command itself performs the crawl; subcommands cover the
// history archive and version information.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spdrs <url>",
		Short: "Concurrent same-origin web crawler",
		Long: `spdrs crawls a website starting from a seed URL.

Every fetched page is parsed for anchor and link elements, discovered
URLs are resolved against the page they were found on, and only URLs
within the seed's origin (same scheme prefix and authority) are
followed. Each page is fetched exactly once.

Results stream to stdout as pages complete: the page URL on its own
line followed by one indented bullet per in-scope link.

Examples:
  # Crawl a site and print results as they arrive
  spdrs https://example.com

  # Bound concurrent fetches and enable debug logging
  spdrs -n 16 -v https://example.com

  # Write a Markdown report instead of plain text
  spdrs --markdown -o report.md https://example.com

Configuration file (.spdrs) example:
  sites:
    intranet.example.com:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
  defaults:
    userAgent: "my-crawler/2.0"`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("usage: spdrs <url>")
			}
			return nil
		},
		RunE: runCrawlCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each page fetch")
	cmd.Flags().Int64P("concurrency", "n", config.DefaultConcurrency,
		"Maximum simultaneous fetches (0 = unlimited)")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body bytes read per page")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .spdrs in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-save", false,
		"Do not archive the run in the history database")

	// Add subcommands
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
