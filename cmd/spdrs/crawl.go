package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mchlrhw/spdrs/internal/config"
	"github.com/mchlrhw/spdrs/internal/crawler"
	"github.com/mchlrhw/spdrs/internal/database"
	"github.com/mchlrhw/spdrs/internal/log"
	"github.com/mchlrhw/spdrs/internal/model"
	"github.com/mchlrhw/spdrs/internal/report"
	"github.com/spf13/cobra"
)

// runCrawlCmd executes the crawl from the root command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger, cmd.OutOrStdout())
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt64("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	// Get positional argument (seed URL)
	cfg.Seed = args[0]

	return cfg, nil
}

// buildFetcher creates an HTTP fetcher from global config plus any
// site-specific settings for the seed's authority.
func buildFetcher(cfg *config.Config) *crawler.HTTPFetcher {
	var siteConfig config.SiteConfig
	if cfg.SiteConfigs != nil {
		if seedURL, err := url.Parse(cfg.Seed); err == nil && seedURL.Host != "" {
			siteConfig = cfg.SiteConfigs.GetSiteConfig(seedURL.Host)
		}
	}

	// Site-specific User-Agent overrides the global one
	userAgent := cfg.UserAgent
	if siteConfig.UserAgent != "" {
		userAgent = siteConfig.UserAgent
	}

	opts := []crawler.FetcherOption{
		crawler.WithUserAgent(userAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	}
	if siteConfig.Cookie != "" {
		opts = append(opts, crawler.WithCookie(siteConfig.Cookie))
	}
	if len(siteConfig.Headers) > 0 {
		opts = append(opts, crawler.WithHeaders(siteConfig.Headers))
	}

	client := &http.Client{Timeout: cfg.Timeout}
	return crawler.NewHTTPFetcher(client, opts...)
}

// runCrawl executes the crawl and emits results.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	logger.Info("starting crawl",
		"seed", cfg.Seed,
		"concurrency", cfg.Concurrency,
		"timeout", cfg.Timeout,
		"saveToDB", cfg.SaveToDB,
	)

	schedOpts := []crawler.SchedulerOption{crawler.WithLogger(logger)}
	if cfg.Concurrency > 0 {
		schedOpts = append(schedOpts, crawler.WithConcurrencyLimit(cfg.Concurrency))
	}
	scheduler := crawler.NewScheduler(buildFetcher(cfg), schedOpts...)

	// In plain text mode pages stream to stdout as they arrive. Structured
	// report formats are emitted once, after the crawl completes.
	visit := func(*model.PageResult) {}
	if !cfg.JSONReport && !cfg.MarkdownReport {
		visit = func(page *model.PageResult) {
			report.WritePage(out, page)
		}
	}

	crawlReport, err := scheduler.Crawl(ctx, cfg.Seed, visit)
	if err != nil {
		return err
	}

	// A run that produced nothing because the seed itself could not be
	// fetched is a failure, not an empty result.
	if len(crawlReport.Pages) == 0 && crawlReport.Failed > 0 {
		return fmt.Errorf("failed to fetch seed %s", cfg.Seed)
	}

	if err := outputReport(cfg, crawlReport, out); err != nil {
		return err
	}

	// Archive failures do not invalidate an otherwise successful crawl
	if cfg.SaveToDB {
		if err := saveReport(ctx, cfg, crawlReport, logger); err != nil {
			logger.Error("failed to archive run", "error", err)
		}
	}

	return nil
}

// outputReport writes the end-of-run report in the requested format.
// Plain text output without a report file needs nothing here since the
// pages were already streamed during the crawl.
func outputReport(cfg *config.Config, crawlReport *model.CrawlReport, stdout io.Writer) error {
	var dest io.Writer = stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		dest = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(dest, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(dest)
	case cfg.ReportFile != "":
		writer = report.NewTextWriter(dest, report.WithSummary(true))
	default:
		return nil
	}

	if _, err := writer.Write(crawlReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// saveReport archives the completed run in the history database.
func saveReport(ctx context.Context, cfg *config.Config, crawlReport *model.CrawlReport, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveReport(ctx, crawlReport)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("run archived", "id", id, "dir", cfg.DBDir)
	return nil
}
