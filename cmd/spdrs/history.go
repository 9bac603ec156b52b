package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mchlrhw/spdrs/internal/config"
	"github.com/mchlrhw/spdrs/internal/database"
	"github.com/mchlrhw/spdrs/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command inspects crawl runs archived in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [seed]",
		Short: "List or show archived crawl runs",
		Long: `History lists crawl runs archived in the local database.

Every completed crawl is archived unless --no-save was given. Each
entry records the seed, scope boundary, start time, duration, and the
page, link, and failure counts.

Examples:
  # List all archived runs
  spdrs history

  # List runs for a specific seed
  spdrs history https://example.com

  # Print an archived run in full (use the ID from the listing)
  spdrs history --show 5

  # Print an archived run as JSON
  spdrs history --show 5 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("show", "s", 0,
		"Show the full archived run with this ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	var seed string
	if len(args) == 1 {
		seed = args[0]
	}

	// The archive is only read here, so a missing database means no runs
	// have been recorded yet rather than something to create.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		return fmt.Errorf("no crawl history found (run 'spdrs <url>' first): %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if showID > 0 {
		return showRun(ctx, db, cmd.OutOrStdout(), showID, jsonOutput)
	}

	return listRuns(ctx, db, cmd.OutOrStdout(), seed, jsonOutput)
}

// listRuns prints the archived run metadata, newest first.
func listRuns(ctx context.Context, db *database.HistoryDB, out io.Writer, seed string, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, seed)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		if seed != "" {
			fmt.Fprintf(out, "No crawl history found for %s\n", seed)
		} else {
			fmt.Fprintln(out, "No crawl history found")
		}
		return nil
	}

	fmt.Fprintf(out, "Crawl history (%d runs):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-10s  %6s  %6s  %6s  %s\n",
		"ID", "Started", "Elapsed", "Pages", "Links", "Failed", "Seed")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 78))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-10s  %6d  %6d  %6d  %s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Elapsed.Round(time.Millisecond),
			run.Pages,
			run.Links,
			run.Failed,
			run.Seed,
		)
	}

	fmt.Fprintln(out, "\nUse 'spdrs history --show <id>' to print a run in full.")

	return nil
}

// showRun prints one archived run in full.
func showRun(ctx context.Context, db *database.HistoryDB, out io.Writer, id int64, jsonOutput bool) error {
	crawlReport, err := db.GetReport(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", id, err)
	}

	var writer report.Writer
	if jsonOutput {
		writer = report.NewJSONWriter(out, report.WithPrettyPrint())
	} else {
		writer = report.NewTextWriter(out, report.WithSummary(true))
	}

	if _, err := writer.Write(crawlReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
