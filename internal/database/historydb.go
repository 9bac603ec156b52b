package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mchlrhw/spdrs/internal/model"
)

// HistoryDB provides SQLite-based storage for completed crawl runs.
// It manages connection pooling and provides methods for saving and
// retrieving run archives.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunMetadata summarizes one archived crawl run without its page results.
type RunMetadata struct {
	// ID is the run's database identifier.
	ID int64

	// Seed is the URL the run started from.
	Seed string

	// Boundary is the run's scope authority.
	Boundary string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Elapsed is the run's wall-clock duration.
	Elapsed time.Duration

	// Pages is the number of successfully crawled pages.
	Pages int

	// Links is the total number of in-scope links discovered.
	Links int

	// Failed is the number of failed fetches.
	Failed int
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "spdrs.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to refuse creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		boundary TEXT NOT NULL,
		started_at TEXT NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		page_count INTEGER NOT NULL,
		link_count INTEGER NOT NULL,
		failed_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);

	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		url TEXT NOT NULL,
		links TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport archives a completed crawl run and returns its run ID.
// The run row and all page rows are written in one transaction, so a
// partially saved run never appears in listings.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.CrawlReport) (int64, error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (seed, boundary, started_at, elapsed_ms, page_count, link_count, failed_count)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.Seed,
		report.Boundary,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.Elapsed.Milliseconds(),
		len(report.Pages),
		report.LinkCount(),
		report.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for i, page := range report.Pages {
		linksJSON, err := json.Marshal(page.Links)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize links for %s: %w", page.URL, err)
		}

		if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (run_id, position, url, links)
		VALUES (?, ?, ?, ?)`,
			runID, i, page.URL, string(linksJSON),
		); err != nil {
			return 0, fmt.Errorf("failed to insert page %s: %w", page.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns metadata for archived runs, newest first.
// An empty seed lists every run; otherwise only runs started from the
// given seed are returned.
func (hdb *HistoryDB) ListRuns(ctx context.Context, seed string) ([]RunMetadata, error) {
	query := `
	SELECT id, seed, boundary, started_at, elapsed_ms, page_count, link_count, failed_count
	FROM runs`
	args := []any{}
	if seed != "" {
		query += ` WHERE seed = ?`
		args = append(args, seed)
	}
	query += ` ORDER BY id DESC`

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var meta RunMetadata
		var startedAt string
		var elapsedMS int64

		if err := rows.Scan(
			&meta.ID, &meta.Seed, &meta.Boundary, &startedAt,
			&elapsedMS, &meta.Pages, &meta.Links, &meta.Failed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		meta.StartedAt = parseTimestamp(startedAt)
		meta.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, meta)
	}

	return runs, rows.Err()
}

// GetReport reconstructs the full crawl report for the given run ID.
// Returns sql.ErrNoRows wrapped if the run does not exist.
func (hdb *HistoryDB) GetReport(ctx context.Context, id int64) (*model.CrawlReport, error) {
	var report model.CrawlReport
	var startedAt string
	var elapsedMS int64
	var pageCount, linkCount int

	err := hdb.db.QueryRowContext(ctx, `
	SELECT seed, boundary, started_at, elapsed_ms, page_count, link_count, failed_count
	FROM runs WHERE id = ?`, id).Scan(
		&report.Seed, &report.Boundary, &startedAt,
		&elapsedMS, &pageCount, &linkCount, &report.Failed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", id, err)
	}

	report.StartedAt = parseTimestamp(startedAt)
	report.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	report.Pages = make([]*model.PageResult, 0, pageCount)

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT url, links FROM pages WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load pages for run %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var url, linksJSON string
		if err := rows.Scan(&url, &linksJSON); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}

		var links []string
		if err := json.Unmarshal([]byte(linksJSON), &links); err != nil {
			return nil, fmt.Errorf("failed to decode links for %s: %w", url, err)
		}

		report.Pages = append(report.Pages, &model.PageResult{URL: url, Links: links})
	}

	return &report, rows.Err()
}

// parseTimestamp parses an RFC3339 timestamp stored in the database.
// A zero time is returned for values that fail to parse.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
