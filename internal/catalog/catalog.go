package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/robotsmeta/internal/model"
)

// FileName is the database file created inside the catalog directory.
const FileName = "robotsmeta.db"

// Catalog is a SQLite-backed store of page infos.
type Catalog struct {
	db     *sql.DB
	dbPath string
}

// Options configures Open.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
	CreateIfNotExists bool

	// EnableWAL turns on write-ahead logging.
	EnableWAL bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Page is one catalog entry.
type Page struct {
	Path      string
	Info      model.WebCrawlerInfo
	UpdatedAt time.Time
}

// Open opens the catalog in dir.
func Open(dir string, opts Options) (*Catalog, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("catalog not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check catalog path: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	c := &Catalog{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := c.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return c, nil
}

// Path returns the database file path.
func (c *Catalog) Path() string {
	return c.dbPath
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		path TEXT PRIMARY KEY,
		info_json TEXT NOT NULL,
		info_hash TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_pages_hash ON pages(info_hash);
	`
	_, err := c.db.ExecContext(ctx, schema)
	return err
}

func hashString(info model.WebCrawlerInfo) string {
	return strconv.FormatUint(info.Hash(), 16)
}

// Put stores info under path. It reports whether the row changed; storing
// an info equal to the current one is a no-op. The comparison happens inside
// the upsert, so concurrent writers of one path see a single change.
func (c *Catalog) Put(ctx context.Context, path string, info model.WebCrawlerInfo) (bool, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return false, fmt.Errorf("failed to serialize info: %w", err)
	}

	query := `
	INSERT INTO pages (path, info_json, info_hash, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		info_json = excluded.info_json,
		info_hash = excluded.info_hash,
		updated_at = excluded.updated_at
	WHERE pages.info_json <> excluded.info_json
	`
	now := time.Now().UTC().Format(time.RFC3339Nano)
	result, err := c.db.ExecContext(ctx, query, path, string(data), hashString(info), now)
	if err != nil {
		return false, fmt.Errorf("failed to store page %s: %w", path, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to store page %s: %w", path, err)
	}
	return n > 0, nil
}

// Get returns the page stored under path, or ErrPageNotFound.
func (c *Catalog) Get(ctx context.Context, path string) (Page, error) {
	query := `SELECT path, info_json, updated_at FROM pages WHERE path = ?`

	var (
		page      Page
		infoJSON  string
		updatedAt string
	)
	err := c.db.QueryRowContext(ctx, query, path).Scan(&page.Path, &infoJSON, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Page{}, fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}
	if err != nil {
		return Page{}, fmt.Errorf("failed to get page %s: %w", path, err)
	}

	if err := json.Unmarshal([]byte(infoJSON), &page.Info); err != nil {
		return Page{}, fmt.Errorf("failed to parse info of %s: %w", path, err)
	}
	page.UpdatedAt = parseTimestamp(updatedAt)
	return page, nil
}

// List returns the stored paths in sorted order.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT path FROM pages ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// All returns every stored page ordered by path.
func (c *Catalog) All(ctx context.Context) ([]Page, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT path, info_json, updated_at FROM pages ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var (
			page      Page
			infoJSON  string
			updatedAt string
		)
		if err := rows.Scan(&page.Path, &infoJSON, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		if err := json.Unmarshal([]byte(infoJSON), &page.Info); err != nil {
			return nil, fmt.Errorf("failed to parse info of %s: %w", page.Path, err)
		}
		page.UpdatedAt = parseTimestamp(updatedAt)
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// FindByInfo returns the paths whose stored info equals info, in sorted
// order. The hash column narrows the candidates.
func (c *Catalog) FindByInfo(ctx context.Context, info model.WebCrawlerInfo) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT path, info_json FROM pages WHERE info_hash = ? ORDER BY path`, hashString(info))
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var (
			path     string
			infoJSON string
			stored   model.WebCrawlerInfo
		)
		if err := rows.Scan(&path, &infoJSON); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		if err := json.Unmarshal([]byte(infoJSON), &stored); err != nil {
			return nil, fmt.Errorf("failed to parse info of %s: %w", path, err)
		}
		if stored.Equal(info) {
			paths = append(paths, path)
		}
	}
	return paths, rows.Err()
}

// Delete removes path. It returns ErrPageNotFound when nothing was deleted.
func (c *Catalog) Delete(ctx context.Context, path string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM pages WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete page %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete page %s: %w", path, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrPageNotFound, path)
	}
	return nil
}

var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp accepts the formats SQLite hands back and returns the zero
// time for anything else.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
