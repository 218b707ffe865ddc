// Package history persists completed downloads in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ytgrab/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	id          TEXT PRIMARY KEY,
	video_id    TEXT NOT NULL,
	title       TEXT NOT NULL,
	url         TEXT NOT NULL,
	format_id   TEXT NOT NULL,
	ext         TEXT NOT NULL,
	height      INTEGER NOT NULL,
	output_path TEXT NOT NULL,
	bytes       INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_downloads_created_at ON downloads(created_at DESC);
`

// Entry is one recorded download.
type Entry struct {
	ID         string
	VideoID    string
	Title      string
	URL        string
	FormatID   string
	Ext        string
	Height     int
	OutputPath string
	Bytes      int64
	CreatedAt  time.Time
}

// Store wraps the downloads database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record satisfies the pipeline's recorder hook.
func (s *Store) Record(ctx context.Context, video model.VideoInfo, res model.DownloadResult, url string) error {
	return s.Insert(ctx, Entry{
		ID:         uuid.NewString(),
		VideoID:    video.ID,
		Title:      video.Title,
		URL:        url,
		FormatID:   res.Format.ID,
		Ext:        res.Format.Ext,
		Height:     res.Format.Height,
		OutputPath: res.OutputPath,
		Bytes:      res.Bytes,
		CreatedAt:  time.Now().UTC(),
	})
}

// Insert stores one entry. An empty ID gets a fresh UUID.
func (s *Store) Insert(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads (id, video_id, title, url, format_id, ext, height, output_path, bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.VideoID, e.Title, e.URL, e.FormatID, e.Ext, e.Height,
		e.OutputPath, e.Bytes, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record download: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, video_id, title, url, format_id, ext, height, output_path, bytes, created_at
		FROM downloads ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.VideoID, &e.Title, &e.URL, &e.FormatID,
			&e.Ext, &e.Height, &e.OutputPath, &e.Bytes, &created); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, created); perr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Totals reports the number of recorded downloads and their combined size.
func (s *Store) Totals(ctx context.Context) (count int64, bytes int64, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(bytes), 0) FROM downloads`)
	if err := row.Scan(&count, &bytes); err != nil {
		return 0, 0, fmt.Errorf("history totals: %w", err)
	}
	return count, bytes, nil
}
