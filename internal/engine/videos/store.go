package videos

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/confvid/go_confvid/internal/engine"
	_ "modernc.org/sqlite"
)

var (
	videoDB   *sql.DB
	videoOnce sync.Once
	videoErr  error
)

// openVideoDB opens (or creates) the SQLite video database.
// The URL table is created if absent; it is never reset. The detail
// table reset policy lives in detail.go.
func openVideoDB() (*sql.DB, error) {
	videoOnce.Do(func() {
		dbPath := engine.Cfg.DBPath
		if dbPath == "" {
			dir := filepath.Join(os.Getenv("HOME"), ".go_confvid")
			if err := os.MkdirAll(dir, 0750); err != nil {
				videoErr = fmt.Errorf("videos: mkdir %s: %w", dir, err)
				return
			}
			dbPath = filepath.Join(dir, "videos.db")
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			videoErr = fmt.Errorf("videos: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initURLSchema(db); err != nil {
			videoErr = fmt.Errorf("videos: init schema: %w", err)
			return
		}
		videoDB = db
	})
	return videoDB, videoErr
}

// initURLSchema creates the video_urls table if it doesn't exist.
func initURLSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS video_urls (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		url          TEXT NOT NULL UNIQUE,
		title        TEXT,
		channel_name TEXT,
		source_type  TEXT,
		source_url   TEXT,
		collected_at TEXT NOT NULL
	)`)
	return err
}

// InsertURLs saves discovered video URLs, ignoring duplicates by URL.
// Returns the number of rows actually inserted. A real persistence error
// (anything but a duplicate) aborts the remaining batch.
func InsertURLs(ctx context.Context, records []VideoURL) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	db, err := openVideoDB()
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, r := range records {
		res, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO video_urls (url, title, channel_name, source_type, source_url, collected_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.URL, r.Title, r.ChannelName, r.SourceType, r.SourceURL, now,
		)
		if err != nil {
			slog.Error("url insert failed", slog.String("url", r.URL), slog.Any("error", err))
			return inserted, fmt.Errorf("videos: insert url %s: %w", r.URL, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	engine.IncrURLInserts(inserted)
	return inserted, nil
}

// ListURLs returns collected URLs, most recently collected first.
// limit <= 0 means no limit.
func ListURLs(ctx context.Context, limit int) ([]VideoURL, error) {
	db, err := openVideoDB()
	if err != nil {
		return nil, err
	}

	q := `SELECT url, title, channel_name, source_type, source_url, collected_at
	      FROM video_urls ORDER BY collected_at DESC, id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, fmt.Errorf("videos: list urls: %w", err)
	}
	defer rows.Close()

	var urls []VideoURL
	for rows.Next() {
		var v VideoURL
		var title, channel, srcType, srcURL sql.NullString
		if err := rows.Scan(&v.URL, &title, &channel, &srcType, &srcURL, &v.CollectedAt); err != nil {
			return nil, fmt.Errorf("videos: scan url row: %w", err)
		}
		v.Title = title.String
		v.ChannelName = channel.String
		v.SourceType = srcType.String
		v.SourceURL = srcURL.String
		urls = append(urls, v)
	}
	return urls, rows.Err()
}

// UnprocessedURLs returns URLs present in video_urls with no matching
// detail row (left-anti-join on url), most recently collected first.
func UnprocessedURLs(ctx context.Context) ([]string, error) {
	db, err := openVideoDB()
	if err != nil {
		return nil, err
	}
	if err := EnsureDetailTable(); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT v.url
		FROM video_urls v
		LEFT JOIN video_details d ON v.url = d.video_url
		WHERE d.video_url IS NULL
		ORDER BY v.collected_at DESC, v.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("videos: unprocessed urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("videos: scan unprocessed url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
