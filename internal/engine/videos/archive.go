package videos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/confvid/go_confvid/internal/engine"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Optional Postgres archive. Enriched detail records are mirrored there
// for durability across detail-table resets; the local SQLite store
// stays authoritative and archive failures never fail an extraction.

const archiveSchema = `CREATE TABLE IF NOT EXISTS video_details_archive (
	video_url       TEXT PRIMARY KEY,
	video_id        TEXT,
	title           TEXT,
	description     TEXT,
	channel_name    TEXT,
	upload_date     TEXT,
	duration        INTEGER,
	view_count      BIGINT,
	like_count      BIGINT,
	comment_count   BIGINT,
	conference_name TEXT,
	conference_year INTEGER,
	tags            TEXT[],
	thumbnail_url   TEXT,
	archived_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ArchiveDB holds the pgx connection pool for the detail archive.
type ArchiveDB struct {
	pool *pgxpool.Pool
}

// Package-level singleton, set from main.go.
var archiveDB *ArchiveDB

// SetArchiveDB sets the package-level archive DB instance.
func SetArchiveDB(db *ArchiveDB) { archiveDB = db }

// GetArchiveDB returns the package-level archive DB instance (may be nil).
func GetArchiveDB() *ArchiveDB { return archiveDB }

// ConnectArchiveDB creates a pgx pool and ensures the archive table.
func ConnectArchiveDB(ctx context.Context, databaseURL string) (*ArchiveDB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, archiveSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init archive table: %w", err)
	}

	slog.Info("archive postgres connected", slog.String("addr", config.ConnConfig.Host))
	return &ArchiveDB{pool: pool}, nil
}

func (db *ArchiveDB) Close() {
	db.pool.Close()
}

// SaveDetail mirrors a detail record into the archive, replacing any
// existing row for the same video URL.
func (db *ArchiveDB) SaveDetail(ctx context.Context, d *VideoDetail) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO video_details_archive
		(video_url, video_id, title, description, channel_name, upload_date,
		 duration, view_count, like_count, comment_count, conference_name,
		 conference_year, tags, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (video_url) DO UPDATE SET
			video_id = EXCLUDED.video_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			channel_name = EXCLUDED.channel_name,
			upload_date = EXCLUDED.upload_date,
			duration = EXCLUDED.duration,
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			comment_count = EXCLUDED.comment_count,
			conference_name = EXCLUDED.conference_name,
			conference_year = EXCLUDED.conference_year,
			tags = EXCLUDED.tags,
			thumbnail_url = EXCLUDED.thumbnail_url,
			archived_at = now()`,
		d.VideoURL, d.VideoID, d.Title, d.Description, d.ChannelName, d.UploadDate,
		d.Duration, d.ViewCount, d.LikeCount, d.CommentCount,
		nullStr(d.ConferenceName), nullInt(d.ConferenceYear), d.Tags, d.ThumbnailURL,
	)
	if err != nil {
		return fmt.Errorf("archive detail %s: %w", d.VideoURL, err)
	}
	return nil
}

// archiveDetail mirrors d when an archive is configured. Best effort.
func archiveDetail(ctx context.Context, d *VideoDetail) {
	if archiveDB == nil {
		return
	}
	if err := archiveDB.SaveDetail(ctx, d); err != nil {
		slog.Warn("archive write failed", slog.String("url", d.VideoURL), slog.Any("error", err))
		return
	}
	engine.IncrArchiveWrite()
}
