package videos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confvid/go_confvid/internal/engine"
)

const detailSchema = `CREATE TABLE IF NOT EXISTS video_details (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	video_url       TEXT NOT NULL UNIQUE,
	video_id        TEXT,
	title           TEXT,
	description     TEXT,
	channel_name    TEXT,
	upload_date     TEXT,
	duration        INTEGER,
	view_count      INTEGER,
	like_count      INTEGER,
	comment_count   INTEGER,
	conference_name TEXT,
	conference_year INTEGER,
	tags            TEXT,
	thumbnail_url   TEXT,
	created_at      TEXT NOT NULL
)`

// EnsureDetailTable creates the detail table if absent. Non-destructive.
func EnsureDetailTable() error {
	db, err := openVideoDB()
	if err != nil {
		return err
	}
	if _, err := db.Exec(detailSchema); err != nil {
		return fmt.Errorf("videos: init detail table: %w", err)
	}
	return nil
}

// ResetDetailTable drops and recreates the detail table. Destructive:
// every previously extracted record is discarded. Detail records are
// regenerable from the URL store, which this never touches.
func ResetDetailTable() error {
	db, err := openVideoDB()
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DROP TABLE IF EXISTS video_details`); err != nil {
		return fmt.Errorf("videos: drop detail table: %w", err)
	}
	if _, err := db.Exec(detailSchema); err != nil {
		return fmt.Errorf("videos: recreate detail table: %w", err)
	}
	return nil
}

// UpsertDetail replaces any existing record for the same video URL with
// the given one. Delete+insert, never a merge: repeated extraction of a
// URL always reflects the latest scrape.
func UpsertDetail(ctx context.Context, d *VideoDetail) error {
	db, err := openVideoDB()
	if err != nil {
		return err
	}
	if err := EnsureDetailTable(); err != nil {
		return err
	}

	tags, err := json.Marshal(d.Tags)
	if err != nil {
		return fmt.Errorf("videos: marshal tags: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("videos: begin upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM video_details WHERE video_url = ?`, d.VideoURL); err != nil {
		return fmt.Errorf("videos: delete stale detail %s: %w", d.VideoURL, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO video_details
		(video_url, video_id, title, description, channel_name, upload_date,
		 duration, view_count, like_count, comment_count, conference_name,
		 conference_year, tags, thumbnail_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.VideoURL, d.VideoID, d.Title, d.Description, d.ChannelName, d.UploadDate,
		d.Duration, d.ViewCount, d.LikeCount, d.CommentCount,
		nullStr(d.ConferenceName), nullInt(d.ConferenceYear),
		string(tags), d.ThumbnailURL, now,
	)
	if err != nil {
		return fmt.Errorf("videos: insert detail %s: %w", d.VideoURL, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("videos: commit upsert: %w", err)
	}

	engine.IncrDetailUpsert()
	slog.Info("detail saved", slog.String("url", d.VideoURL), slog.String("title", d.Title))
	return nil
}

// QueryDetails returns detail records ordered by view count descending.
// conferenceName filters by substring, conferenceYear by exact match;
// zero values disable the respective filter. limit <= 0 defaults to 20.
func QueryDetails(ctx context.Context, conferenceName string, conferenceYear, limit int) ([]VideoDetail, error) {
	db, err := openVideoDB()
	if err != nil {
		return nil, err
	}
	if err := EnsureDetailTable(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}

	q := `SELECT video_url, video_id, title, description, channel_name, upload_date,
	             duration, view_count, like_count, comment_count, conference_name,
	             conference_year, tags, thumbnail_url, created_at
	      FROM video_details WHERE 1=1`
	var args []any
	if conferenceName != "" {
		q += ` AND conference_name LIKE ?`
		args = append(args, "%"+conferenceName+"%")
	}
	if conferenceYear != 0 {
		q += ` AND conference_year = ?`
		args = append(args, conferenceYear)
	}
	q += ` ORDER BY view_count DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("videos: query details: %w", err)
	}
	defer rows.Close()

	var details []VideoDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

func scanDetail(rows *sql.Rows) (*VideoDetail, error) {
	var d VideoDetail
	var confName sql.NullString
	var confYear sql.NullInt64
	var tags sql.NullString
	if err := rows.Scan(&d.VideoURL, &d.VideoID, &d.Title, &d.Description,
		&d.ChannelName, &d.UploadDate, &d.Duration, &d.ViewCount, &d.LikeCount,
		&d.CommentCount, &confName, &confYear, &tags, &d.ThumbnailURL, &d.CreatedAt); err != nil {
		return nil, fmt.Errorf("videos: scan detail row: %w", err)
	}
	d.ConferenceName = confName.String
	d.ConferenceYear = int(confYear.Int64)
	if tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &d.Tags); err != nil {
			slog.Warn("bad tags payload", slog.String("url", d.VideoURL), slog.Any("error", err))
		}
	}
	return &d, nil
}

// ConferenceStats aggregates overall and per-(conference, year) statistics.
// Breakdown rows are ordered by year descending, then count descending.
func ConferenceStats(ctx context.Context) (*Stats, error) {
	db, err := openVideoDB()
	if err != nil {
		return nil, err
	}
	if err := EnsureDetailTable(); err != nil {
		return nil, err
	}

	var s Stats
	var avg sql.NullFloat64
	var total sql.NullInt64
	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT conference_name),
		       COUNT(DISTINCT conference_year),
		       AVG(view_count),
		       SUM(duration)
		FROM video_details`).
		Scan(&s.TotalVideos, &s.UniqueConferences, &s.UniqueYears, &avg, &total)
	if err != nil {
		return nil, fmt.Errorf("videos: overall stats: %w", err)
	}
	s.AvgViews = avg.Float64
	s.TotalDurationSeconds = total.Int64

	rows, err := db.QueryContext(ctx, `
		SELECT conference_name, conference_year, COUNT(*), AVG(view_count), SUM(duration)
		FROM video_details
		WHERE conference_name IS NOT NULL
		GROUP BY conference_name, conference_year
		ORDER BY conference_year DESC, COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("videos: conference breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b ConferenceBreakdown
		var year sql.NullInt64
		var avgViews sql.NullFloat64
		var dur sql.NullInt64
		if err := rows.Scan(&b.Name, &year, &b.Count, &avgViews, &dur); err != nil {
			return nil, fmt.Errorf("videos: scan breakdown row: %w", err)
		}
		b.Year = int(year.Int64)
		b.AvgViews = avgViews.Float64
		b.TotalDuration = dur.Int64
		s.Conferences = append(s.Conferences, b)
	}
	return &s, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
