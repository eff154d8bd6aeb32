package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/user/markerman/marker"
)

// CreateTimeline inserts t and returns it bound to db.
func CreateTimeline(ctx context.Context, db *sql.DB, t Timeline) (*Timeline, error) {
	if t.Name == "" {
		return nil, errors.New("timeline name is required")
	}
	if t.FrameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %v", t.FrameRate)
	}
	if t.Start < 0 {
		return nil, fmt.Errorf("start frame must not be negative, got %d", t.Start)
	}

	result, err := db.ExecContext(ctx, InsertTimelineSQL, t.Name, t.Start, t.FrameRate, t.Width, t.Height, t.MediaPath)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimelineExists, t.Name)
		}
		return nil, fmt.Errorf("insert timeline: %w", err)
	}
	if t.ID, err = result.LastInsertId(); err != nil {
		return nil, fmt.Errorf("get timeline id: %w", err)
	}
	t.db = db
	return &t, nil
}

// LoadTimeline returns the timeline called name bound to db.
func LoadTimeline(ctx context.Context, db *sql.DB, name string) (*Timeline, error) {
	t := Timeline{db: db}
	err := db.QueryRowContext(ctx, SelectTimelineByNameSQL, name).
		Scan(&t.ID, &t.Name, &t.Start, &t.FrameRate, &t.Width, &t.Height, &t.MediaPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTimelineNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("select timeline: %w", err)
	}
	return &t, nil
}

// ListTimelines returns every timeline ordered by name.
func ListTimelines(ctx context.Context, db *sql.DB) ([]TimelineSummary, error) {
	rows, err := db.QueryContext(ctx, SelectTimelinesSQL)
	if err != nil {
		return nil, fmt.Errorf("select timelines: %w", err)
	}
	defer rows.Close()

	var out []TimelineSummary
	for rows.Next() {
		var s TimelineSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Start, &s.FrameRate, &s.Width, &s.Height, &s.MediaPath, &s.MarkerCount); err != nil {
			return nil, fmt.Errorf("scan timeline: %w", err)
		}
		s.db = db
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateTimeline writes the format fields of t back to its row.
func UpdateTimeline(ctx context.Context, db *sql.DB, t *Timeline) error {
	if t.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %v", t.FrameRate)
	}
	if _, err := db.ExecContext(ctx, UpdateTimelineSQL, t.Start, t.FrameRate, t.Width, t.Height, t.MediaPath, t.ID); err != nil {
		return fmt.Errorf("update timeline: %w", err)
	}
	return nil
}

// DeleteTimeline removes the timeline and, by cascade, its markers.
func DeleteTimeline(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, DeleteTimelineSQL, id)
	if err != nil {
		return fmt.Errorf("delete timeline: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrTimelineNotFound
	}
	return nil
}

// execQuerier is satisfied by *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertMarker stores m on the timeline. A second marker on the same frame
// yields ErrMarkerExists. An unnamed marker is stored as "Marker <n>", n
// counting the timeline's markers including this one.
func InsertMarker(ctx context.Context, db *sql.DB, timelineID int64, m marker.Marker) error {
	return insertMarker(ctx, db, timelineID, m)
}

func insertMarker(ctx context.Context, q execQuerier, timelineID int64, m marker.Marker) error {
	if m.Frame < 0 {
		return fmt.Errorf("marker frame must not be negative, got %d", m.Frame)
	}
	if m.Duration < 0 {
		return fmt.Errorf("marker duration must not be negative, got %d", m.Duration)
	}
	if strings.TrimSpace(m.Name) == "" {
		var n int
		if err := q.QueryRowContext(ctx, CountMarkersByTimelineSQL, timelineID).Scan(&n); err != nil {
			return fmt.Errorf("count markers: %w", err)
		}
		m.Name = fmt.Sprintf("%s%d", marker.DefaultNamePrefix, n+1)
	}
	_, err := q.ExecContext(ctx, InsertMarkerSQL, timelineID, m.Frame, string(m.Color), m.Name, m.Note, m.Duration, m.CustomData)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: frame %d", ErrMarkerExists, m.Frame)
		}
		return fmt.Errorf("insert marker: %w", err)
	}
	return nil
}

// ReplaceMarker swaps the marker at m.Frame for m in one transaction and
// reports whether a marker was there. On any error the old marker stays.
func ReplaceMarker(ctx context.Context, db *sql.DB, timelineID int64, m marker.Marker) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, DeleteMarkerAtFrameSQL, timelineID, m.Frame)
	if err != nil {
		return false, fmt.Errorf("delete marker: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete marker: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if err := insertMarker(ctx, tx, timelineID, m); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit marker replace: %w", err)
	}
	return true, nil
}

// SelectMarkers returns the timeline's markers keyed by frame.
func SelectMarkers(ctx context.Context, db *sql.DB, timelineID int64) (marker.Map, error) {
	rows, err := db.QueryContext(ctx, SelectMarkersByTimelineSQL, timelineID)
	if err != nil {
		return nil, fmt.Errorf("select markers: %w", err)
	}
	defer rows.Close()

	out := make(marker.Map)
	for rows.Next() {
		var (
			m     marker.Marker
			color string
		)
		if err := rows.Scan(&m.Frame, &color, &m.Name, &m.Note, &m.Duration, &m.CustomData); err != nil {
			return nil, fmt.Errorf("scan marker: %w", err)
		}
		m.Color = marker.Color(color)
		out[m.Frame] = m
	}
	return out, rows.Err()
}

// DeleteMarkerAtFrame removes the marker at frame and reports whether one existed.
func DeleteMarkerAtFrame(ctx context.Context, db *sql.DB, timelineID int64, frame int) (bool, error) {
	result, err := db.ExecContext(ctx, DeleteMarkerAtFrameSQL, timelineID, frame)
	if err != nil {
		return false, fmt.Errorf("delete marker: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete marker: %w", err)
	}
	return n > 0, nil
}

// DeleteMarkers removes every marker on the timeline and returns how many went.
func DeleteMarkers(ctx context.Context, db *sql.DB, timelineID int64) (int, error) {
	result, err := db.ExecContext(ctx, DeleteMarkersByTimelineSQL, timelineID)
	if err != nil {
		return 0, fmt.Errorf("delete markers: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete markers: %w", err)
	}
	return int(n), nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
