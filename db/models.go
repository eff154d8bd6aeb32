package db

import (
	"database/sql"
	"errors"
)

var (
	// ErrTimelineNotFound is returned when no timeline has the requested name.
	ErrTimelineNotFound = errors.New("timeline not found")
	// ErrTimelineExists is returned when creating a timeline whose name is taken.
	ErrTimelineExists = errors.New("timeline already exists")
	// ErrMarkerExists is returned when a frame already carries a marker.
	ErrMarkerExists = errors.New("a marker already exists at that frame")
)

// Timeline is a row in the timelines table. Once loaded it also serves as
// the marker source and project settings for that timeline.
type Timeline struct {
	ID        int64
	Name      string
	Start     int
	FrameRate float64
	Width     int
	Height    int
	MediaPath string

	db *sql.DB
}

// TimelineSummary is a timeline with its marker count, for listings.
type TimelineSummary struct {
	Timeline
	MarkerCount int
}
