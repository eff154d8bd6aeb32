package db

import (
	_ "embed"
)

// Schema and migrations

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Timeline queries

//go:embed sql/insert_timeline.sql
var InsertTimelineSQL string

//go:embed sql/select_timelines.sql
var SelectTimelinesSQL string

//go:embed sql/select_timeline_by_name.sql
var SelectTimelineByNameSQL string

//go:embed sql/update_timeline.sql
var UpdateTimelineSQL string

//go:embed sql/delete_timeline.sql
var DeleteTimelineSQL string

// Marker queries

//go:embed sql/insert_marker.sql
var InsertMarkerSQL string

//go:embed sql/count_markers_by_timeline.sql
var CountMarkersByTimelineSQL string

//go:embed sql/select_markers_by_timeline.sql
var SelectMarkersByTimelineSQL string

//go:embed sql/delete_marker_at_frame.sql
var DeleteMarkerAtFrameSQL string

//go:embed sql/delete_markers_by_timeline.sql
var DeleteMarkersByTimelineSQL string
