package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/marker"
	"github.com/user/markerman/pkg/timecode"
	"github.com/user/markerman/tui/styles"
)

// ClipColumns are the headers of the clip table, in display order.
var ClipColumns = []string{"Index", "Name", "Duration", "Filename", "Color", "In-Point", "Out-Point", "Notes"}

// ClipRows returns one row of plain cells per clip, matching ClipColumns.
func ClipRows(clips []clip.Clip, frameRate float64) [][]string {
	rows := make([][]string, 0, len(clips))
	for _, c := range clips {
		rows = append(rows, []string{
			c.Index,
			c.Name,
			c.Duration,
			c.Filename,
			c.Color,
			c.InTimecode(frameRate),
			c.OutTimecode(frameRate),
			c.Note,
		})
	}
	return rows
}

// ClipTable renders clips as a bordered table.
func ClipTable(clips []clip.Clip, frameRate float64) string {
	rows := ClipRows(clips, frameRate)
	for _, row := range rows {
		row[4] = styles.MarkerSwatch(marker.Color(row[4]), row[4])
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Purple)).
		Headers(ClipColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cell.Inherit(styles.Header)
			case col == 4:
				return cell
			case row%2 == 0:
				return cell.Inherit(styles.PrimaryText)
			default:
				return cell.Inherit(styles.SecondaryText)
			}
		})
	return t.Render()
}

// MarkerRows returns one row per marker in frame order for listing a
// timeline's markers.
func MarkerRows(markers marker.Map, frameRate float64) [][]string {
	rows := make([][]string, 0, len(markers))
	for _, m := range markers.Sorted() {
		rows = append(rows, []string{
			timecode.FramesToTimecode(m.Frame, frameRate),
			strconv.Itoa(m.Frame),
			m.Name,
			string(m.Color),
			strconv.Itoa(m.Duration),
			m.Note,
		})
	}
	return rows
}

// MarkerTable renders a marker listing.
func MarkerTable(markers marker.Map, frameRate float64) string {
	rows := MarkerRows(markers, frameRate)
	for _, row := range rows {
		row[3] = styles.MarkerSwatch(marker.Color(row[3]), row[3])
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Purple)).
		Headers("Timecode", "Frame", "Name", "Color", "Duration", "Note").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.Padding(0, 1)
			}
			return styles.PrimaryText.Padding(0, 1)
		}).
		Render()
}
