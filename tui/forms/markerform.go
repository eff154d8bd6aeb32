package forms

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/markerman/marker"
	"github.com/user/markerman/pkg/timecode"
	"github.com/user/markerman/tui/styles"
)

// MarkerFormResult holds the data returned by a completed marker form.
type MarkerFormResult struct {
	Name     string
	Color    marker.Color
	Note     string
	Duration string
}

// Marker builds the marker at frame from the form answers.
func (r *MarkerFormResult) Marker(frame int, frameRate float64) (marker.Marker, error) {
	m := marker.Marker{
		Frame: frame,
		Color: r.Color,
		Name:  strings.TrimSpace(r.Name),
		Note:  strings.TrimSpace(r.Note),
	}
	if d := strings.TrimSpace(r.Duration); d != "" {
		n, err := timecode.ParseTimecode(d, frameRate)
		if err != nil {
			return marker.Marker{}, fmt.Errorf("duration: %w", err)
		}
		m.Duration = n
	}
	return m, nil
}

// NewMarkerForm creates a form for a marker at frame. The frame is shown as a
// timecode header. result.Color preselects the colour when set.
func NewMarkerForm(frame int, frameRate float64, result *MarkerFormResult) *huh.Form {
	header := fmt.Sprintf("Add Marker @ %s", timecode.FramesToTimecode(frame, frameRate))

	if result.Color == "" {
		result.Color = marker.Blue
	}
	var colors []huh.Option[marker.Color]
	for _, c := range marker.EnabledColors() {
		colors = append(colors, huh.NewOption(styles.MarkerSwatch(c, c.String()), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(header),

			huh.NewInput().
				Title("Name").
				Description(`Names starting with "Marker " are treated as unnamed out points`).
				Value(&result.Name),

			huh.NewSelect[marker.Color]().
				Title("Colour").
				Options(colors...).
				Value(&result.Color),

			huh.NewInput().
				Title("Note").
				Description("Optional").
				Value(&result.Note),

			huh.NewInput().
				Title("Duration").
				Description("Optional, HH:MM:SS:FF or a frame count").
				Value(&result.Duration).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := timecode.ParseTimecode(s, frameRate)
					return err
				}),
		),
	).WithTheme(Theme())
}
