package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/user/markerman/db"
	"github.com/user/markerman/marker"
	"github.com/user/markerman/pkg/timecode"
	"github.com/user/markerman/tui"
)

var markerCmd = &cobra.Command{
	Use:   "marker",
	Short: "Manage timeline markers",
	Long:  `Add, list, edit, and delete the coloured markers on a timeline. Marker positions are frames from the start of the timeline.`,
}

var markerAddCmd = &cobra.Command{
	Use:   "add [timecode|frame]",
	Short: "Add a marker",
	Long: `Add a marker at a timecode (HH:MM:SS:FF) or frame count. With --at-playhead the
position is read from a running mpv session instead. With --interactive the
name, colour, note and duration are asked for in a form.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		atPlayhead, _ := cmd.Flags().GetBool("at-playhead")
		interactive, _ := cmd.Flags().GetBool("interactive")
		if atPlayhead == (len(args) == 1) {
			return errors.New("give either a position or --at-playhead")
		}

		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := resolveTimeline(cmd, database)
		if err != nil {
			return err
		}

		var frame int
		if atPlayhead {
			frame, err = playheadFrame(cmd, t.FrameRate)
		} else {
			frame, err = timecode.ParseTimecode(args[0], t.FrameRate)
		}
		if err != nil {
			return err
		}

		color, err := colorFlag(cmd)
		if err != nil {
			return err
		}

		var m marker.Marker
		if interactive {
			m, err = (&tui.Dialog{FrameRate: t.FrameRate}).PromptMarker(cmd.Context(), frame, color)
			if err != nil {
				return err
			}
		} else {
			m, err = markerFromFlags(cmd, frame, color, t.FrameRate)
			if err != nil {
				return err
			}
		}

		if err := t.AddMarker(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to add marker: %w", err)
		}
		fmt.Printf("%s marker added at %s (frame %d)\n", m.Color, timecode.FramesToTimecode(m.Frame, t.FrameRate), m.Frame)
		return nil
	},
}

var markerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List markers",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := resolveTimeline(cmd, database)
		if err != nil {
			return err
		}
		markers, err := selectedMarkers(cmd, t)
		if err != nil {
			return err
		}

		if len(markers) == 0 {
			fmt.Println("No matching markers found.")
			return nil
		}
		fmt.Println(tui.MarkerTable(markers, t.FrameRate))
		fmt.Printf("\n%d marker(s) found.\n", len(markers))
		return nil
	},
}

var markerDeleteCmd = &cobra.Command{
	Use:   "delete <timecode|frame>",
	Short: "Delete the marker at a position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := resolveTimeline(cmd, database)
		if err != nil {
			return err
		}
		frame, err := timecode.ParseTimecode(args[0], t.FrameRate)
		if err != nil {
			return err
		}

		deleted, err := t.DeleteMarkerAtFrame(cmd.Context(), frame)
		if err != nil {
			return fmt.Errorf("failed to delete marker: %w", err)
		}
		if !deleted {
			return fmt.Errorf("no marker at %s", timecode.FramesToTimecode(frame, t.FrameRate))
		}
		fmt.Printf("Marker at %s deleted.\n", timecode.FramesToTimecode(frame, t.FrameRate))
		return nil
	},
}

var markerEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change markers in bulk",
	Long: `Rewrite every marker of the --color colours (all markers when none are given)
with the --set-* values. Unset values keep each marker's current value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := resolveTimeline(cmd, database)
		if err != nil {
			return err
		}
		markers, err := selectedMarkers(cmd, t)
		if err != nil {
			return err
		}

		o, err := overridesFromFlags(cmd, t.FrameRate)
		if err != nil {
			return err
		}
		if o == (marker.Overrides{}) {
			return errors.New("nothing to change; pass at least one --set-* flag")
		}

		n, err := marker.Edit(cmd.Context(), t, markers, o)
		if err != nil {
			return fmt.Errorf("failed to edit markers: %w", err)
		}
		fmt.Printf("%d marker(s) updated.\n", n)
		return nil
	},
}

var markerClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every marker on the timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := resolveTimeline(cmd, database)
		if err != nil {
			return err
		}

		if !force {
			ok, err := confirm(cmd, fmt.Sprintf("Delete all markers on %q?", t.Name), "This cannot be undone.")
			if err != nil || !ok {
				return err
			}
		}

		n, err := marker.DeleteAll(cmd.Context(), t)
		if err != nil {
			return fmt.Errorf("failed to clear markers: %w", err)
		}
		fmt.Printf("%d marker(s) deleted.\n", n)
		return nil
	},
}

// importedMarker is one entry of a marker import file.
type importedMarker struct {
	At         string `yaml:"at"`
	Color      string `yaml:"color"`
	Name       string `yaml:"name"`
	Note       string `yaml:"note"`
	Duration   string `yaml:"duration"`
	CustomData string `yaml:"custom_data"`
}

type importFile struct {
	Markers []importedMarker `yaml:"markers"`
}

var markerImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Add markers from a YAML file",
	Long: `Add markers listed in a YAML file:

  markers:
    - at: "00:00:10:00"
      color: Blue
      name: Intro
      duration: "48"

"at" and "duration" take a timecode or a frame count. Markers on occupied
frames are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		var file importFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := resolveTimeline(cmd, database)
		if err != nil {
			return err
		}

		markers, err := parseImport(file, t.FrameRate)
		if err != nil {
			return err
		}

		added, skipped := 0, 0
		for _, m := range markers {
			err := t.AddMarker(cmd.Context(), m)
			switch {
			case err == nil:
				added++
			case errors.Is(err, db.ErrMarkerExists):
				skipped++
			default:
				return fmt.Errorf("failed to add marker at frame %d: %w", m.Frame, err)
			}
		}

		fmt.Printf("%d marker(s) imported", added)
		if skipped > 0 {
			fmt.Printf(", %d skipped (frame already marked)", skipped)
		}
		fmt.Println(".")
		return nil
	},
}

// parseImport validates every entry before anything is written.
func parseImport(file importFile, frameRate float64) ([]marker.Marker, error) {
	out := make([]marker.Marker, 0, len(file.Markers))
	for i, im := range file.Markers {
		frame, err := timecode.ParseTimecode(im.At, frameRate)
		if err != nil {
			return nil, fmt.Errorf("marker %d: at: %w", i+1, err)
		}
		color := marker.Blue
		if im.Color != "" {
			if color, err = marker.ParseColor(im.Color); err != nil {
				return nil, fmt.Errorf("marker %d: %w", i+1, err)
			}
		}
		duration := 0
		if strings.TrimSpace(im.Duration) != "" {
			if duration, err = timecode.ParseTimecode(im.Duration, frameRate); err != nil {
				return nil, fmt.Errorf("marker %d: duration: %w", i+1, err)
			}
		}
		out = append(out, marker.Marker{
			Frame:      frame,
			Color:      color,
			Name:       im.Name,
			Note:       im.Note,
			Duration:   duration,
			CustomData: im.CustomData,
		})
	}
	return out, nil
}

// playheadFrame reads the current mpv position as a frame.
func playheadFrame(cmd *cobra.Command, frameRate float64) (int, error) {
	client, err := connectMpv(cmd)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	frame, err := client.PlayheadFrame(frameRate)
	if err != nil {
		return 0, fmt.Errorf("failed to get current position: %w", err)
	}
	return frame, nil
}

// selectedMarkers returns the timeline's markers, narrowed by --color when set.
func selectedMarkers(cmd *cobra.Command, t *db.Timeline) (marker.Map, error) {
	names, _ := cmd.Flags().GetStringSlice("color")
	colors, err := marker.ParseColors(names)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return t.Markers(cmd.Context())
	}
	return marker.ByColor(cmd.Context(), t, colors...)
}

func colorFlag(cmd *cobra.Command) (marker.Color, error) {
	name, _ := cmd.Flags().GetString("color")
	return marker.ParseColor(name)
}

func markerFromFlags(cmd *cobra.Command, frame int, color marker.Color, frameRate float64) (marker.Marker, error) {
	name, _ := cmd.Flags().GetString("name")
	note, _ := cmd.Flags().GetString("note")
	custom, _ := cmd.Flags().GetString("custom-data")
	durationStr, _ := cmd.Flags().GetString("duration")

	m := marker.Marker{Frame: frame, Color: color, Name: name, Note: note, CustomData: custom}
	if durationStr != "" {
		d, err := timecode.ParseTimecode(durationStr, frameRate)
		if err != nil {
			return m, fmt.Errorf("invalid duration: %w", err)
		}
		m.Duration = d
	}
	return m, nil
}

func overridesFromFlags(cmd *cobra.Command, frameRate float64) (marker.Overrides, error) {
	var o marker.Overrides
	f := cmd.Flags()
	if s, _ := f.GetString("set-color"); s != "" {
		c, err := marker.ParseColor(s)
		if err != nil {
			return o, err
		}
		o.Color = c
	}
	o.Name, _ = f.GetString("set-name")
	o.Note, _ = f.GetString("set-note")
	o.CustomData, _ = f.GetString("set-custom-data")
	if s, _ := f.GetString("set-duration"); s != "" {
		d, err := timecode.ParseTimecode(s, frameRate)
		if err != nil {
			return o, fmt.Errorf("invalid duration: %w", err)
		}
		o.Duration = d
	}
	return o, nil
}

func init() {
	markerCmd.PersistentFlags().StringP("timeline", "t", "", "Timeline name (optional when only one exists)")

	markerAddCmd.Flags().StringP("color", "c", "Blue", "Marker colour")
	markerAddCmd.Flags().StringP("name", "n", "", "Marker name")
	markerAddCmd.Flags().String("note", "", "Marker note")
	markerAddCmd.Flags().StringP("duration", "d", "", "Duration as timecode or frames")
	markerAddCmd.Flags().String("custom-data", "", "Free-form data kept with the marker")
	markerAddCmd.Flags().BoolP("at-playhead", "p", false, "Use the mpv playhead position")
	markerAddCmd.Flags().BoolP("interactive", "i", false, "Fill in the marker in a form")

	markerListCmd.Flags().StringSliceP("color", "c", nil, "Only these colours")

	markerEditCmd.Flags().StringSliceP("color", "c", nil, "Only edit markers of these colours")
	markerEditCmd.Flags().String("set-color", "", "New colour")
	markerEditCmd.Flags().String("set-name", "", "New name")
	markerEditCmd.Flags().String("set-note", "", "New note")
	markerEditCmd.Flags().String("set-duration", "", "New duration as timecode or frames")
	markerEditCmd.Flags().String("set-custom-data", "", "New custom data")

	markerClearCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	markerCmd.AddCommand(markerAddCmd)
	markerCmd.AddCommand(markerListCmd)
	markerCmd.AddCommand(markerDeleteCmd)
	markerCmd.AddCommand(markerEditCmd)
	markerCmd.AddCommand(markerClearCmd)
	markerCmd.AddCommand(markerImportCmd)
	rootCmd.AddCommand(markerCmd)
}
