package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/markerman/db"
	"github.com/user/markerman/logging"
	"github.com/user/markerman/mpv"
	"github.com/user/markerman/pkg/timecode"
	"github.com/user/markerman/tui"
	"github.com/user/markerman/tui/components"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Manage timelines",
	Long:  `Create, list, and inspect timelines. A timeline holds markers plus the frame rate and resolution clips are rendered at.`,
}

var timelineCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := timelineFromFlags(cmd, db.Timeline{Name: args[0]})
		if err != nil {
			return err
		}

		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		created, err := db.CreateTimeline(cmd.Context(), database, t)
		if err != nil {
			return fmt.Errorf("failed to create timeline: %w", err)
		}

		fmt.Printf("Timeline %q created (ID %d, %s fps, %dx%d, starts at %s)\n",
			created.Name, created.ID, formatRate(created.FrameRate), created.Width, created.Height,
			timecode.FramesToTimecode(created.Start, created.FrameRate))
		return nil
	},
}

var timelineUpdateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Change a timeline's format or media",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := db.LoadTimeline(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}
		updated, err := timelineFromFlags(cmd, *t)
		if err != nil {
			return err
		}
		if err := db.UpdateTimeline(cmd.Context(), database, &updated); err != nil {
			return err
		}

		fmt.Printf("Timeline %q updated.\n", updated.Name)
		return nil
	},
}

var timelineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List timelines",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		timelines, err := db.ListTimelines(cmd.Context(), database)
		if err != nil {
			return err
		}
		if len(timelines) == 0 {
			fmt.Println("No timelines yet. Create one with 'markerman timeline create <name>'.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Name\tFPS\tResolution\tStart\tMarkers\tMedia")
		fmt.Fprintln(w, "----\t---\t----------\t-----\t-------\t-----")
		for _, t := range timelines {
			fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%d\t%s\n",
				t.Name, formatRate(t.FrameRate), t.Width, t.Height,
				timecode.FramesToTimecode(t.Start, t.FrameRate), t.MarkerCount, t.MediaPath)
		}
		w.Flush()

		fmt.Printf("\n%d timeline(s) found.\n", len(timelines))
		return nil
	},
}

var timelineShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a timeline and where its markers sit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := db.LoadTimeline(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}
		markers, err := t.Markers(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Timeline:   %s\n", t.Name)
		fmt.Printf("Format:     %dx%d @ %s fps (%s)\n", t.Width, t.Height, formatRate(t.FrameRate),
			timecode.AspectRatio(t.Height, t.Width))
		fmt.Printf("Starts at:  %s\n", timecode.FramesToTimecode(t.Start, t.FrameRate))
		fmt.Printf("Media:      %s\n", valueOr(t.MediaPath, "(none)"))
		fmt.Printf("Markers:    %d\n", len(markers))

		if len(markers) == 0 {
			return nil
		}
		end := 0
		for _, m := range markers {
			end = max(end, m.Frame+m.Duration)
		}
		fmt.Println()
		fmt.Println(components.MarkerStrip(markers, 0, end, t.FrameRate, 80))
		fmt.Println(tui.MarkerTable(markers, t.FrameRate))
		return nil
	},
}

var timelineOpenCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Open a timeline's media in mpv",
	Long:  `Open the timeline's media file in mpv with the IPC socket enabled, so 'marker add --at-playhead' and 'clip preview' can talk to it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig(cmd)
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		t, err := db.LoadTimeline(cmd.Context(), database, args[0])
		database.Close()
		if err != nil {
			return err
		}
		if t.MediaPath == "" {
			return fmt.Errorf("timeline %q has no media; set one with 'timeline update --media'", t.Name)
		}
		if _, err := os.Stat(t.MediaPath); err != nil {
			return fmt.Errorf("media file not found: %s", t.MediaPath)
		}

		fmt.Printf("Opening media: %s\n", filepath.Base(t.MediaPath))
		process, err := mpv.LaunchMpv(cfg.Mpv.BinaryPath, cfg.Mpv.SocketPath, t.MediaPath)
		if err != nil {
			return fmt.Errorf("failed to launch mpv: %w", err)
		}

		// Wait briefly for socket to be ready
		client := mpv.NewClient(cfg.Mpv.SocketPath)
		var connectErr error
		for i := 0; i < 50; i++ {
			time.Sleep(100 * time.Millisecond)
			if connectErr = client.Connect(); connectErr == nil {
				break
			}
		}
		if connectErr != nil {
			if process.Process != nil {
				process.Process.Kill()
			}
			return fmt.Errorf("failed to connect to mpv: %w", connectErr)
		}
		defer client.Close()

		if duration, err := client.GetDuration(); err == nil {
			fmt.Printf("Session started: %s (duration: %s)\n", t.Name, timecode.FormatTime(duration))
		} else {
			fmt.Printf("Session started: %s\n", t.Name)
		}
		logger := logging.WithComponent("mpv")
		logger.Debug().Str("socket", client.SocketPath()).Msg("connected")

		return process.Wait()
	},
}

var timelineDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a timeline and its markers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := db.LoadTimeline(cmd.Context(), database, args[0])
		if err != nil {
			return err
		}

		if !force {
			ok, err := confirm(cmd, fmt.Sprintf("Delete timeline %q?", t.Name), "All of its markers are deleted too.")
			if err != nil || !ok {
				return err
			}
		}

		if err := db.DeleteTimeline(cmd.Context(), database, t.ID); err != nil {
			return fmt.Errorf("failed to delete timeline: %w", err)
		}
		fmt.Printf("Timeline %q deleted.\n", t.Name)
		return nil
	},
}

// timelineFromFlags applies the format flags that were set on top of t.
func timelineFromFlags(cmd *cobra.Command, t db.Timeline) (db.Timeline, error) {
	f := cmd.Flags()
	if t.FrameRate == 0 || f.Changed("rate") {
		t.FrameRate, _ = f.GetFloat64("rate")
	}
	if t.Width == 0 || f.Changed("width") {
		t.Width, _ = f.GetInt("width")
	}
	if t.Height == 0 || f.Changed("height") {
		t.Height, _ = f.GetInt("height")
	}
	if f.Changed("media") {
		media, _ := f.GetString("media")
		if media != "" {
			abs, err := filepath.Abs(media)
			if err != nil {
				return t, fmt.Errorf("failed to resolve media path: %w", err)
			}
			media = abs
		}
		t.MediaPath = media
	}
	if f.Changed("start") {
		start, _ := f.GetString("start")
		frame, err := timecode.ParseTimecode(start, t.FrameRate)
		if err != nil {
			return t, fmt.Errorf("invalid start: %w", err)
		}
		t.Start = frame
	}
	return t, nil
}

// resolveTimeline loads the timeline named by --timeline, or the only
// timeline when the flag is empty and exactly one exists.
func resolveTimeline(cmd *cobra.Command, database *sql.DB) (*db.Timeline, error) {
	name, _ := cmd.Flags().GetString("timeline")
	if name != "" {
		return db.LoadTimeline(cmd.Context(), database, name)
	}

	all, err := db.ListTimelines(cmd.Context(), database)
	if err != nil {
		return nil, err
	}
	switch len(all) {
	case 0:
		return nil, errors.New("no timelines yet. Create one with 'markerman timeline create <name>'")
	case 1:
		return db.LoadTimeline(cmd.Context(), database, all[0].Name)
	default:
		return nil, fmt.Errorf("%d timelines exist; choose one with --timeline", len(all))
	}
}

func confirm(cmd *cobra.Command, title, description string) (bool, error) {
	ok, err := (&tui.Dialog{}).Confirm(cmd.Context(), title, description, "Yes, delete")
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Println("Deletion cancelled.")
	}
	return ok, nil
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%g", rate)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func init() {
	for _, c := range []*cobra.Command{timelineCreateCmd, timelineUpdateCmd} {
		c.Flags().Float64P("rate", "r", 24, "Frame rate")
		c.Flags().Int("width", 1920, "Horizontal resolution")
		c.Flags().Int("height", 1080, "Vertical resolution")
		c.Flags().String("start", "0", "Start timecode (HH:MM:SS:FF) or frame")
		c.Flags().StringP("media", "m", "", "Source media file rendered from")
	}
	timelineDeleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	timelineCmd.AddCommand(timelineCreateCmd)
	timelineCmd.AddCommand(timelineUpdateCmd)
	timelineCmd.AddCommand(timelineListCmd)
	timelineCmd.AddCommand(timelineShowCmd)
	timelineCmd.AddCommand(timelineOpenCmd)
	timelineCmd.AddCommand(timelineDeleteCmd)
	rootCmd.AddCommand(timelineCmd)
}
