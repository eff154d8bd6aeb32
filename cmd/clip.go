package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/user/markerman/clip"
	"github.com/user/markerman/db"
	"github.com/user/markerman/logging"
	"github.com/user/markerman/marker"
	"github.com/user/markerman/mpv"
	"github.com/user/markerman/render"
	"github.com/user/markerman/tui"
	"github.com/user/markerman/tui/styles"
)

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Derive and render clips from markers",
	Long:  `Turn a timeline's markers into clips, list them, preview them in mpv, and render them with ffmpeg.`,
}

var clipMarkCmd = &cobra.Command{
	Use:   "mark",
	Short: "List the clips the markers describe",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, clips, err := markClips(cmd, database)
		if err != nil {
			return err
		}

		fmt.Println(styles.Header.Render(fmt.Sprintf("Marked %d clips based on marker positions.", len(clips))))
		if len(clips) > 0 {
			fmt.Println(tui.ClipTable(clips, t.FrameRate))
		}
		return nil
	},
}

var clipRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every clip with ffmpeg",
	Long: `Derive clips and render each one into the target directory. A clip that fails
is reported and the rest still render. --dry-run queues the jobs in memory and
prints them instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig(cmd)
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.Render.TargetDir
		}
		if dir == "" {
			return errors.New("no render location; pass --dir or set render.target_dir")
		}
		dir, err := render.NormalizeDir(dir)
		if err != nil {
			return err
		}
		if err := render.ProbeWritable(dir); err != nil {
			return err
		}

		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, clips, err := markClips(cmd, database)
		if err != nil {
			return err
		}
		if len(clips) == 0 {
			fmt.Println("No clips to render.")
			return nil
		}

		project, err := render.LoadProjectSettings(cmd.Context(), t)
		if err != nil {
			return err
		}

		logger := logging.WithComponent("render")
		var queue render.Queue
		memory := render.NewMemoryQueue()
		if dryRun {
			queue = memory
		} else {
			if t.MediaPath == "" {
				return fmt.Errorf("timeline %q has no media to render from", t.Name)
			}
			queue = render.NewFFmpegQueue(logger, cfg.FFmpeg.BinaryPath, t.MediaPath, t.Start)
		}

		sub := &render.Submitter{
			Queue:     queue,
			Project:   project,
			TargetDir: dir,
			Encoding:  cfg.Render.Encoding,
			Logger:    logger,
		}
		report, err := sub.SubmitAll(cmd.Context(), clips)
		if err != nil {
			return err
		}

		if dryRun {
			for _, job := range memory.Jobs() {
				r := job.Request
				fmt.Printf("%s  %s  frames %d-%d  %dx%d @ %g\n", job.ID, r.CustomName, r.MarkIn, r.MarkOut, r.FormatWidth, r.FormatHeight, r.FrameRate)
			}
		}
		for _, f := range report.Failures {
			fmt.Printf("✗ %s: %v\n", f.Clip.Filename, f.Err)
		}
		fmt.Printf("Added %d of %d clips to the render queue.\n", report.Submitted(), len(clips))
		if len(report.Failures) > 0 {
			return fmt.Errorf("%d clip(s) failed to render", len(report.Failures))
		}
		return nil
	},
}

var clipPreviewCmd = &cobra.Command{
	Use:   "preview <index>",
	Short: "Loop a clip in the running mpv session",
	Long:  `Loop a clip in the running mpv session. --stop clears the loop and pauses playback.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if stop, _ := cmd.Flags().GetBool("stop"); stop {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if stop, _ := cmd.Flags().GetBool("stop"); stop {
			client, err := connectMpv(cmd)
			if err != nil {
				return err
			}
			defer client.Close()
			if err := client.StopPreview(); err != nil {
				return fmt.Errorf("failed to stop preview: %w", err)
			}
			fmt.Println("Preview stopped.")
			return nil
		}

		index, err := strconv.Atoi(args[0])
		if err != nil || index < 1 {
			return fmt.Errorf("invalid clip index: %s", args[0])
		}

		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, clips, err := markClips(cmd, database)
		if err != nil {
			return err
		}
		if index > len(clips) {
			return fmt.Errorf("clip %d not found; %d clip(s) marked", index, len(clips))
		}
		c := clips[index-1]

		client, err := connectMpv(cmd)
		if err != nil {
			return err
		}
		defer client.Close()

		// mpv plays the media, which starts at the timeline's first frame.
		if err := client.PreviewRange(c.InPoint-t.Start, c.OutPoint-t.Start, t.FrameRate, c.Filename); err != nil {
			return fmt.Errorf("failed to preview clip: %w", err)
		}
		fmt.Printf("Looping %s (%s - %s)\n", c.Filename, c.InTimecode(t.FrameRate), c.OutTimecode(t.FrameRate))
		return nil
	},
}

func connectMpv(cmd *cobra.Command) (*mpv.Client, error) {
	client := mpv.NewClient(appConfig(cmd).Mpv.SocketPath)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to mpv: %w\n(Is 'markerman timeline open' running?)", err)
	}
	return client, nil
}

// markClips loads the timeline and interprets its markers with the --color
// and --strategy flags, falling back to the session config.
func markClips(cmd *cobra.Command, database *sql.DB) (*db.Timeline, []clip.Clip, error) {
	cfg := appConfig(cmd)

	t, err := resolveTimeline(cmd, database)
	if err != nil {
		return nil, nil, err
	}

	names, _ := cmd.Flags().GetStringSlice("color")
	colors, err := marker.ParseColors(names)
	if err != nil {
		return nil, nil, err
	}
	if len(colors) == 0 {
		colors = cfg.SessionColors()
	}
	if len(colors) == 0 {
		return nil, nil, errors.New("no marker colours selected; pass --color or set session.colors")
	}

	strategy, _ := cfg.SessionStrategy()
	if cmd.Flags().Changed("strategy") {
		name, _ := cmd.Flags().GetString("strategy")
		if strategy, err = clip.ParseStrategy(name); err != nil {
			return nil, nil, err
		}
	}

	markers, err := marker.ByColor(cmd.Context(), t, colors...)
	if err != nil {
		return nil, nil, err
	}
	return t, strategy.Interpret(markers, t.Start, t.FrameRate), nil
}

func init() {
	clipCmd.PersistentFlags().StringP("timeline", "t", "", "Timeline name (optional when only one exists)")
	clipCmd.PersistentFlags().StringSliceP("color", "c", nil, "Marker colours to use (default: session.colors)")
	clipCmd.PersistentFlags().StringP("strategy", "s", "dual", "How markers become clips: dual or duration")

	clipRenderCmd.Flags().StringP("dir", "o", "", "Render location (default: render.target_dir)")
	clipRenderCmd.Flags().Bool("dry-run", false, "Queue jobs in memory and print them")
	clipPreviewCmd.Flags().Bool("stop", false, "Clear the preview loop and pause")

	clipCmd.AddCommand(clipMarkCmd)
	clipCmd.AddCommand(clipRenderCmd)
	clipCmd.AddCommand(clipPreviewCmd)
	rootCmd.AddCommand(clipCmd)
}
