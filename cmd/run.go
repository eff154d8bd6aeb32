package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/markerman/logging"
	"github.com/user/markerman/render"
	"github.com/user/markerman/session"
	"github.com/user/markerman/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Mark and render clips interactively",
	Long: `Walk through one pass on a timeline: pick marker colours, pick how the
markers become clips, review the clip table, choose a render location and
queue the renders with a progress view. Closing any prompt ends the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig(cmd)
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		t, err := resolveTimeline(cmd, database)
		if err != nil {
			return err
		}

		logger := logging.WithComponent("session")
		var queue render.Queue
		if dryRun {
			queue = render.NewMemoryQueue()
		} else {
			if t.MediaPath == "" {
				return fmt.Errorf("timeline %q has no media to render from; use --dry-run or 'timeline update --media'", t.Name)
			}
			queue = render.NewFFmpegQueue(logging.WithComponent("render"), cfg.FFmpeg.BinaryPath, t.MediaPath, t.Start)
		}

		strategy, _ := cfg.SessionStrategy()
		s := session.New(session.Deps{
			Markers:  t,
			Settings: t,
			Queue:    queue,
			Dialog:   tui.NewDialog(t.FrameRate, cfg.SessionColors(), strategy),
			Renderer: &tui.ProgressRenderer{},
			Logger:   logger,
		}, session.Options{
			Encoding:  cfg.Render.Encoding,
			TargetDir: cfg.Render.TargetDir,
		})

		res, err := s.Run(cmd.Context())
		if err != nil {
			return err
		}
		if res.Cancelled {
			fmt.Println("Cancelled.")
		}
		logger.Debug().
			Bool("cancelled", res.Cancelled).
			Int("clips", len(res.Clips)).
			Int("queued", res.Report.Submitted()).
			Msg("session finished")
		return nil
	},
}

func init() {
	runCmd.Flags().StringP("timeline", "t", "", "Timeline name (optional when only one exists)")
	runCmd.Flags().Bool("dry-run", false, "Queue jobs in memory instead of rendering")
	rootCmd.AddCommand(runCmd)
}
