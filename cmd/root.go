package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/user/markerman/config"
	"github.com/user/markerman/db"
	"github.com/user/markerman/deps"
	"github.com/user/markerman/logging"
)

var Version = "0.1.0"

var rootFlags struct {
	configPath string
	dbPath     string
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "markerman",
	Short: "Turn timeline markers into render jobs",
	Long: `markerman reads coloured markers from a timeline and turns them into
named clip ranges, then queues one render job per clip.

Features:
  - Store timelines and their markers in SQLite
  - Capture markers at the mpv playhead
  - Derive clips from marker pairs or marker durations
  - Render clips with ffmpeg, or walk through it interactively`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load() // best-effort: load .env if present

		cfg, err := config.Load(rootFlags.configPath)
		if err != nil {
			return err
		}
		if rootFlags.dbPath != "" {
			cfg.DBPath = rootFlags.dbPath
		}

		logging.Init(cfg.LogLevel, rootFlags.verbose)
		log.Debug().Str("db", cfg.DBPath).Str("log_level", cfg.LogLevel).Msg("configuration loaded")

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("markerman version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the external tools (ffmpeg for rendering, mpv for playhead capture and previews) are installed and that the database opens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig(cmd)
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true
		report := func(name string, err error) {
			if err != nil {
				fmt.Printf("✗ %s: %v\n", name, err)
				allGood = false
				return
			}
			fmt.Printf("✓ %s: OK\n", name)
		}

		report("ffmpeg", deps.CheckFfmpeg(cfg.FFmpeg.BinaryPath))
		report("mpv", deps.CheckMpv(cfg.Mpv.BinaryPath))

		database, err := db.Open(cfg.DBPath)
		if err == nil {
			database.Close()
		}
		report("database", err)

		fmt.Println()
		if !allGood {
			return errors.New("some dependencies are missing; install them to use all features")
		}
		fmt.Println("All dependencies are installed!")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "Config file (default: ./markerman.yaml or ~/.config/markerman/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.dbPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

// Execute runs the CLI. Interrupts cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func appConfig(cmd *cobra.Command) *config.Config {
	return config.FromContext(cmd.Context())
}

// openDB opens the configured timeline store.
func openDB(cmd *cobra.Command) (*sql.DB, error) {
	database, err := db.Open(appConfig(cmd).DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}
