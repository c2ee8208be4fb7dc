package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/bcdl/internal/config"
	"github.com/handiism/bcdl/internal/download"
	"github.com/handiism/bcdl/internal/logger"
)

// exitInterrupted is the conventional status after SIGINT.
const exitInterrupted = 130

var opts struct {
	configPath  string
	verbose     bool
	path        string
	trackFormat string
	skipAlbums  []string
	list        bool
	dryRun      bool
	playlist    bool
}

var rootCmd = &cobra.Command{
	Use:   "bcdl [flags] URL|ARTIST...",
	Short: "Download music from Bandcamp",
	Long: `bcdl downloads albums, tracks and whole discographies from Bandcamp.

Arguments may be album, track or artist page URLs. A bare artist name such
as "someartist" downloads everything on https://someartist.bandcamp.com/music.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDownload,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "settings file (default "+config.DefaultPath()+")")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "show verbose output and debug logs")

	f := rootCmd.Flags()
	f.StringVarP(&opts.path, "path", "p", "", "download directory")
	f.StringVarP(&opts.trackFormat, "track-format", "t", "", "track file name format, e.g. \"{tracknum} - {track}\"")
	f.StringSliceVarP(&opts.skipAlbums, "skip-albums", "s", nil, "album titles to skip (comma separated)")
	f.BoolVarP(&opts.list, "list", "l", false, "list albums and tracks without downloading")
	f.BoolVar(&opts.dryRun, "dry-run", false, "show what would be downloaded")
	f.BoolVar(&opts.playlist, "playlist", false, "create a playlist per album")

	rootCmd.AddCommand(searchCmd, configCmd)
}

// Execute runs the root command and exits on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		errorColor.Fprintln(os.Stderr, "Interrupted.")
		os.Exit(exitInterrupted)
	}
	errorColor.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// loadSettings layers the settings file, .env and BCDL_* variables, then
// flags, and validates the result.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	config.LoadDotEnv()

	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("path") {
		settings.DownloadsPath = opts.path
	}
	if flags.Changed("track-format") {
		settings.FileNameFormat = opts.trackFormat
	}
	if flags.Changed("skip-albums") {
		settings.SkipAlbums = append(settings.SkipAlbums, opts.skipAlbums...)
	}
	if flags.Changed("playlist") {
		settings.CreatePlaylist = opts.playlist
	}
	if opts.verbose {
		settings.LogLevel = string(logger.DebugLevel)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func newLogger(settings *config.Settings) (*zap.Logger, error) {
	cfg := settings.ToLoggerConfig()
	cfg.Console = os.Stderr
	return logger.New(cfg)
}

func runDownload(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	out := newPrinter(os.Stdout, opts.verbose)
	manager := download.NewManager(settings, log, out.Event)

	out.Header()
	if err := manager.Initialize(ctx, strings.Join(args, "\n")); err != nil {
		return err
	}

	if opts.list {
		out.Tree(manager.Albums())
		return nil
	}

	if opts.dryRun {
		plan, err := manager.Plan(true)
		if err != nil {
			return err
		}
		out.Plan(plan, settings.ToTrackConfig())
		return nil
	}

	out.Section("Starting downloads...")
	if err := manager.StartDownloads(ctx); err != nil {
		return err
	}

	received, _, done, total := manager.GetProgress()
	out.Summary(done, total, received, manager.Failed())
	return nil
}
