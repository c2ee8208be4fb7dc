// Command bcdl-tui is the interactive terminal front end of bcdl.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/bcdl/internal/config"
	"github.com/handiism/bcdl/internal/logger"
	"github.com/handiism/bcdl/internal/tui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "bcdl-tui",
	Short:        "Interactive Bandcamp downloader",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(*cobra.Command, []string) error {
		config.LoadDotEnv()
		settings, err := config.Load(configPath)
		if err != nil {
			return err
		}
		settings.ApplyEnv()
		if err := settings.Validate(); err != nil {
			return err
		}

		// The screen belongs to the UI; logs only go to the optional file.
		log, err := logger.New(settings.ToLoggerConfig())
		if err != nil {
			return err
		}
		defer log.Sync()

		return tui.Run(settings, log)
	},
}

func main() {
	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "settings file")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
