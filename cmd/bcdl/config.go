package main

import (
	"github.com/spf13/cobra"

	"github.com/handiism/bcdl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective settings to the settings file",
	Long: `config merges the settings file, .env and BCDL_* environment variables
and writes the result back, creating the file with defaults on first use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		path := opts.configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := settings.Save(path); err != nil {
			return err
		}
		successColor.Println("Saved", path)
		return nil
	},
}
