// Package config provides configuration management for bcdl.
//
// Settings come from three layers, later ones winning:
//
//  1. DefaultSettings
//  2. A JSON file read by Load
//  3. BCDL_* environment variables, optionally from a .env file
//
// Command-line flags are applied on top by the commands themselves.
//
// # Loading
//
//	config.LoadDotEnv()
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // a missing file is not an error, it yields defaults
//	}
//	settings.ApplyEnv()
//	if err := settings.Validate(); err != nil {
//	    // ...
//	}
//
// # Saving Settings
//
//	settings.DownloadsPath = "/custom/path"
//	err := settings.Save("/path/to/config.json")
package config
