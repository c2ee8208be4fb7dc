package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/handiism/bcdl/internal/audio"
	"github.com/handiism/bcdl/internal/http"
	ioutils "github.com/handiism/bcdl/internal/io"
	"github.com/handiism/bcdl/internal/logger"
	"github.com/handiism/bcdl/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath            string   `json:"downloads_path"`
	MaxConcurrentPages       int      `json:"max_concurrent_pages"`
	MaxConcurrentCompletions int      `json:"max_concurrent_completions"`
	PollIntervalMillis       int      `json:"poll_interval_ms"`
	RequestTimeoutSeconds    int      `json:"request_timeout_seconds"`
	SkipAlbums               []string `json:"skip_albums"`

	// File naming
	FileNameFormat   string `json:"file_name_format"`
	CoverArtFileName string `json:"cover_art_file_name"`

	// Cover art settings
	SaveCoverArtInFolder  bool `json:"save_cover_art_in_folder"`
	SaveCoverArtInTags    bool `json:"save_cover_art_in_tags"`
	CoverArtInTagsResize  bool `json:"cover_art_in_tags_resize"`
	CoverArtInTagsMaxSize int  `json:"cover_art_in_tags_max_size"`
	ConvertCoverArtToJPG  bool `json:"convert_cover_art_to_jpg"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`

	// Tag settings
	ModifyTags bool `json:"modify_tags"`

	// Proxy settings
	ProxyType    string `json:"proxy_type"` // none, system, manual
	ProxyAddress string `json:"proxy_address"`
	ProxyPort    int    `json:"proxy_port"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DownloadsPath:            filepath.Join(homeDir, "Music", "Bandcamp"),
		MaxConcurrentPages:       4,
		MaxConcurrentCompletions: 4,
		PollIntervalMillis:       1000,
		RequestTimeoutSeconds:    60,

		FileNameFormat:   model.DefaultFileNameFormat,
		CoverArtFileName: "cover",

		SaveCoverArtInFolder:  false,
		SaveCoverArtInTags:    true,
		CoverArtInTagsResize:  true,
		CoverArtInTagsMaxSize: 1000,
		ConvertCoverArtToJPG:  true,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ModifyTags: true,

		ProxyType: "system",

		LogLevel: string(logger.WarnLevel),
	}
}

// DefaultPath is the settings file used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bcdl.json"
	}
	return filepath.Join(dir, "bcdl", "settings.json")
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports settings that cannot work.
func (s *Settings) Validate() error {
	if err := model.ValidateFileNameFormat(s.FileNameFormat); err != nil {
		return fmt.Errorf("file_name_format: %w", err)
	}
	if s.MaxConcurrentPages < 1 {
		return fmt.Errorf("max_concurrent_pages must be at least 1, got %d", s.MaxConcurrentPages)
	}
	if s.MaxConcurrentCompletions < 1 {
		return fmt.Errorf("max_concurrent_completions must be at least 1, got %d", s.MaxConcurrentCompletions)
	}
	switch s.ProxyType {
	case "none", "system":
	case "manual":
		if s.ProxyAddress == "" {
			return fmt.Errorf("proxy_address is required for a manual proxy")
		}
	default:
		return fmt.Errorf("proxy_type must be none, system or manual, got %q", s.ProxyType)
	}
	return nil
}

// PollInterval is how long the download loop waits for an event before
// checking for cancellation.
func (s *Settings) PollInterval() time.Duration {
	if s.PollIntervalMillis <= 0 {
		return time.Second
	}
	return time.Duration(s.PollIntervalMillis) * time.Millisecond
}

// RequestTimeout bounds page and API requests.
func (s *Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// ToTrackConfig converts settings to TrackConfig.
func (s *Settings) ToTrackConfig() *model.TrackConfig {
	return &model.TrackConfig{
		FileNameFormat: s.FileNameFormat,
	}
}

// ToProxyConfig converts settings to the HTTP proxy configuration.
func (s *Settings) ToProxyConfig() http.ProxyConfig {
	return http.ProxyConfig{
		Type:    s.ProxyType,
		Address: s.ProxyAddress,
		Port:    s.ProxyPort,
	}
}

// ToCoverOptions converts settings to cover art processing options.
func (s *Settings) ToCoverOptions() ioutils.CoverOptions {
	return ioutils.CoverOptions{
		Resize:        s.CoverArtInTagsResize,
		MaxSize:       s.CoverArtInTagsMaxSize,
		ConvertToJPEG: s.ConvertCoverArtToJPG,
	}
}

// ToTagConfig converts settings to the tagger configuration.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.ModifyTags = s.ModifyTags
	return cfg
}

// ToLoggerConfig converts settings to a logger configuration. The console
// writer is left for the caller to choose.
func (s *Settings) ToLoggerConfig() logger.Config {
	return logger.Config{
		Level:      logger.LogLevel(s.LogLevel),
		OutputPath: s.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}
