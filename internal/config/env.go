package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvDownloadsPath = "BCDL_PATH"
	EnvTrackFormat   = "BCDL_TRACK_FORMAT"
	EnvPageWorkers   = "BCDL_PAGE_WORKERS"
	EnvCompletions   = "BCDL_COMPLETION_WORKERS"
	EnvPollMillis    = "BCDL_POLL_INTERVAL_MS"
	EnvLogLevel      = "BCDL_LOG_LEVEL"
	EnvLogFile       = "BCDL_LOG_FILE"
	EnvPlaylist      = "BCDL_PLAYLIST"
	EnvProxyType     = "BCDL_PROXY_TYPE"
	EnvProxyAddress  = "BCDL_PROXY_ADDRESS"
	EnvProxyPort     = "BCDL_PROXY_PORT"
)

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

// LoadDotEnv loads the given .env files (".env" when none are given) into the
// process environment. Variables already set are not overridden and missing
// files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides s with any BCDL_* variables that are set.
func (s *Settings) ApplyEnv() {
	s.DownloadsPath = getEnv(EnvDownloadsPath, s.DownloadsPath)
	s.FileNameFormat = getEnv(EnvTrackFormat, s.FileNameFormat)
	s.MaxConcurrentPages = getEnvInt(EnvPageWorkers, s.MaxConcurrentPages)
	s.MaxConcurrentCompletions = getEnvInt(EnvCompletions, s.MaxConcurrentCompletions)
	s.PollIntervalMillis = getEnvInt(EnvPollMillis, s.PollIntervalMillis)
	s.LogLevel = getEnv(EnvLogLevel, s.LogLevel)
	s.LogFile = getEnv(EnvLogFile, s.LogFile)
	s.CreatePlaylist = getEnvBool(EnvPlaylist, s.CreatePlaylist)
	s.ProxyType = getEnv(EnvProxyType, s.ProxyType)
	s.ProxyAddress = getEnv(EnvProxyAddress, s.ProxyAddress)
	s.ProxyPort = getEnvInt(EnvProxyPort, s.ProxyPort)
}
