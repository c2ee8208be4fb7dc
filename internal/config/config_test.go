package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.FileNameFormat != DefaultSettings().FileNameFormat {
		t.Errorf("FileNameFormat = %q", s.FileNameFormat)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	s := DefaultSettings()
	s.DownloadsPath = "/music"
	s.FileNameFormat = "{tracknum} {track}"
	s.SkipAlbums = []string{"Demo"}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.DownloadsPath != "/music" || got.FileNameFormat != "{tracknum} {track}" {
		t.Errorf("loaded %+v", got)
	}
	if len(got.SkipAlbums) != 1 || got.SkipAlbums[0] != "Demo" {
		t.Errorf("SkipAlbums = %v", got.SkipAlbums)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"create_playlist": true}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !s.CreatePlaylist {
		t.Error("CreatePlaylist should be loaded")
	}
	if s.MaxConcurrentCompletions != 4 {
		t.Errorf("MaxConcurrentCompletions = %d, want default 4", s.MaxConcurrentCompletions)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDownloadsPath, "/env/music")
	t.Setenv(EnvCompletions, "9")
	t.Setenv(EnvPageWorkers, "not a number")
	t.Setenv(EnvPlaylist, "true")
	t.Setenv(EnvPollMillis, "250")

	s := DefaultSettings()
	s.ApplyEnv()

	if s.DownloadsPath != "/env/music" {
		t.Errorf("DownloadsPath = %q", s.DownloadsPath)
	}
	if s.MaxConcurrentCompletions != 9 {
		t.Errorf("MaxConcurrentCompletions = %d", s.MaxConcurrentCompletions)
	}
	if s.MaxConcurrentPages != 4 {
		t.Errorf("invalid int should keep default, got %d", s.MaxConcurrentPages)
	}
	if !s.CreatePlaylist {
		t.Error("CreatePlaylist should be true")
	}
	if s.PollInterval() != 250*time.Millisecond {
		t.Errorf("PollInterval = %v", s.PollInterval())
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("BCDL_TRACK_FORMAT={artist} - {track}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvTrackFormat, "")
	os.Unsetenv(EnvTrackFormat)

	LoadDotEnv(path)
	s := DefaultSettings()
	s.ApplyEnv()

	if s.FileNameFormat != "{artist} - {track}" {
		t.Errorf("FileNameFormat = %q", s.FileNameFormat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"bad format", func(s *Settings) { s.FileNameFormat = "{title}" }},
		{"no page workers", func(s *Settings) { s.MaxConcurrentPages = 0 }},
		{"no completion workers", func(s *Settings) { s.MaxConcurrentCompletions = 0 }},
		{"unknown proxy", func(s *Settings) { s.ProxyType = "socks" }},
		{"manual proxy without address", func(s *Settings) { s.ProxyType = "manual" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConversions(t *testing.T) {
	s := DefaultSettings()
	s.ProxyType = "manual"
	s.ProxyAddress = "10.0.0.1"
	s.ProxyPort = 3128
	s.ModifyTags = false

	if p := s.ToProxyConfig(); p.Address != "10.0.0.1" || p.Port != 3128 {
		t.Errorf("ToProxyConfig = %+v", p)
	}
	if c := s.ToCoverOptions(); !c.Resize || c.MaxSize != 1000 || !c.ConvertToJPEG {
		t.Errorf("ToCoverOptions = %+v", c)
	}
	if c := s.ToTagConfig(); c.ModifyTags {
		t.Error("ToTagConfig should carry ModifyTags")
	}
	if c := s.ToTrackConfig(); c.FileNameFormat != s.FileNameFormat {
		t.Errorf("ToTrackConfig = %+v", c)
	}
}
