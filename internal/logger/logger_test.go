package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   LogLevel
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{"", zapcore.WarnLevel},
		{"loud", zapcore.WarnLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: InfoLevel, Console: &buf})
	if err != nil {
		t.Fatal(err)
	}

	log.Debug("hidden")
	log.Info("shown", zap.String("url", "https://a.bandcamp.com"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line should be filtered at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "https://a.bandcamp.com") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bcdl.log")
	log, err := New(Config{Level: DebugLevel, OutputPath: path, MaxSize: 1})
	if err != nil {
		t.Fatal(err)
	}

	log.Debug("to file", zap.Int("tracks", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) || !strings.Contains(string(data), `"tracks":3`) {
		t.Errorf("unexpected file content %s", data)
	}
}

func TestNew_Nop(t *testing.T) {
	log, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	log.Error("nowhere")
}
