package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/bcdl/internal/config"
	"github.com/handiism/bcdl/internal/download"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	s := config.DefaultSettings()
	s.DownloadsPath = t.TempDir()
	return NewModel(s, nil)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_Toggles(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if !m.playlist || !m.covers || !m.verbose {
		t.Errorf("playlist=%v covers=%v verbose=%v", m.playlist, m.covers, m.verbose)
	}
	if m.textInput.Value() != "" {
		t.Errorf("option keys leaked into input: %q", m.textInput.Value())
	}
	if !strings.Contains(m.View(), "[×] Create playlist") {
		t.Error("view does not show the playlist option as set")
	}
}

func TestModel_EnterRequiresInput(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateInput {
		t.Errorf("state = %v, want input", m.state)
	}
}

func TestModel_ProgressLog(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "hidden", Level: download.LevelVerbose}})
	if len(m.logs) != 0 {
		t.Errorf("verbose event shown without verbose mode: %v", m.logs)
	}

	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "line", Level: download.LevelInfo}})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("kept %d log lines, want %d", len(m.logs), maxLogs)
	}
}

func TestModel_InitFailure(t *testing.T) {
	m := newTestModel(t)
	m.state = StateInitializing

	m = update(t, m, InitDoneMsg{Err: download.ErrNoAlbumFound})
	if m.state != StateError || m.err != download.ErrNoAlbumFound {
		t.Fatalf("state = %v, err = %v", m.state, m.err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.state != StateInput || m.err != nil {
		t.Errorf("reset left state = %v, err = %v", m.state, m.err)
	}
}

func TestModel_CancelDuringInit(t *testing.T) {
	m := newTestModel(t)
	m.state = StateInitializing

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateError || m.err != errCancelled {
		t.Fatalf("state = %v, err = %v", m.state, m.err)
	}
	if m.ctx.Err() == nil {
		t.Error("context should be cancelled")
	}

	m = update(t, m, InitDoneMsg{Albums: []string{"late"}})
	if m.state != StateError || m.albums != nil {
		t.Error("a late init result must not restart the download")
	}
}
