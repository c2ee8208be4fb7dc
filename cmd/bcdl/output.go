package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/handiism/bcdl/internal/bandcamp"
	"github.com/handiism/bcdl/internal/download"
	"github.com/handiism/bcdl/internal/model"
)

var (
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	infoColor    = color.New(color.FgCyan)
	dimColor     = color.New(color.Faint)
	titleColor   = color.New(color.FgMagenta, color.Bold)
)

const rule = "────────────────────────────────────────"

// printer writes user facing lines. Event is called from download workers,
// so every write holds mu.
type printer struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

func newPrinter(w io.Writer, verbose bool) *printer {
	return &printer{w: w, verbose: verbose}
}

// Event renders one manager progress event.
func (p *printer) Event(e download.ProgressEvent) {
	if e.Level == download.LevelVerbose && !p.verbose {
		return
	}

	c, prefix := dimColor, "  "
	switch e.Level {
	case download.LevelError:
		c, prefix = errorColor, "✗ "
	case download.LevelWarning:
		c, prefix = warningColor, "! "
	case download.LevelSuccess:
		c, prefix = successColor, "✓ "
	case download.LevelInfo:
		c, prefix = infoColor, "› "
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	c.Fprintln(p.w, prefix+e.Message)
}

func (p *printer) Header() {
	p.mu.Lock()
	defer p.mu.Unlock()
	titleColor.Fprintln(p.w, "Bandcamp Downloader")
	dimColor.Fprintln(p.w, rule)
}

func (p *printer) Section(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w)
	titleColor.Fprintln(p.w, title)
}

// Summary prints the final counts. Track failures were already reported
// one by one and do not change the exit status.
func (p *printer) Summary(done, total int32, received int64, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	dimColor.Fprintln(p.w, rule)
	successColor.Fprintf(p.w, "Complete: %d/%d files (%.2f MB)\n", done, total, float64(received)/1024/1024)
	if failed > 0 {
		warningColor.Fprintf(p.w, "%d tracks failed\n", failed)
	}
}

// Tree prints albums grouped by artist.
func (p *printer) Tree(albums []*model.Album) {
	p.mu.Lock()
	defer p.mu.Unlock()

	byArtist := lo.GroupBy(albums, func(a *model.Album) string { return a.Artist })
	artists := lo.Uniq(lo.Map(albums, func(a *model.Album, _ int) string { return a.Artist }))

	for _, artist := range artists {
		titleColor.Fprintln(p.w, artist)
		group := byArtist[artist]
		for i, album := range group {
			branch, indent := "├── ", "│   "
			if i == len(group)-1 {
				branch, indent = "└── ", "    "
			}
			infoColor.Fprintf(p.w, "%s%s%s\n", branch, album.Title, releaseSuffix(album))
			for j, track := range album.Tracks {
				leaf := "├── "
				if j == len(album.Tracks)-1 {
					leaf = "└── "
				}
				fmt.Fprintf(p.w, "%s%s%02d %s\n", indent, leaf, track.Number, track.Name)
			}
		}
	}
}

// Plan prints the requests and skips of a dry run.
func (p *printer) Plan(plan *download.Plan, naming *model.TrackConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w)
	titleColor.Fprintf(p.w, "Would download %d tracks:\n", len(plan.Requests))
	for _, req := range plan.Requests {
		fmt.Fprintln(p.w, "  "+req.Path(naming))
	}

	if len(plan.Skipped) == 0 {
		return
	}
	warningColor.Fprintf(p.w, "Skipping %d tracks:\n", len(plan.Skipped))
	for _, s := range plan.Skipped {
		dimColor.Fprintf(p.w, "  %s: %s (%s)\n", s.Album.Title, trackName(s.Track), s.Reason)
	}
}

func releaseSuffix(album *model.Album) string {
	ts, ok := bandcamp.ParseReleaseDate(album.ReleaseDate)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (%04d-%02d-%02d)", ts.Year, ts.Month, ts.Day)
}

func trackName(t *model.Track) string {
	if t.Name != "" {
		return t.Name
	}
	if t.URL != "" {
		return filepath.Base(t.URL)
	}
	return fmt.Sprintf("track %d", t.Number)
}

// shorten trims s to n runes for table cells.
func shorten(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
