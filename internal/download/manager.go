package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/handiism/bcdl/internal/audio"
	"github.com/handiism/bcdl/internal/bandcamp"
	"github.com/handiism/bcdl/internal/config"
	"github.com/handiism/bcdl/internal/errs"
	"github.com/handiism/bcdl/internal/http"
	ioutils "github.com/handiism/bcdl/internal/io"
	"github.com/handiism/bcdl/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ErrNoAlbumFound is returned by Initialize when no input yielded an album.
var ErrNoAlbumFound = errors.New("no album found")

// Manager coordinates album downloads.
//
// It resolves input URLs into albums, plans requests, runs the Engine with
// itself as the Sink and writes playlists afterwards. Every per-track
// result is reported through the onProgress callback, which may be called
// from several goroutines.
type Manager struct {
	settings *config.Settings
	logger   *zap.Logger
	client   *http.Client
	catalog  *bandcamp.Catalog
	naming   *model.TrackConfig
	pipeline *Pipeline
	playlist *audio.PlaylistCreator

	albums []*model.Album
	plan   *Plan

	totalBytes      atomic.Int64
	receivedBytes   atomic.Int64
	totalFiles      atomic.Int32
	downloadedFiles atomic.Int32
	skippedFiles    atomic.Int32
	failedFiles     atomic.Int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, logger *zap.Logger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := http.NewClient(
		http.WithTimeout(settings.RequestTimeout()),
		http.WithProxy(settings.ToProxyConfig()),
	)
	naming := settings.ToTrackConfig()

	var tagger Tagger
	if settings.ModifyTags || settings.SaveCoverArtInTags {
		tagger = audio.NewTagger(settings.ToTagConfig())
	}

	var pipelineOpts []PipelineOption
	if settings.SaveCoverArtInTags || settings.SaveCoverArtInFolder {
		var coverOpts []CoverOption
		if settings.SaveCoverArtInFolder {
			coverOpts = append(coverOpts, SaveInFolder(settings.CoverArtFileName))
		}
		coverOpts = append(coverOpts, WithCoverLogger(logger))
		covers := NewCoverCache(client, ioutils.NewImageService(settings.ToCoverOptions()), coverOpts...)
		if settings.SaveCoverArtInTags {
			pipelineOpts = append(pipelineOpts, WithCovers(covers))
		} else {
			pipelineOpts = append(pipelineOpts, WithCovers(folderOnly{covers}))
		}
	}
	pipelineOpts = append(pipelineOpts, WithPipelineLogger(logger))

	return &Manager{
		settings: settings,
		logger:   logger,
		client:   client,
		catalog: bandcamp.NewCatalog(client,
			bandcamp.WithPageWorkers(settings.MaxConcurrentPages),
			bandcamp.WithLogger(logger),
		),
		naming:     naming,
		pipeline:   NewPipeline(naming, tagger, pipelineOpts...),
		playlist:   audio.NewPlaylistCreator(audio.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended, naming),
		onProgress: onProgress,
	}
}

// Client returns the HTTP client shared by the manager's components.
func (m *Manager) Client() *http.Client {
	return m.client
}

// Initialize fetches album info from the input URLs.
//
// Input may hold several URLs or artist names separated by newlines,
// commas or spaces. An input that is not a release or discography page
// aborts initialization.
func (m *Manager) Initialize(ctx context.Context, input string) error {
	for _, raw := range parseInput(input) {
		url, err := bandcamp.NormalizeURL(raw)
		if err != nil {
			return err
		}

		m.progress(LevelVerbose, "Fetching %s", url)
		albums, err := m.catalog.FetchAlbums(ctx, url)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", url, err)
		}

		for _, album := range albums {
			m.progress(LevelInfo, "Found album: %s - %s (%d tracks)", album.Artist, album.Title, len(album.Tracks))
			if missing := album.MissingFields(); len(missing) > 0 {
				m.logger.Debug("album has missing fields",
					zap.String("url", album.URL), zap.Strings("fields", missing))
			}
		}
		m.albums = append(m.albums, albums...)
	}

	if len(m.albums) == 0 {
		return ErrNoAlbumFound
	}
	return nil
}

// Albums returns the albums found by Initialize.
func (m *Manager) Albums() []*model.Album {
	return m.albums
}

// Plan expands the albums into requests. It is called by StartDownloads
// when needed; calling it directly with dryRun set previews the work
// without creating directories.
func (m *Manager) Plan(dryRun bool) (*Plan, error) {
	plan, err := BuildPlan(m.albums, PlanOptions{
		Root:       m.settings.DownloadsPath,
		Naming:     m.naming,
		SkipAlbums: m.settings.SkipAlbums,
		DryRun:     dryRun,
	})
	if err != nil {
		return nil, err
	}

	for _, s := range plan.Skipped {
		m.progress(LevelVerbose, "Skipping %s - %s: %s", s.Album.Title, s.Track.Name, s.Reason)
	}
	if !dryRun {
		m.plan = plan
		m.totalFiles.Store(int32(len(plan.Requests)))
	}
	return plan, nil
}

// StartDownloads downloads every planned request.
//
// Individual track failures are reported and do not fail the call; the
// returned error is non-nil only when the run itself could not proceed or
// ctx was cancelled.
func (m *Manager) StartDownloads(ctx context.Context) error {
	if m.plan == nil {
		if _, err := m.Plan(false); err != nil {
			return err
		}
	}

	engine := NewEngine(m.client, m.pipeline,
		WithSink(m),
		WithCompletionWorkers(m.settings.MaxConcurrentCompletions),
		WithPollInterval(m.settings.PollInterval()),
		WithEngineLogger(m.logger),
	)
	if err := engine.Run(ctx, m.plan.Requests); err != nil {
		return err
	}

	if m.settings.CreatePlaylist {
		m.writePlaylists()
	}

	m.progress(LevelSuccess, "Finished: %d downloaded, %d skipped, %d failed",
		m.downloadedFiles.Load(), m.skippedFiles.Load(), m.failedFiles.Load())
	return nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received, total int64, filesReceived, filesTotal int32) {
	return m.receivedBytes.Load(), m.totalBytes.Load(),
		m.downloadedFiles.Load() + m.skippedFiles.Load() + m.failedFiles.Load(), m.totalFiles.Load()
}

// Failed returns the number of requests that ended in StatusFailed.
func (m *Manager) Failed() int {
	return int(m.failedFiles.Load())
}

// GetAlbumNames returns the names of all initialized albums.
func (m *Manager) GetAlbumNames() []string {
	names := make([]string, len(m.albums))
	for i, album := range m.albums {
		names[i] = fmt.Sprintf("%s - %s (%d tracks)", album.Artist, album.Title, len(album.Tracks))
	}
	return names
}

// Started implements Sink.
func (m *Manager) Started(_ Token, req Request, total int64) Progress {
	if total > 0 {
		m.totalBytes.Add(total)
	}
	m.logger.Debug("transfer started", zap.String("track", req.Label()), zap.Int64("bytes", total))
	return &trackProgress{m: m}
}

// Finished implements Sink.
func (m *Manager) Finished(o Outcome) {
	name := filepath.Base(o.Path)
	if name == "." || name == "" {
		name = o.Request.Label()
	}

	switch o.Status {
	case StatusDownloaded:
		m.downloadedFiles.Add(1)
		m.progress(LevelSuccess, "Downloaded: %s", name)
	case StatusSkipped:
		m.skippedFiles.Add(1)
		m.progress(LevelWarning, "Skipped: %s already exists", name)
	default:
		m.failedFiles.Add(1)
		if errs.Is(o.Err, errs.KindTag) {
			m.progress(LevelWarning, "Downloaded %s but tagging failed: %v", name, o.Err)
			return
		}
		m.progress(LevelError, "Failed: %s (%s): %v", name, o.Request.URL(), o.Err)
	}
}

func (m *Manager) writePlaylists() {
	for _, album := range m.albums {
		dir, ok := m.plan.Dirs[album]
		if !ok || len(album.DownloadableTracks()) == 0 {
			continue
		}
		path := filepath.Join(dir, m.playlist.FileName(album))
		if err := os.WriteFile(path, []byte(m.playlist.CreatePlaylist(album, dir)), 0644); err != nil {
			m.progress(LevelWarning, "Error creating playlist: %v", err)
			continue
		}
		m.progress(LevelSuccess, "Created playlist for %s", album.Title)
	}
}

func (m *Manager) progress(level ProgressLevel, format string, args ...any) {
	if m.onProgress != nil {
		m.onProgress(ProgressEvent{Message: fmt.Sprintf(format, args...), Level: level})
	}
}

// trackProgress feeds one transfer's byte counts into the manager totals.
type trackProgress struct {
	m    *Manager
	last int64
}

func (p *trackProgress) Update(received, _ int64) {
	p.m.receivedBytes.Add(received - p.last)
	p.last = received
}

// folderOnly saves covers to disk without embedding them.
type folderOnly struct {
	*CoverCache
}

func (f folderOnly) Get(ctx context.Context, req Request) *audio.Cover {
	f.CoverCache.Get(ctx, req)
	return nil
}

func parseInput(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ' ' || r == '\t'
	})
}
