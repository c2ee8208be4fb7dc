package download

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/handiism/bcdl/internal/audio"
	ioutils "github.com/handiism/bcdl/internal/io"
)

// Fetcher retrieves a URL body. *http.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// CoverCache fetches album art once per URL. Concurrent callers for the
// same URL share a single fetch, and failures are remembered so a missing
// cover is not retried for every track.
type CoverCache struct {
	fetcher  Fetcher
	images   *ioutils.ImageService
	logger   *zap.Logger
	saveName string

	group singleflight.Group

	mu    sync.Mutex
	items map[string]*audio.Cover
}

// CoverOption configures a CoverCache.
type CoverOption func(*CoverCache)

// SaveInFolder also writes the original image next to the tracks as
// <name>.<ext>.
func SaveInFolder(name string) CoverOption {
	return func(c *CoverCache) { c.saveName = name }
}

// WithCoverLogger sets the logger.
func WithCoverLogger(l *zap.Logger) CoverOption {
	return func(c *CoverCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCoverCache creates a CoverCache. images may be nil to embed art as
// downloaded.
func NewCoverCache(f Fetcher, images *ioutils.ImageService, opts ...CoverOption) *CoverCache {
	if images == nil {
		images = ioutils.NewImageService(ioutils.CoverOptions{})
	}
	c := &CoverCache{
		fetcher: f,
		images:  images,
		logger:  zap.NewNop(),
		items:   make(map[string]*audio.Cover),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the prepared cover for the request's album, or nil when the
// album has none or it could not be fetched.
func (c *CoverCache) Get(ctx context.Context, req Request) *audio.Cover {
	url := req.Album.ArtworkURL()
	if url == "" {
		return nil
	}

	if cover, ok := c.lookup(url); ok {
		return cover
	}

	v, _, _ := c.group.Do(url, func() (any, error) {
		if cover, ok := c.lookup(url); ok {
			return cover, nil
		}
		cover := c.fetch(ctx, url, req.Dir)
		c.mu.Lock()
		c.items[url] = cover
		c.mu.Unlock()
		return cover, nil
	})
	return v.(*audio.Cover)
}

func (c *CoverCache) lookup(url string) (*audio.Cover, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cover, ok := c.items[url]
	return cover, ok
}

func (c *CoverCache) fetch(ctx context.Context, url, dir string) *audio.Cover {
	data, err := c.fetcher.Get(ctx, url)
	if err != nil {
		c.logger.Warn("cover art unavailable", zap.String("url", url), zap.Error(err))
		return nil
	}

	if c.saveName != "" {
		c.saveToFolder(data, dir)
	}

	prepared, mime := c.images.Prepare(data)
	return &audio.Cover{Data: prepared, MimeType: mime}
}

func (c *CoverCache) saveToFolder(data []byte, dir string) {
	ext := ".jpg"
	if http.DetectContentType(data) == "image/png" {
		ext = ".png"
	}
	path := filepath.Join(dir, c.saveName+ext)
	if err := ioutils.WriteNewFile(path, data); err != nil && !errors.Is(err, ioutils.ErrExist) {
		c.logger.Warn("could not save cover art", zap.String("path", path), zap.Error(err))
	}
}
