package bandcamp

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/bcdl/internal/errs"
	"github.com/handiism/bcdl/internal/model"
)

// Fetcher retrieves a page body. *http.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Catalog resolves a release or discography URL into albums.
//
// Example usage:
//
//	catalog := NewCatalog(http.NewClient(), WithPageWorkers(8))
//	albums, err := catalog.FetchAlbums(ctx, "https://artist.bandcamp.com/music")
type Catalog struct {
	fetcher Fetcher
	workers int
	logger  *zap.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithPageWorkers bounds how many discography pages are fetched at once.
func WithPageWorkers(n int) CatalogOption {
	return func(c *Catalog) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger used for per-page diagnostics.
func WithLogger(l *zap.Logger) CatalogOption {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCatalog creates a Catalog that fetches pages with f.
func NewCatalog(f Fetcher, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		fetcher: f,
		workers: 4,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAlbums fetches url and returns the albums it describes.
//
// A release page (one carrying #trackInfo) yields at most one album. A
// discography page (one carrying #music-grid) has every linked release
// fetched concurrently; releases that fail to fetch or scrape are left out
// and the rest are returned in grid order. Any other page is an
// errs.KindScrape error.
func (c *Catalog) FetchAlbums(ctx context.Context, url string) ([]*model.Album, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	switch {
	case doc.Find("#trackInfo").Length() > 0:
		album, ok := Scrape(doc)
		if !ok {
			c.logger.Debug("no album data on release page", zap.String("url", url))
			return nil, nil
		}
		album.URL = url
		return []*model.Album{album}, nil

	case doc.Find("#music-grid").Length() > 0:
		return c.fetchDiscography(ctx, ScrapeLinks(doc))

	default:
		return nil, errs.Errorf(errs.KindScrape, "%s: not a release or discography page", url)
	}
}

func (c *Catalog) fetchDiscography(ctx context.Context, links []string) ([]*model.Album, error) {
	c.logger.Debug("fetching discography", zap.Int("releases", len(links)))

	results := make([]*model.Album, len(links))

	var g errgroup.Group
	g.SetLimit(c.workers)

	for i, link := range links {
		g.Go(func() error {
			album, err := c.fetchRelease(ctx, link)
			if err != nil {
				c.logger.Debug("skipping release", zap.String("url", link), zap.Error(err))
				return nil
			}
			results[i] = album
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lo.Compact(results), nil
}

func (c *Catalog) fetchRelease(ctx context.Context, url string) (*model.Album, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}
	album, ok := Scrape(doc)
	if !ok {
		return nil, errs.Errorf(errs.KindScrape, "%s: no album data", url)
	}
	album.URL = url
	return album, nil
}

func (c *Catalog) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errs.New(errs.KindScrape, url, err)
	}
	return doc, nil
}
