package bandcamp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/handiism/bcdl/internal/errs"
)

// SearchURL is Bandcamp's autocomplete endpoint.
const SearchURL = "https://bandcamp.com/api/bcsearch_public_api/1/autocomplete_elastic"

// SearchFilter narrows search results to one kind of item.
type SearchFilter string

const (
	SearchAll    SearchFilter = ""
	SearchArtist SearchFilter = "b"
	SearchAlbum  SearchFilter = "a"
	SearchTrack  SearchFilter = "t"
)

// ParseSearchFilter maps "all", "artist", "album" or "track" to a filter.
func ParseSearchFilter(s string) (SearchFilter, error) {
	switch s {
	case "", "all":
		return SearchAll, nil
	case "artist", "band":
		return SearchArtist, nil
	case "album":
		return SearchAlbum, nil
	case "track":
		return SearchTrack, nil
	default:
		return "", fmt.Errorf("unknown search type %q, expected all, artist, album or track", s)
	}
}

// Poster sends a request body. *http.Client satisfies it.
type Poster interface {
	Post(ctx context.Context, url, contentType string, body []byte) ([]byte, error)
}

// SearchResult is one hit from the search endpoint.
type SearchResult struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Genre    string `json:"genre_name"`
	URLRoot  string `json:"item_url_root"`
	URLPath  string `json:"item_url_path"`
}

// URL returns the item's own page, falling back to the artist root.
func (r SearchResult) URL() string {
	if r.URLPath != "" {
		return r.URLPath
	}
	return r.URLRoot
}

// Kind names the result type for display.
func (r SearchResult) Kind() string {
	switch SearchFilter(r.Type) {
	case SearchArtist:
		return "artist"
	case SearchAlbum:
		return "album"
	case SearchTrack:
		return "track"
	default:
		return r.Type
	}
}

type searchRequest struct {
	Text     string       `json:"search_text"`
	Filter   SearchFilter `json:"search_filter"`
	FullPage bool         `json:"full_page"`
	FanID    *int64       `json:"fan_id"`
}

type searchResponse struct {
	Auto struct {
		Results []SearchResult `json:"results"`
	} `json:"auto"`
}

// Search queries Bandcamp for artists, albums and tracks matching text.
func Search(ctx context.Context, p Poster, text string, filter SearchFilter) ([]SearchResult, error) {
	body, err := json.Marshal(searchRequest{Text: text, Filter: filter, FullPage: true})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	resp, err := p.Post(ctx, SearchURL, "application/json", body)
	if err != nil {
		return nil, err
	}

	var decoded searchResponse
	if err := json.Unmarshal(resp, &decoded); err != nil {
		return nil, errs.New(errs.KindScrape, "decode search response", err)
	}
	return decoded.Auto.Results, nil
}
