package bandcamp

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/handiism/bcdl/internal/model"
)

// strategy extracts an album from one kind of embedded page data.
type strategy struct {
	name string

	// selector must match for the strategy to be attempted.
	selector string

	scrape func(doc *goquery.Document) (*model.Album, bool)
}

// strategies are tried in order. The first one whose selector matches and
// which decodes successfully wins.
var strategies = []strategy{
	{
		name:     "ld+json",
		selector: ldJSONSelector,
		scrape:   scrapeLDJSON,
	},
	{
		name:     "data-tralbum",
		selector: tralbumSelector,
		scrape:   scrapeTralbum,
	},
}

// Scrape extracts the album described by a release page.
//
// It reports false when no strategy recognizes the page, in which case the
// caller should skip the document.
//
// Example:
//
//	doc, _ := goquery.NewDocumentFromReader(body)
//	album, ok := bandcamp.Scrape(doc)
//	if !ok {
//	    // not a release page
//	}
func Scrape(doc *goquery.Document) (*model.Album, bool) {
	for _, s := range strategies {
		if doc.Find(s.selector).Length() == 0 {
			continue
		}
		if album, ok := s.scrape(doc); ok {
			return album, true
		}
	}
	return nil, false
}

// repairTrackURLs fills empty track URLs by exact name lookup in the
// data-tralbum tracks of the same document. Tracks that cannot be resolved
// are dropped, so every returned track has a URL.
func repairTrackURLs(doc *goquery.Document, tracks []*model.Track) []*model.Track {
	var byName map[string]string

	repaired := make([]*model.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.URL != "" {
			repaired = append(repaired, t)
			continue
		}

		if byName == nil {
			byName = tralbumURLsByName(doc)
		}
		url, ok := byName[t.Name]
		if !ok {
			continue
		}
		t.URL = url
		repaired = append(repaired, t)
	}
	return repaired
}

func tralbumURLsByName(doc *goquery.Document) map[string]string {
	byName := make(map[string]string)
	if doc.Find(tralbumSelector).Length() == 0 {
		return byName
	}
	album, ok := scrapeTralbum(doc)
	if !ok {
		return byName
	}
	for _, t := range album.Tracks {
		if t.URL == "" {
			continue
		}
		if _, seen := byName[t.Name]; !seen {
			byName[t.Name] = t.URL
		}
	}
	return byName
}
