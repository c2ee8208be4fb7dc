package bandcamp

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"github.com/handiism/bcdl/internal/jsontree"
	"github.com/handiism/bcdl/internal/model"
)

const (
	ldJSONSelector = `script[type="application/ld+json"]`
	mp3Property    = "additionalProperty.#(name=file_mp3-128).value"
)

// scrapeLDJSON reads the schema.org MusicAlbum/MusicRecording block.
func scrapeLDJSON(doc *goquery.Document) (*model.Album, bool) {
	raw := doc.Find(ldJSONSelector).First().Text()
	root, err := jsontree.ParseString(raw)
	if err != nil || root.Kind() != jsontree.Object {
		return nil, false
	}

	album := &model.Album{
		Title:       text(root, "name"),
		ReleaseDate: text(root, "datePublished"),
		Artist:      text(root, "byArtist.name"),
	}
	if tags, ok := keywords(root.Get("keywords")); ok {
		album.Tags = &tags
	}
	if img, ok := root.Get("image").Str(); ok {
		album.AlbumArtURL = &img
	}
	if img, ok := root.Get("byArtist.image").Str(); ok {
		album.ArtistArtURL = &img
	}

	items := root.Get("track.itemListElement").Items()
	if len(items) > 0 {
		for _, el := range items {
			num, _ := el.Get("position").Int()
			t := &model.Track{
				Number:   num,
				Name:     text(el, "item.name"),
				URL:      text(el, "item."+mp3Property),
				Duration: isoDuration(text(el, "item.duration")),
			}
			if lyrics, ok := el.Get("item.recordingOf.lyrics.text").Str(); ok {
				lyrics = html.UnescapeString(lyrics)
				t.Lyrics = &lyrics
			}
			album.Tracks = append(album.Tracks, t)
		}
	} else {
		// A track page describes a single MusicRecording.
		album.Tracks = []*model.Track{{
			Number:   1,
			Name:     album.Title,
			URL:      text(root, mp3Property),
			Duration: isoDuration(text(root, "duration")),
		}}
		if lyrics, ok := root.Get("recordingOf.lyrics.text").Str(); ok {
			lyrics = html.UnescapeString(lyrics)
			album.Tracks[0].Lyrics = &lyrics
		}
		if title := text(root, "inAlbum.name"); title != "" {
			album.Title = title
		}
	}

	album.Tracks = repairTrackURLs(doc, album.Tracks)
	return album, true
}

// text returns the entity-decoded string at path, or "".
func text(v jsontree.Value, path string) string {
	s, _ := v.Get(path).Text()
	return html.UnescapeString(s)
}

// keywords accepts either an array of strings or a comma separated string.
func keywords(v jsontree.Value) (string, bool) {
	var parts []string
	switch v.Kind() {
	case jsontree.Array:
		for _, item := range v.Items() {
			s, _ := item.Str()
			parts = append(parts, s)
		}
	case jsontree.String:
		s, _ := v.Str()
		parts = strings.Split(s, ",")
	default:
		return "", false
	}

	parts = lo.FilterMap(parts, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(html.UnescapeString(s))
		return s, s != ""
	})
	return strings.Join(parts, ", "), true
}

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// isoDuration converts "P00H03M21S" style durations to seconds.
func isoDuration(s string) float64 {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	var secs float64
	for i, unit := range []float64{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0
		}
		secs += n * unit
	}
	return secs
}
