package bandcamp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/handiism/bcdl/internal/jsontree"
	"github.com/handiism/bcdl/internal/model"
)

const (
	tralbumSelector = "script[data-tralbum]"

	artworkURLStart = "https://f4.bcbits.com/img/a"
	artworkURLEnd   = "_0.jpg"
)

// scrapeTralbum reads the data-embed and data-tralbum attributes that
// Bandcamp puts on one of its script tags.
//
// The attribute values are already entity-decoded by the HTML parser.
// data-embed is optional; data-tralbum must decode.
func scrapeTralbum(doc *goquery.Document) (*model.Album, bool) {
	sel := doc.Find(tralbumSelector).First()

	raw, _ := sel.Attr("data-tralbum")
	tralbum, err := jsontree.ParseString(fixJSON(strings.TrimSpace(raw)))
	if err != nil || tralbum.Kind() != jsontree.Object {
		return nil, false
	}

	album := &model.Album{}
	if raw, ok := sel.Attr("data-embed"); ok {
		if embed, err := jsontree.ParseString(fixJSON(strings.TrimSpace(raw))); err == nil {
			album.Artist = text(embed, "artist")
			album.Title = text(embed, "album_title")
		}
	}
	if album.Title == "" {
		album.Title = text(tralbum, "current.title")
	}
	if album.Artist == "" {
		album.Artist = text(tralbum, "artist")
	}

	album.ReleaseDate = text(tralbum, "album_release_date")
	if album.ReleaseDate == "" {
		album.ReleaseDate = text(tralbum, "current.release_date")
	}

	if artID, ok := tralbum.Get("art_id").Int(); ok && artID > 0 {
		album.AlbumArtURL = model.Ptr(fmt.Sprintf("%s%010d%s", artworkURLStart, artID, artworkURLEnd))
	}

	if tags := pageTags(doc); tags != "" {
		album.Tags = &tags
	}

	for i, info := range tralbum.Get("trackinfo").Items() {
		duration, _ := info.Get("duration").Num()
		t := &model.Track{
			Number:   i + 1,
			Name:     text(info, "title"),
			URL:      absoluteURL(text(info, "file.mp3-128")),
			Duration: duration,
		}
		if lyrics, ok := info.Get("lyrics").Str(); ok && lyrics != "" {
			t.Lyrics = &lyrics
		} else if lyrics, ok := lyricsRow(doc, t.Number); ok {
			t.Lyrics = &lyrics
		}
		album.Tracks = append(album.Tracks, t)
	}

	return album, true
}

var concatRe = regexp.MustCompile(`(url: ".+)" \+ "(.+",)`)

// fixJSON fixes malformed JSON from Bandcamp pages.
//
// Some Bandcamp pages have JavaScript-style URL concatenation in the JSON:
//
//	url: "http://example.bandcamp.com" + "/album/name",
//
// This is not valid JSON, so we fix it by removing the concatenation:
//
//	url: "http://example.bandcamp.com/album/name",
func fixJSON(data string) string {
	return concatRe.ReplaceAllString(data, "${1}${2}")
}

// absoluteURL adds a scheme to protocol-relative URLs.
func absoluteURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// lyricsRow returns the text of the "#lyrics_row_<num>" element.
func lyricsRow(doc *goquery.Document, num int) (string, bool) {
	sel := doc.Find(fmt.Sprintf("#lyrics_row_%d", num))
	if sel.Length() == 0 {
		return "", false
	}
	lyrics := strings.TrimSpace(sel.First().Text())
	return lyrics, lyrics != ""
}

// pageTags joins the tag links shown under the release.
func pageTags(doc *goquery.Document) string {
	var tags []string
	doc.Find("a.tag").Each(func(_ int, s *goquery.Selection) {
		if tag := strings.TrimSpace(s.Text()); tag != "" {
			tags = append(tags, tag)
		}
	})
	return strings.Join(tags, ", ")
}
