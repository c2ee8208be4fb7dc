package download

import (
	"fmt"

	"github.com/handiism/bcdl/internal/model"
)

// Token correlates engine events with the request they belong to. An
// Engine never hands out the same token twice.
type Token uint64

// Request describes one track to download. It is a value: the engine and
// the pipeline read it but never modify it.
type Request struct {
	Album *model.Album
	Track *model.Track

	// Dir is the album directory the file is written to.
	Dir string
}

// URL returns the audio URL.
func (r Request) URL() string {
	return r.Track.URL
}

// Path returns the destination file path under the given naming.
func (r Request) Path(naming *model.TrackConfig) string {
	return naming.Path(r.Dir, r.Album, r.Track)
}

// Label is a short human readable name for log lines.
func (r Request) Label() string {
	return fmt.Sprintf("%s - %s - %02d %s", r.Album.Artist, r.Album.Title, r.Track.Number, r.Track.Name)
}
