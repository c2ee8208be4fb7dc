package model

// Track represents a single track within an album.
//
// Name and URL are the only fields a track needs to be downloadable; the
// rest only enrich the tags and playlists.
//
// Example:
//
//	track := &Track{Number: 1, Name: "Song Title", URL: mp3URL}
//	if track.HasMissingFields() {
//	    // not downloadable
//	}
type Track struct {
	// Number is the track number (1-indexed), from page order or explicit page data.
	Number int

	// Name is the track title.
	Name string

	// URL is the MP3 stream URL. It may be repaired after scraping.
	URL string

	// Lyrics contains the song lyrics, nil when the page has none.
	Lyrics *string

	// Duration is the track length in seconds, 0 when unknown.
	Duration float64
}

// HasMissingFields reports whether the track cannot be downloaded,
// i.e. its name or its URL is empty.
func (t *Track) HasMissingFields() bool {
	return t.Name == "" || t.URL == ""
}

// MissingFields lists every field that is empty, including optional ones.
func (t *Track) MissingFields() []string {
	var missing []string
	if t.Name == "" {
		missing = append(missing, "name")
	}
	if t.Number == 0 {
		missing = append(missing, "num")
	}
	if t.URL == "" {
		missing = append(missing, "url")
	}
	if t.Lyrics == nil {
		missing = append(missing, "lyrics")
	}
	return missing
}

// LyricsText returns the lyrics and whether any are present.
func (t *Track) LyricsText() (string, bool) {
	if t.Lyrics == nil || *t.Lyrics == "" {
		return "", false
	}
	return *t.Lyrics, true
}
