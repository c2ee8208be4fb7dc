package model

// Album represents a Bandcamp release with its metadata and tracks.
//
// Album is produced once by the scraper and is read-only afterwards, apart
// from Update, which fills gaps from a second source.
//
// Optional fields are pointers: nil means absent, while a pointer to an
// empty string is a present (but empty) value. Update only replaces absent
// optional fields.
type Album struct {
	// Artist is the album artist name.
	Artist string

	// Title is the album title.
	Title string

	// ReleaseDate is the release date exactly as the page states it.
	// See bandcamp.ParseReleaseDate for the accepted forms.
	ReleaseDate string

	// Tracks in on-page order.
	Tracks []*Track

	// Tags is the comma separated keyword list, written as the genre.
	Tags *string

	// AlbumArtURL is the cover art URL.
	AlbumArtURL *string

	// ArtistArtURL is the artist picture URL.
	ArtistArtURL *string

	// URL is the page the album was scraped from.
	URL string
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// HasArtwork returns true if the album has cover art available for download.
func (a *Album) HasArtwork() bool {
	return a.AlbumArtURL != nil && *a.AlbumArtURL != ""
}

// ArtworkURL returns the cover art URL or an empty string.
func (a *Album) ArtworkURL() string {
	if a.AlbumArtURL == nil {
		return ""
	}
	return *a.AlbumArtURL
}

// Genre returns the tag string and whether it is present.
func (a *Album) Genre() (string, bool) {
	if a.Tags == nil || *a.Tags == "" {
		return "", false
	}
	return *a.Tags, true
}

// Update copies fields from other into a, but only where a's field is
// empty (strings, tracks) or absent (optional fields). Populated fields are
// never overwritten.
func (a *Album) Update(other *Album) {
	if other == nil {
		return
	}
	if a.Artist == "" {
		a.Artist = other.Artist
	}
	if a.Title == "" {
		a.Title = other.Title
	}
	if a.ReleaseDate == "" {
		a.ReleaseDate = other.ReleaseDate
	}
	if len(a.Tracks) == 0 {
		a.Tracks = other.Tracks
	}
	if a.Tags == nil {
		a.Tags = other.Tags
	}
	if a.AlbumArtURL == nil {
		a.AlbumArtURL = other.AlbumArtURL
	}
	if a.ArtistArtURL == nil {
		a.ArtistArtURL = other.ArtistArtURL
	}
	if a.URL == "" {
		a.URL = other.URL
	}
}

// MissingFields lists the empty or absent fields. Tracks count as missing
// when there are none or when none of them is downloadable.
func (a *Album) MissingFields() []string {
	var missing []string
	if a.Artist == "" {
		missing = append(missing, "artist")
	}
	if a.Title == "" {
		missing = append(missing, "album")
	}
	if a.ReleaseDate == "" {
		missing = append(missing, "release_date")
	}
	if len(a.DownloadableTracks()) == 0 {
		missing = append(missing, "tracks")
	}
	if a.Tags == nil {
		missing = append(missing, "tags")
	}
	if a.AlbumArtURL == nil {
		missing = append(missing, "album_art_url")
	}
	if a.ArtistArtURL == nil {
		missing = append(missing, "artist_art_url")
	}
	return missing
}

// RequiredFieldsMissing reports whether MissingFields is non-empty.
func (a *Album) RequiredFieldsMissing() bool {
	return len(a.MissingFields()) > 0
}

// DownloadableTracks returns the tracks that have both a name and a URL.
func (a *Album) DownloadableTracks() []*Track {
	tracks := make([]*Track, 0, len(a.Tracks))
	for _, t := range a.Tracks {
		if !t.HasMissingFields() {
			tracks = append(tracks, t)
		}
	}
	return tracks
}
