// Package model defines the catalog data structures shared by the scraper
// and the download engine.
//
// # Album and Track
//
// Albums are produced by the bandcamp package and read-only afterwards:
//
//	album := &model.Album{Artist: "Artist", Title: "Title"}
//	album.Update(fallback) // fills only empty/absent fields
//
// A track is downloadable when it has a name and a URL:
//
//	for _, t := range album.DownloadableTracks() {
//	    fmt.Println(t.Number, t.Name)
//	}
//
// # File Naming
//
// TrackConfig turns a template into a file name:
//
//	cfg := &model.TrackConfig{FileNameFormat: "{num} - {track}"}
//	path := cfg.Path("/music/Artist/Album", album, track)
//	// "/music/Artist/Album/1 - Song.mp3"
//
// Available placeholders: {num}, {tracknum}, {track}, {album}, {artist}
package model
