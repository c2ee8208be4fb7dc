// Package ioutils provides file system and image processing utilities.
//
// # Album Directories
//
//	dir, err := ioutils.EnsureAlbumDir("/music", "Artist", "Album")
//	// "/music/Artist/Album", created if needed
//
// # Writing Downloads
//
// WriteNewFile never overwrites and removes partial files on failure:
//
//	err := ioutils.WriteNewFile(path, data)
//	if errors.Is(err, ioutils.ErrExist) {
//	    // already downloaded
//	}
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Cover Art
//
// The ImageService resizes and converts cover art before it is embedded:
//
//	svc := ioutils.NewImageService(ioutils.CoverOptions{Resize: true, MaxSize: 1000})
//	data, mime := svc.Prepare(artwork)
package ioutils
