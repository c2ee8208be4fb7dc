package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	ioutils "github.com/handiism/bcdl/internal/io"
)

// DefaultFileNameFormat names files "<num> - <name>".
const DefaultFileNameFormat = "{num} - {track}"

// fileExt is appended to every formatted file name.
const fileExt = ".mp3"

var placeholderRe = regexp.MustCompile(`\{([^{}]*)\}`)

// TrackConfig holds track file naming settings.
//
// The FileNameFormat supports placeholders that are replaced with actual values:
//   - {num} - Track number
//   - {tracknum} - Track number (2 digits, zero-padded)
//   - {track} - Track title
//   - {artist} - Artist name (from album)
//   - {album} - Album title
//
// The ".mp3" extension is appended automatically. An empty format means
// DefaultFileNameFormat.
//
// Example:
//
//	cfg := &TrackConfig{FileNameFormat: "{num} - {track} - {album} {artist}"}
//	// Results in file names like "2 - ATrack - SomeAlbum SomeArtist.mp3"
type TrackConfig struct {
	FileNameFormat string
}

// ValidateFileNameFormat returns an error if format uses an unknown
// placeholder or has unbalanced braces.
func ValidateFileNameFormat(format string) error {
	for _, m := range placeholderRe.FindAllStringSubmatch(format, -1) {
		switch m[1] {
		case "num", "tracknum", "track", "album", "artist":
		default:
			return fmt.Errorf("unknown placeholder {%s}, available: {num} {tracknum} {track} {album} {artist}", m[1])
		}
	}
	rest := placeholderRe.ReplaceAllString(format, "")
	if strings.ContainsAny(rest, "{}") {
		return fmt.Errorf("unbalanced braces in %q", format)
	}
	return nil
}

// FileName computes the sanitized file name, extension included.
func (c *TrackConfig) FileName(album *Album, track *Track) string {
	format := DefaultFileNameFormat
	if c != nil && c.FileNameFormat != "" {
		format = c.FileNameFormat
	}

	name := placeholderRe.ReplaceAllStringFunc(format, func(p string) string {
		switch p {
		case "{num}":
			return strconv.Itoa(track.Number)
		case "{tracknum}":
			return fmt.Sprintf("%02d", track.Number)
		case "{track}":
			return track.Name
		case "{album}":
			return album.Title
		case "{artist}":
			return album.Artist
		}
		return p
	})

	return ioutils.SanitizeFileName(name) + fileExt
}

// Path computes the full path of the track file inside dir.
func (c *TrackConfig) Path(dir string, album *Album, track *Track) string {
	fileName := c.FileName(album, track)
	filePath := filepath.Join(dir, fileName)

	// Limit total path length for Windows compatibility (MAX_PATH = 260)
	if len(filePath) >= 260 {
		maxLen := 259 - len(dir) - 1 - len(fileExt)
		base := strings.TrimSuffix(fileName, fileExt)
		if maxLen > 0 && maxLen < len(base) {
			filePath = filepath.Join(dir, truncateUTF8(base, maxLen)+fileExt)
		}
	}

	return filePath
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
