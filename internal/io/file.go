// Package ioutils provides file system utilities for the downloader.
//
// This package contains functions for:
//   - Album directory preparation
//   - Exclusive file writing
//   - Filename sanitization
package ioutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidCharsRe  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDotsRe  = regexp.MustCompile(`\.+$`)
	multipleSpaceRe = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// This function ensures filenames are valid across different operating systems,
// particularly Windows which has the most restrictive naming rules.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Surrounding whitespace → removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")     // Returns "Song_ Part 1_2"
//	SanitizeFileName("Track...")           // Returns "Track"
//	SanitizeFileName("Name   with  spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	name = invalidCharsRe.ReplaceAllString(name, "_")
	name = trailingDotsRe.ReplaceAllString(name, "")
	name = multipleSpaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// AlbumDir returns root/artist/album with both components sanitized.
// An empty root means the current directory.
func AlbumDir(root, artist, album string) string {
	return filepath.Join(root, SanitizeFileName(artist), SanitizeFileName(album))
}

// EnsureAlbumDir creates root/artist/album if it does not exist yet and
// returns its path.
//
// Example:
//
//	dir, err := EnsureAlbumDir("/music", "Artist", "Album")
//	// dir = "/music/Artist/Album"
func EnsureAlbumDir(root, artist, album string) (string, error) {
	dir := AlbumDir(root, artist, album)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create album directory: %w", err)
	}
	return dir, nil
}

// ErrExist is returned by WriteNewFile when path is already taken.
var ErrExist = fs.ErrExist

// Exists reports whether something is at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteNewFile writes data to a file that must not exist yet.
//
// The file is created with mode 0644. If path already exists the returned
// error satisfies errors.Is(err, ErrExist) and nothing is written. If the
// write fails half way, the partial file is removed so it is never mistaken
// for a complete download.
func WriteNewFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			err = errors.Join(err, removePartial(path))
		}
	}()

	_, err = f.Write(data)
	return err
}

func removePartial(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove partial file: %w", err)
	}
	return nil
}
