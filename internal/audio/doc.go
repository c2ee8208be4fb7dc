// Package audio writes ID3 tags and playlists for downloaded tracks.
//
// # ID3 Tagging
//
// Tags are written as ID3v2.4 with UTF-8 text:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.Write(path, audio.Tags{Album: album, Track: track, Cover: cover, Released: &ts})
//
// The tagger supports:
//   - Title, Track Number
//   - Album, Artist, Album Artist
//   - Genre (the album's tags)
//   - Lyrics (eng)
//   - Front cover
//   - Recording time (TDRC)
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true, trackCfg)
//	content := creator.CreatePlaylist(album, dir)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
