package audio

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ioutils "github.com/handiism/bcdl/internal/io"
	"github.com/handiism/bcdl/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// ParsePlaylistFormat maps "m3u", "pls", "wpl" or "zpl" to a format.
// Unknown names fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(s) {
	case "pls":
		return FormatPLS
	case "wpl":
		return FormatWPL
	case "zpl":
		return FormatZPL
	default:
		return FormatM3U
	}
}

// Extension returns the file extension including the dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// PlaylistCreator generates playlist files in various formats.
//
// Entries are the album's downloadable tracks, named the same way the
// downloaded files are, so the playlist sits next to the tracks.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true, trackCfg)
//	content := creator.CreatePlaylist(album, dir)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:180,Artist - Song Title
//	// 1 - Song Title.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
	naming   *model.TrackConfig
}

// NewPlaylistCreator creates a new PlaylistCreator. A nil naming uses the
// default file name format.
func NewPlaylistCreator(format PlaylistFormat, extended bool, naming *model.TrackConfig) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
		naming:   naming,
	}
}

// FileName returns the playlist file name for an album.
func (p *PlaylistCreator) FileName(album *model.Album) string {
	return ioutils.SanitizeFileName(album.Title) + p.format.Extension()
}

// CreatePlaylist generates playlist content for an album whose tracks were
// written to dir. Entries are the base names of the track files, including
// any cut applied to fit long paths.
func (p *PlaylistCreator) CreatePlaylist(album *model.Album, dir string) string {
	tracks := album.DownloadableTracks()
	entries := make([]entry, len(tracks))
	for i, track := range tracks {
		entries[i] = entry{track: track, file: filepath.Base(p.naming.Path(dir, album, track))}
	}

	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	case FormatWPL:
		return p.createWPL(album, entries)
	case FormatZPL:
		return p.createZPL(album, entries)
	default:
		return p.createM3U(album, entries)
	}
}

// entry is one playlist line: a track and its file name.
type entry struct {
	track *model.Track
	file  string
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	filename1.mp3
func (p *PlaylistCreator) createM3U(album *model.Album, entries []entry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:%d,%s - %s\n", int(e.track.Duration), album.Artist, e.track.Name)
		}
		sb.WriteString(e.file + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Song Title
//	Length1=180
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []entry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")
	for i, e := range entries {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, e.file)
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, e.track.Name)
		fmt.Fprintf(&sb, "Length%d=%d\n", idx, int(e.track.Duration))
	}
	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(entries))
	sb.WriteString("Version=2\n")

	return sb.String()
}

func (p *PlaylistCreator) createWPL(album *model.Album, entries []entry) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n<smil>\n  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(album.Title))
	sb.WriteString("  </head>\n  <body>\n    <seq>\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", escapeXML(e.file))
	}
	sb.WriteString("    </seq>\n  </body>\n</smil>\n")

	return sb.String()
}

// createZPL is WPL plus album, artist and duration attributes per entry.
func (p *PlaylistCreator) createZPL(album *model.Album, entries []entry) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n<smil>\n  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", escapeXML(album.Title))
	sb.WriteString("    <meta name=\"Generator\" content=\"bcdl\"/>\n")
	fmt.Fprintf(&sb, "    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(entries))
	sb.WriteString("  </head>\n  <body>\n    <seq>\n")
	for _, e := range entries {
		duration := time.Duration(e.track.Duration * float64(time.Second))
		fmt.Fprintf(&sb, "      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(e.file),
			escapeXML(album.Title),
			escapeXML(album.Artist),
			escapeXML(e.track.Name),
			escapeXML(album.Artist),
			duration.Milliseconds())
	}
	sb.WriteString("    </seq>\n  </body>\n</smil>\n")

	return sb.String()
}

func escapeXML(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
