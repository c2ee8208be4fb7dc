package audio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/handiism/bcdl/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	album := createTestAlbum()
	creator := NewPlaylistCreator(FormatM3U, false, nil)

	content := creator.CreatePlaylist(album, "")

	want := "1 - track1.mp3\n2 - track2.mp3\n"
	if content != want {
		t.Errorf("M3U = %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	album := createTestAlbum()
	creator := NewPlaylistCreator(FormatM3U, true, &model.TrackConfig{FileNameFormat: "{tracknum} {track}"})

	content := creator.CreatePlaylist(album, "")

	if !strings.HasPrefix(content, "#EXTM3U\n") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Test Artist - track1\n01 track1.mp3\n") {
		t.Errorf("unexpected entry in %q", content)
	}
}

func TestPlaylistCreator_SkipsUndownloadableTracks(t *testing.T) {
	album := createTestAlbum()
	album.Tracks = append(album.Tracks, &model.Track{Number: 3, Name: "no url"})

	content := NewPlaylistCreator(FormatPLS, false, nil).CreatePlaylist(album, "")

	if strings.Contains(content, "no url") {
		t.Error("tracks without a URL should not be listed")
	}
	if !strings.Contains(content, "NumberOfEntries=2\n") {
		t.Errorf("unexpected entry count in %q", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	album := createTestAlbum()
	creator := NewPlaylistCreator(FormatPLS, false, nil)

	content := creator.CreatePlaylist(album, "")

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	for _, want := range []string{"File1=1 - track1.mp3", "Title2=track2", "Length2=200", "Version=2"} {
		if !strings.Contains(content, want) {
			t.Errorf("PLS should contain %q", want)
		}
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	album := createTestAlbum()
	creator := NewPlaylistCreator(FormatWPL, false, nil)

	content := creator.CreatePlaylist(album, "")

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<smil>") {
		t.Error("WPL should contain smil element")
	}
	if !strings.Contains(content, `<media src="1 - track1.mp3"/>`) {
		t.Error("WPL should contain media elements")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	album := createTestAlbum()
	creator := NewPlaylistCreator(FormatZPL, false, nil)

	content := creator.CreatePlaylist(album, "")

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, `albumTitle="Test Album"`) {
		t.Error("ZPL should contain albumTitle attribute")
	}
	if !strings.Contains(content, `duration="180000"`) {
		t.Error("ZPL durations are in milliseconds")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	album := &model.Album{Artist: "Artist & Co", Title: "Album <Special>"}
	album.Tracks = []*model.Track{{Number: 1, Name: `Track & "Quote"`, URL: "http://example.com", Duration: 180}}

	content := NewPlaylistCreator(FormatWPL, false, nil).CreatePlaylist(album, "")

	if strings.Contains(content, "<Special>") {
		t.Error("WPL should escape < and >")
	}
	if !strings.Contains(content, "Album &lt;Special&gt;") {
		t.Errorf("title not escaped: %q", content)
	}
}

func TestPlaylistFormat(t *testing.T) {
	tests := []struct {
		in   string
		want PlaylistFormat
		ext  string
	}{
		{"m3u", FormatM3U, ".m3u"},
		{"PLS", FormatPLS, ".pls"},
		{"wpl", FormatWPL, ".wpl"},
		{"zpl", FormatZPL, ".zpl"},
		{"unknown", FormatM3U, ".m3u"},
	}
	for _, tt := range tests {
		got := ParsePlaylistFormat(tt.in)
		if got != tt.want || got.Extension() != tt.ext {
			t.Errorf("ParsePlaylistFormat(%q) = %v (%s)", tt.in, got, got.Extension())
		}
	}

	creator := NewPlaylistCreator(FormatPLS, false, nil)
	if name := creator.FileName(&model.Album{Title: "A/B"}); name != "A_B.pls" {
		t.Errorf("FileName = %q", name)
	}
}

func TestPlaylistCreator_MatchesTruncatedFiles(t *testing.T) {
	album := &model.Album{Artist: "Artist", Title: "Album"}
	album.Tracks = []*model.Track{{Number: 1, Name: strings.Repeat("日本語", 20), URL: "http://example.com/1.mp3"}}
	naming := &model.TrackConfig{}
	dir := filepath.Join(t.TempDir(), strings.Repeat("d", 150))

	path := naming.Path(dir, album, album.Tracks[0])
	if filepath.Base(path) == naming.FileName(album, album.Tracks[0]) {
		t.Fatal("test name is too short to be truncated")
	}

	content := NewPlaylistCreator(FormatM3U, false, naming).CreatePlaylist(album, dir)
	entry := strings.TrimSuffix(content, "\n")

	if entry != filepath.Base(path) {
		t.Errorf("entry %q does not match file %q", entry, filepath.Base(path))
	}
	if !utf8.ValidString(entry) {
		t.Errorf("entry is not valid UTF-8: %q", entry)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, entry)); err != nil {
		t.Errorf("playlist entry does not resolve: %v", err)
	}
}

func createTestAlbum() *model.Album {
	return &model.Album{
		Artist: "Test Artist",
		Title:  "Test Album",
		Tracks: []*model.Track{
			{Number: 1, Name: "track1", URL: "http://example.com/1.mp3", Duration: 180},
			{Number: 2, Name: "track2", URL: "http://example.com/2.mp3", Duration: 200},
		},
	}
}
