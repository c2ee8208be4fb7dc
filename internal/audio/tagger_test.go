package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"

	"github.com/handiism/bcdl/internal/model"
)

// fakeAudio stands in for MPEG frames; the tagger never decodes audio.
var fakeAudio = bytes.Repeat([]byte{0xff, 0xfb, 0x90, 0x64}, 256)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, fakeAudio, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readTag(t *testing.T, path string) *id3v2.Tag {
	t.Helper()
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open tag: %v", err)
	}
	t.Cleanup(func() { tag.Close() })
	return tag
}

func textFrame(tag *id3v2.Tag, id string) string {
	return tag.GetTextFrame(id).Text
}

func TestTagger_Write(t *testing.T) {
	path := writeAudio(t)

	lyrics := "la la la"
	album := &model.Album{
		Artist:      "Some Artist",
		Title:       "Night & Day",
		ReleaseDate: "28 Sep 2014 04:19:31 GMT",
		Tags:        model.Ptr("ambient, drone"),
	}
	track := &model.Track{Number: 3, Name: "Dusk", URL: "https://t4.bcbits.com/3", Lyrics: &lyrics}
	released := model.Timestamp{Year: 2014, Month: 9, Day: 28, Hour: 4, Minute: 19, Second: 31, HasTime: true}
	cover := &Cover{Data: []byte("jpegdata"), MimeType: "image/jpeg"}

	err := NewTagger(nil).Write(path, Tags{Album: album, Track: track, Cover: cover, Released: &released})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	tag := readTag(t, path)

	if tag.Version() != 4 {
		t.Errorf("Version = %d, want 4", tag.Version())
	}

	frames := map[string]string{
		"TIT2": "Dusk",
		"TRCK": "3",
		"TALB": "Night & Day",
		"TPE1": "Some Artist",
		"TPE2": "Some Artist",
		"TCON": "ambient, drone",
		"TDRC": "2014-09-28T04:19:31",
	}
	for id, want := range frames {
		if got := textFrame(tag, id); got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}

	uslt := tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription"))
	if len(uslt) != 1 {
		t.Fatalf("got %d lyrics frames, want 1", len(uslt))
	}
	if f, ok := uslt[0].(id3v2.UnsynchronisedLyricsFrame); !ok || f.Lyrics != lyrics || f.Language != "eng" {
		t.Errorf("lyrics frame = %+v", uslt[0])
	}

	pics := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(pics) != 1 {
		t.Fatalf("got %d pictures, want 1", len(pics))
	}
	if pic, ok := pics[0].(id3v2.PictureFrame); !ok || pic.PictureType != id3v2.PTFrontCover || !bytes.Equal(pic.Picture, cover.Data) {
		t.Errorf("picture frame = %+v", pics[0])
	}

	data, _ := os.ReadFile(path)
	if !bytes.HasSuffix(data, fakeAudio) {
		t.Error("audio data was not preserved after the tag")
	}
}

func TestTagger_AbsentFieldsWriteNothing(t *testing.T) {
	path := writeAudio(t)

	album := &model.Album{Artist: "A", Title: "B"}
	track := &model.Track{Number: 1, Name: "C", URL: "u"}

	if err := NewTagger(nil).Write(path, Tags{Album: album, Track: track}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	tag := readTag(t, path)
	for _, id := range []string{"TCON", "TDRC"} {
		if got := textFrame(tag, id); got != "" {
			t.Errorf("%s = %q, want empty", id, got)
		}
	}
	if n := len(tag.GetFrames(tag.CommonID("Attached picture"))); n != 0 {
		t.Errorf("got %d pictures, want 0", n)
	}
	if n := len(tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription"))); n != 0 {
		t.Errorf("got %d lyrics frames, want 0", n)
	}
}

func TestTagger_DoNotModify(t *testing.T) {
	path := writeAudio(t)

	album := &model.Album{Artist: "First", Title: "Album"}
	track := &model.Track{Number: 1, Name: "Song", URL: "u"}
	if err := NewTagger(nil).Write(path, Tags{Album: album, Track: track}); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultTagConfig()
	cfg.Artist = TagDoNotModify
	cfg.Album = TagEmpty
	album2 := &model.Album{Artist: "Second", Title: "Other"}
	if err := NewTagger(cfg).Write(path, Tags{Album: album2, Track: track}); err != nil {
		t.Fatal(err)
	}

	tag := readTag(t, path)
	if got := textFrame(tag, "TPE1"); got != "First" {
		t.Errorf("TPE1 = %q, want preserved %q", got, "First")
	}
	if got := textFrame(tag, "TALB"); got != "" {
		t.Errorf("TALB = %q, want cleared", got)
	}
	if got := textFrame(tag, "TPE2"); got != "Second" {
		t.Errorf("TPE2 = %q, want %q", got, "Second")
	}
}

func TestTagger_MissingFile(t *testing.T) {
	err := NewTagger(nil).Write(filepath.Join(t.TempDir(), "nope.mp3"), Tags{
		Album: &model.Album{},
		Track: &model.Track{},
	})
	if err == nil {
		t.Error("expected error for missing file")
	}
}
