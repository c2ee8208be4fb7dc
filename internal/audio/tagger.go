package audio

import (
	"strconv"

	"github.com/bogem/id3v2"

	"github.com/handiism/bcdl/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from Bandcamp.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:  true,
//	    Artist:      TagModify,      // Update artist from Bandcamp
//	    Comments:    TagEmpty,       // Clear any existing comments
//	    AlbumArtist: TagDoNotModify, // Keep existing album artist
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text frames are touched;
	// cover art is still embedded.
	ModifyTags bool

	Artist      TagEditAction // TPE1
	AlbumArtist TagEditAction // TPE2
	Album       TagEditAction // TALB
	Date        TagEditAction // TDRC
	TrackNumber TagEditAction // TRCK
	TrackTitle  TagEditAction // TIT2
	Genre       TagEditAction // TCON
	Lyrics      TagEditAction // USLT
	Comments    TagEditAction // COMM
}

// DefaultTagConfig returns the default tag configuration.
//
// By default, all tags except comments are set to TagModify.
// Comments are cleared.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Album:       TagModify,
		Date:        TagModify,
		TrackNumber: TagModify,
		TrackTitle:  TagModify,
		Genre:       TagModify,
		Lyrics:      TagModify,
		Comments:    TagEmpty,
	}
}

// Cover is an image to embed as the front cover.
type Cover struct {
	Data     []byte
	MimeType string
}

// Tags is everything written to one file.
type Tags struct {
	Album *model.Album
	Track *model.Track

	// Cover is nil when no art could be fetched.
	Cover *Cover

	// Released is nil when the release date did not parse.
	Released *model.Timestamp
}

// Tagger writes ID3v2.4 tags to MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.Write(path, audio.Tags{Album: album, Track: track, Cover: cover})
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// Write opens the MP3 file at path, updates its tag and saves it in place.
// Any existing tag is parsed first so frames configured as TagDoNotModify
// survive.
func (t *Tagger) Write(path string, tags Tags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if t.config.ModifyTags {
		t.updateTextFrames(tag, tags)
	}

	if tags.Cover != nil && len(tags.Cover.Data) > 0 {
		setCover(tag, tags.Cover)
	}

	return tag.Save()
}

func (t *Tagger) updateTextFrames(tag *id3v2.Tag, tags Tags) {
	album, track := tags.Album, tags.Track

	apply(t.config.TrackTitle, tag, "TIT2", track.Name)
	apply(t.config.TrackNumber, tag, "TRCK", strconv.Itoa(track.Number))
	apply(t.config.Album, tag, "TALB", album.Title)
	apply(t.config.Artist, tag, "TPE1", album.Artist)
	apply(t.config.AlbumArtist, tag, "TPE2", album.Artist)

	genre, _ := album.Genre()
	apply(t.config.Genre, tag, "TCON", genre)

	date := ""
	if tags.Released != nil {
		date = tags.Released.String()
	}
	apply(t.config.Date, tag, "TDRC", date)

	lyricsID := tag.CommonID("Unsynchronised lyrics/text transcription")
	switch t.config.Lyrics {
	case TagEmpty:
		tag.DeleteFrames(lyricsID)
	case TagModify:
		if lyrics, ok := track.LyricsText(); ok {
			tag.DeleteFrames(lyricsID)
			tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
				Encoding:          id3v2.EncodingUTF8,
				Language:          "eng",
				ContentDescriptor: "",
				Lyrics:            lyrics,
			})
		}
	}

	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// apply sets or clears the text frame id. An empty value under TagModify
// leaves the frame alone: absent data never erases what a file already has.
func apply(action TagEditAction, tag *id3v2.Tag, id, value string) {
	switch action {
	case TagEmpty:
		tag.DeleteFrames(id)
	case TagModify:
		if value != "" {
			tag.AddTextFrame(id, tag.DefaultEncoding(), value)
		}
	}
}

// setCover replaces any attached pictures with a single front cover.
func setCover(tag *id3v2.Tag, cover *Cover) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	mime := cover.MimeType
	if mime == "" {
		mime = "image/jpeg"
	}
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     cover.Data,
	})
}
