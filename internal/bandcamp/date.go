package bandcamp

import (
	"strings"
	"time"

	"github.com/handiism/bcdl/internal/model"
)

// Layouts with a time of day, as found in data-tralbum and ld+json.
var timestampLayouts = []string{
	"02 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 MST",
	time.RFC1123,
}

// releasedLayout matches the "released September 28, 2014" credit line.
const releasedLayout = "released January 2, 2006"

// ParseReleaseDate parses a Bandcamp release date.
//
// Accepted forms:
//
//	"28 Sep 2014 04:19:31 GMT"
//	"Sun, 28 Sep 2014 04:19:31 GMT"
//	"released September 28, 2014"   (no time of day)
//
// Anything else reports false.
func ParseReleaseDate(s string) (model.Timestamp, bool) {
	s = strings.TrimSpace(s)

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Timestamp{
				Year:    t.Year(),
				Month:   int(t.Month()),
				Day:     t.Day(),
				Hour:    t.Hour(),
				Minute:  t.Minute(),
				Second:  t.Second(),
				HasTime: true,
			}, true
		}
	}

	if t, err := time.Parse(releasedLayout, s); err == nil {
		return model.Timestamp{
			Year:  t.Year(),
			Month: int(t.Month()),
			Day:   t.Day(),
		}, true
	}

	return model.Timestamp{}, false
}
