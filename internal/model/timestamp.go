package model

import "fmt"

// Timestamp is a release timestamp with an optional time of day.
type Timestamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int

	// HasTime is false when only the date is known.
	HasTime bool
}

// String formats the timestamp as an ID3v2.4 TDRC value:
// "2006-01-02T15:04:05", or "2006-01-02" without a time.
func (ts Timestamp) String() string {
	date := fmt.Sprintf("%04d-%02d-%02d", ts.Year, ts.Month, ts.Day)
	if !ts.HasTime {
		return date
	}
	return fmt.Sprintf("%sT%02d:%02d:%02d", date, ts.Hour, ts.Minute, ts.Second)
}
