// Package errs defines the error kinds shared by the scraper, the download
// engine and the completion pipeline.
//
// Every failure that crosses a package boundary is wrapped in an *Error
// carrying a Kind, so callers can decide how far it propagates:
//
//	if errs.Is(err, errs.KindFileExists) {
//	    // skip, not a failure
//	}
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown is reported for errors that were never classified.
	KindUnknown Kind = iota

	// KindFileExists means the destination file is already on disk.
	// It is a skip, not a failure.
	KindFileExists

	// KindHTTP covers transport failures and non-2xx responses.
	KindHTTP

	// KindScrape covers selector and decoding failures on a page.
	KindScrape

	// KindTag covers ID3 tag embedding failures. The audio file is kept.
	KindTag

	// KindIO covers disk failures.
	KindIO
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFileExists:
		return "file exists"
	case KindHTTP:
		return "http"
	case KindScrape:
		return "scrape"
	case KindTag:
		return "tag"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// ErrFileExists is the cause carried by KindFileExists errors.
var ErrFileExists = errors.New("file already exists")

// Error is a classified error.
type Error struct {
	Kind Kind
	// Op describes what was being done, usually including a URL or path.
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind and an operation description.
// It returns nil if err is nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
