package download

import "context"

// Status is the final state of a request.
type Status int

const (
	StatusDownloaded Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDownloaded:
		return "downloaded"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Completion is handed to a Handler once per token when its transfer ends.
// Data is the full body when Err is nil.
type Completion struct {
	Token   Token
	Request Request
	Data    []byte
	Err     error
}

// Outcome is what a Handler made of a Completion.
type Outcome struct {
	Token   Token
	Request Request
	Status  Status

	// Path is the destination file. It is set whenever a path was resolved,
	// including tag failures where the audio was kept.
	Path string

	// Bytes is the payload size.
	Bytes int

	// Err is nil for StatusDownloaded. Skips carry an errs.KindFileExists error.
	Err error
}

// Handler post-processes finished transfers. Handle may be called from
// several goroutines at once, but never twice for the same token.
type Handler interface {
	Handle(ctx context.Context, c Completion) Outcome
}

// Progress receives byte counts for one transfer. total is -1 when the
// server did not announce a length. Calls come from the engine loop only.
type Progress interface {
	Update(received, total int64)
}

// Sink observes a run.
//
// Started is called from the engine loop when a transfer's response
// arrives. Finished is called once per request from completion workers and
// must be safe for concurrent use.
type Sink interface {
	Started(token Token, req Request, total int64) Progress
	Finished(o Outcome)
}

type nopSink struct{}

func (nopSink) Started(Token, Request, int64) Progress { return nopProgress{} }
func (nopSink) Finished(Outcome)                       {}

type nopProgress struct{}

func (nopProgress) Update(int64, int64) {}
