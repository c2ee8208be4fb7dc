package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/bcdl/internal/errs"
	"github.com/handiism/bcdl/internal/http"
)

// Transport starts audio transfers. *http.Client satisfies it.
type Transport interface {
	Prepare(ctx context.Context, url string) (*http.Transfer, error)
	Start(t *http.Transfer) (io.ReadCloser, int64, error)
}

// maxPrealloc caps the buffer reserved from an announced Content-Length.
const maxPrealloc = 64 << 20

type eventKind int

const (
	evStarted eventKind = iota
	evReceived
	evCompleted
)

type event struct {
	kind  eventKind
	token Token
	total int64
	chunk []byte
	err   error
}

// transfer is the loop-owned state of one in-flight request.
type transfer struct {
	req      Request
	buf      []byte
	received int64
	total    int64
	progress Progress
}

// Engine downloads many requests at once and hands each finished body to a
// Handler.
//
// Every transfer gets a reader goroutine that only reads its response and
// posts events. A single loop goroutine owns all buffers and progress
// handles; it appends chunks, reports progress and, when a transfer
// completes, removes its state from the table and dispatches it to a
// bounded pool of completion workers. The loop never waits on a worker: a
// completion that finds the pool full is queued and started as soon as a
// worker returns.
//
// Example usage:
//
//	engine := NewEngine(client, pipeline, WithSink(manager), WithCompletionWorkers(4))
//	err := engine.Run(ctx, plan.Requests)
type Engine struct {
	transport Transport
	handler   Handler
	sink      Sink
	workers   int
	poll      time.Duration
	chunkSize int
	logger    *zap.Logger

	next atomic.Uint64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSink sets the observer for progress and outcomes.
func WithSink(s Sink) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithCompletionWorkers bounds how many completions are processed at once.
func WithCompletionWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithPollInterval bounds how long the loop waits for an event.
func WithPollInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.poll = d
		}
	}
}

// WithChunkSize sets the read size of reader goroutines.
func WithChunkSize(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithEngineLogger sets the logger.
func WithEngineLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(t Transport, h Handler, opts ...EngineOption) *Engine {
	e := &Engine{
		transport: t,
		handler:   h,
		sink:      nopSink{},
		workers:   4,
		poll:      time.Second,
		chunkSize: 32 * 1024,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run downloads every request and returns once each one has an Outcome
// delivered to the Sink.
//
// All requests are registered before any transfer starts; a request that
// cannot be registered fails the whole run and nothing is downloaded.
// Per-transfer failures are reported as StatusFailed outcomes and never
// retried. When ctx is cancelled in-flight transfers abort, their outcomes
// are still delivered and Run returns ctx.Err(). A cancellation that arrives
// after every transfer has finished does not fail the run.
func (e *Engine) Run(ctx context.Context, reqs []Request) error {
	log := e.logger.With(zap.String("run", uuid.NewString()))

	if len(reqs) == 0 {
		return nil
	}

	prepared := make([]*http.Transfer, len(reqs))
	for i, req := range reqs {
		t, err := e.transport.Prepare(ctx, req.URL())
		if err != nil {
			return fmt.Errorf("register %s: %w", req.Label(), err)
		}
		prepared[i] = t
	}

	table := make(map[Token]*transfer, len(reqs))
	tokens := make([]Token, len(reqs))
	for i, req := range reqs {
		tok := Token(e.next.Add(1))
		tokens[i] = tok
		table[tok] = &transfer{req: req, total: -1}
	}

	log.Debug("starting transfers", zap.Int("count", len(reqs)))

	events := make(chan event, 64)
	for i, tok := range tokens {
		go e.read(tok, prepared[i], events)
	}

	// The loop owns the worker count. Each worker reports on freed when it
	// returns, so a queued completion starts as soon as a slot opens.
	var pool errgroup.Group
	freed := make(chan struct{}, e.workers)
	running := 0

	var pending []Completion
	dispatch := func() {
		for len(pending) > 0 && running < e.workers {
			c := pending[0]
			pending = pending[1:]
			running++
			pool.Go(func() error {
				defer func() { freed <- struct{}{} }()
				e.finish(ctx, c)
				return nil
			})
		}
	}

	// interrupted is set when cancellation cut transfers short.
	interrupted := false

	handle := func(ev event) {
		st, ok := table[ev.token]
		if !ok {
			log.Warn("event for unknown token", zap.Uint64("token", uint64(ev.token)))
			return
		}
		switch ev.kind {
		case evStarted:
			st.total = ev.total
			if ev.total > 0 && ev.total <= maxPrealloc {
				st.buf = make([]byte, 0, ev.total)
			}
			st.progress = e.sink.Started(ev.token, st.req, ev.total)
		case evReceived:
			st.buf = append(st.buf, ev.chunk...)
			st.received += int64(len(ev.chunk))
			if st.progress != nil {
				st.progress.Update(st.received, st.total)
			}
		case evCompleted:
			delete(table, ev.token)
			if ev.err != nil && ctx.Err() != nil {
				interrupted = true
			}
			pending = append(pending, Completion{
				Token:   ev.token,
				Request: st.req,
				Data:    st.buf,
				Err:     ev.err,
			})
		}
	}

	ticker := time.NewTicker(e.poll)
	defer ticker.Stop()

	done := ctx.Done()
	for len(table) > 0 || len(pending) > 0 || running > 0 {
		select {
		case ev := <-events:
			handle(ev)
		drain:
			for {
				select {
				case ev := <-events:
					handle(ev)
				default:
					break drain
				}
			}
		case <-freed:
			running--
		case <-ticker.C:
		case <-done:
			if len(table) > 0 {
				log.Debug("cancelled, waiting for transfers to abort", zap.Int("in_flight", len(table)))
				interrupted = true
			}
			done = nil
		}
		dispatch()
	}
	_ = pool.Wait()

	log.Debug("run finished", zap.Bool("interrupted", interrupted))
	if interrupted {
		return ctx.Err()
	}
	return nil
}

func (e *Engine) finish(ctx context.Context, c Completion) {
	e.sink.Finished(e.handler.Handle(ctx, c))
}

// read drives one transfer and posts its events. The last event is always
// evCompleted.
func (e *Engine) read(tok Token, t *http.Transfer, events chan<- event) {
	body, total, err := e.transport.Start(t)
	if err != nil {
		events <- event{kind: evCompleted, token: tok, err: err}
		return
	}
	defer body.Close()

	events <- event{kind: evStarted, token: tok, total: total}

	buf := make([]byte, e.chunkSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			events <- event{kind: evReceived, token: tok, chunk: chunk}
		}
		if errors.Is(err, io.EOF) {
			events <- event{kind: evCompleted, token: tok}
			return
		}
		if err != nil {
			events <- event{kind: evCompleted, token: tok, err: errs.New(errs.KindHTTP, t.URL, err)}
			return
		}
	}
}
