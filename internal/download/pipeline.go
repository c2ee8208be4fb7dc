package download

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/handiism/bcdl/internal/audio"
	"github.com/handiism/bcdl/internal/bandcamp"
	"github.com/handiism/bcdl/internal/errs"
	ioutils "github.com/handiism/bcdl/internal/io"
	"github.com/handiism/bcdl/internal/model"
)

// Tagger writes tags to a finished file. *audio.Tagger satisfies it.
type Tagger interface {
	Write(path string, tags audio.Tags) error
}

// CoverSource supplies cover art for a request. *CoverCache satisfies it.
type CoverSource interface {
	Get(ctx context.Context, req Request) *audio.Cover
}

// Pipeline is the Handler that turns completed transfers into tagged files.
//
// For each completion it:
//  1. Reports transport failures as StatusFailed
//  2. Skips destinations that already exist
//  3. Writes the payload to a new file
//  4. Embeds ID3 tags, with cover art fetched once per album
type Pipeline struct {
	naming *model.TrackConfig
	tagger Tagger
	covers CoverSource
	logger *zap.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithCovers enables cover art embedding.
func WithCovers(c CoverSource) PipelineOption {
	return func(p *Pipeline) { p.covers = c }
}

// WithPipelineLogger sets the logger.
func WithPipelineLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates a Pipeline. A nil tagger writes untagged files.
func NewPipeline(naming *model.TrackConfig, tagger Tagger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		naming: naming,
		tagger: tagger,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle implements Handler.
func (p *Pipeline) Handle(ctx context.Context, c Completion) Outcome {
	out := Outcome{Token: c.Token, Request: c.Request, Bytes: len(c.Data)}

	if c.Err != nil {
		out.Status = StatusFailed
		out.Err = c.Err
		if errs.KindOf(c.Err) == errs.KindUnknown {
			out.Err = errs.New(errs.KindHTTP, c.Request.URL(), c.Err)
		}
		return out
	}

	out.Path = c.Request.Path(p.naming)

	if ioutils.Exists(out.Path) {
		out.Status = StatusSkipped
		out.Err = errs.New(errs.KindFileExists, out.Path, errs.ErrFileExists)
		return out
	}

	if err := ioutils.WriteNewFile(out.Path, c.Data); err != nil {
		if errors.Is(err, ioutils.ErrExist) {
			out.Status = StatusSkipped
			out.Err = errs.New(errs.KindFileExists, out.Path, errs.ErrFileExists)
			return out
		}
		out.Status = StatusFailed
		out.Err = errs.New(errs.KindIO, out.Path, err)
		return out
	}

	tags := p.tags(ctx, c.Request)
	if p.tagger != nil {
		if err := p.tagger.Write(out.Path, tags); err != nil {
			p.logger.Debug("tagging failed, keeping file", zap.String("path", out.Path), zap.Error(err))
			out.Status = StatusFailed
			out.Err = errs.New(errs.KindTag, out.Path, err)
			return out
		}
	}

	out.Status = StatusDownloaded
	return out
}

func (p *Pipeline) tags(ctx context.Context, req Request) audio.Tags {
	tags := audio.Tags{Album: req.Album, Track: req.Track}
	if ts, ok := bandcamp.ParseReleaseDate(req.Album.ReleaseDate); ok {
		tags.Released = &ts
	}
	if p.covers != nil {
		tags.Cover = p.covers.Get(ctx, req)
	}
	return tags
}
