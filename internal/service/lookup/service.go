// Package lookup resolves a query to a rendered entry: it picks the entry
// language, asks each configured source in turn, normalizes the raw document
// and renders it. Several queries can be resolved in parallel.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wudao-dict/internal/domain"
	"github.com/heartmarshall/wudao-dict/internal/entry"
	"github.com/heartmarshall/wudao-dict/internal/render"
	"github.com/heartmarshall/wudao-dict/internal/sink"
)

// Source produces raw entry documents. Implementations return an error
// wrapping domain.ErrNotFound when they have no entry for the word.
type Source interface {
	Name() string
	Fetch(ctx context.Context, word string, lang domain.Lang) ([]byte, error)
}

// Recorder stores successful lookups.
type Recorder interface {
	Record(ctx context.Context, rec domain.HistoryRecord) error
}

// Result is one resolved query.
type Result struct {
	Query  string
	Source string
	Entry  domain.Entry
	Blocks []render.Block
}

// Document converts the result for an output sink.
func (r *Result) Document() sink.Document {
	return sink.Document{
		Word:   r.Entry.Word(),
		Lang:   r.Entry.Lang,
		Blocks: r.Blocks,
	}
}

// Outcome pairs a query with its result or its per-query error.
type Outcome struct {
	Query  string
	Result *Result
	Err    error
}

// Service resolves queries against an ordered list of sources.
type Service struct {
	log         *slog.Logger
	sources     []Source
	recorder    Recorder
	maxParallel int
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records every successful lookup.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithMaxParallel bounds LookupMany concurrency.
func WithMaxParallel(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxParallel = n
		}
	}
}

// NewService creates a lookup service. Sources are tried in order; a source
// that reports not-found hands the query to the next one.
func NewService(logger *slog.Logger, sources []Source, opts ...Option) *Service {
	s := &Service{
		log:         logger.With("service", "lookup"),
		sources:     sources,
		maxParallel: 4,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup resolves one query. Errors wrap domain.ErrValidation for an empty
// query, domain.ErrNotFound when no source has the word, domain.ErrUpstream
// when a source fails and domain.ErrInvariant for an unusable document.
func (s *Service) Lookup(ctx context.Context, query string, opts render.Options) (*Result, error) {
	word := domain.NormalizeWord(query)
	if word == "" {
		return nil, domain.NewValidationError("word", "required")
	}
	lang := domain.DetectLang(word)

	raw, source, err := s.fetch(ctx, word, lang)
	if err != nil {
		return nil, err
	}

	e, err := entry.Decode(lang, raw)
	if err != nil {
		return nil, fmt.Errorf("lookup %q from %s: %w", word, source, err)
	}

	blocks, err := render.Render(e, opts)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", word, err)
	}

	s.record(ctx, e.Word(), lang, source)

	return &Result{Query: query, Source: source, Entry: e, Blocks: blocks}, nil
}

func (s *Service) fetch(ctx context.Context, word string, lang domain.Lang) ([]byte, string, error) {
	if len(s.sources) == 0 {
		return nil, "", fmt.Errorf("lookup %q: no sources configured: %w", word, domain.ErrNotFound)
	}
	for _, src := range s.sources {
		raw, err := src.Fetch(ctx, word, lang)
		if err == nil {
			s.log.DebugContext(ctx, "entry fetched",
				slog.String("word", word),
				slog.String("source", src.Name()),
			)
			return raw, src.Name(), nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("lookup %q from %s: %w", word, src.Name(), err)
		}
	}
	return nil, "", fmt.Errorf("lookup %q: %w", word, domain.ErrNotFound)
}

// record never fails the lookup; history is best effort. A duplicate ID
// means the row is already stored.
func (s *Service) record(ctx context.Context, word string, lang domain.Lang, source string) {
	if s.recorder == nil {
		return
	}
	rec := domain.NewHistoryRecord(word, lang, source, s.now())
	err := s.recorder.Record(ctx, rec)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadyExists):
		s.log.DebugContext(ctx, "lookup already recorded", slog.String("id", rec.ID.String()))
	default:
		s.log.WarnContext(ctx, "record lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
	}
}

// LookupMany resolves queries concurrently and returns outcomes in query
// order. Per-query failures (not found, invalid input, unusable entry) are
// reported in Outcome.Err. An upstream or context failure cancels the
// remaining lookups and is returned as the error.
func (s *Service) LookupMany(ctx context.Context, queries []string, opts render.Options) ([]Outcome, error) {
	outcomes := make([]Outcome, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)

	for i, q := range queries {
		outcomes[i].Query = q
		g.Go(func() error {
			res, err := s.Lookup(gctx, q, opts)
			if err != nil && isFatal(err) {
				return err
			}
			outcomes[i].Result = res
			outcomes[i].Err = err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func isFatal(err error) bool {
	return errors.Is(err, domain.ErrUpstream) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
