package generator

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"ethicsaudit/internal/report/models"
	"ethicsaudit/internal/report/ports"
	dErrors "ethicsaudit/pkg/domain-errors"
	"ethicsaudit/pkg/platform/circuit"
)

// Guarded stops calling a failing backend until its breaker lets a probe
// through. Streams abandoned by the caller count as neither outcome and hand
// the probe back on Close.
type Guarded struct {
	next    ports.Generator
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(next ports.Generator, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Stream(ctx context.Context, prompt models.Prompt) (ports.TokenStream, error) {
	if !g.breaker.Allow() {
		return nil, dErrors.New(dErrors.CodeGenerationBackend, "generation backend temporarily unavailable")
	}
	stream, err := g.next.Stream(ctx, prompt)
	if err != nil {
		if ctx.Err() == nil {
			g.failure(ctx, err)
		} else {
			g.breaker.Release()
		}
		return nil, err
	}
	return &guardedStream{TokenStream: stream, ctx: ctx, guard: g}, nil
}

func (g *Guarded) failure(ctx context.Context, err error) {
	if _, change := g.breaker.RecordFailure(); change.Opened {
		g.logger.WarnContext(ctx, "generation backend circuit opened",
			"breaker", g.breaker.Name(),
			"error", err,
		)
	}
}

func (g *Guarded) success(ctx context.Context) {
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "generation backend circuit closed", "breaker", g.breaker.Name())
	}
}

type guardedStream struct {
	ports.TokenStream
	ctx      context.Context
	guard    *Guarded
	recorded bool
}

func (s *guardedStream) Recv() (string, error) {
	text, err := s.TokenStream.Recv()
	if err == nil || s.recorded {
		return text, err
	}
	switch {
	case errors.Is(err, io.EOF):
		s.recorded = true
		s.guard.success(s.ctx)
	case s.ctx.Err() == nil:
		s.recorded = true
		s.guard.failure(s.ctx, err)
	}
	return text, err
}

func (s *guardedStream) Close() error {
	if !s.recorded {
		s.recorded = true
		s.guard.breaker.Release()
	}
	return s.TokenStream.Close()
}
