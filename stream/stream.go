package stream

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
	"github.com/kbukum/streamkit/options"
	"github.com/kbukum/streamkit/status"
)

// Component is the logging component name for streams.
const Component = "stream"

// metrics is the package-wide instrument set. Nil records nothing.
var metrics *observability.StreamMetrics

// SetMetrics installs the instruments streams record into. Call once
// at startup, before streams are created.
func SetMetrics(m *observability.StreamMetrics) { metrics = m }

type streamState int

const (
	stateNotStarted streamState = iota
	stateStreaming
	stateDone
)

// Stream is a lazy, single-pass, single-consumer sequence of Results.
// A Stream owns its reader: it must not be copied, and only one
// logical traversal is supported. The zero value is an exhausted
// stream.
type Stream[T any] struct {
	reader   Reader[T]
	ctx      context.Context
	opts     options.Set
	id       string
	span     trace.Span
	state    streamState
	elements int64
	closed   bool
}

// New creates a Stream over the given reader. The options carried by
// ctx are captured now; every reader invocation and the final Close
// run under a context holding that snapshot, with ctx's cancellation
// detached so a consumer can drive the stream from another call stack.
func New[T any](ctx context.Context, reader Reader[T]) *Stream[T] {
	opts := options.FromContext(ctx).WithRequestID()
	s := &Stream[T]{
		reader: reader,
		ctx:    options.NewContext(context.WithoutCancel(ctx), opts),
		opts:   opts,
		id:     uuid.NewString(),
	}
	if opts.TracingEnabled() {
		s.ctx, s.span = observability.StartSpan(s.ctx, observability.SpanStreamRead)
		s.span.SetAttributes(
			attribute.String(observability.AttrStreamID, s.id),
			attribute.String(observability.AttrRequestID, opts.RequestID()),
		)
	}
	metrics.RecordStreamOpen(s.ctx)
	logger.For(opts, Component).Debug("stream opened", logger.Fields(
		logger.FieldStreamID, s.id,
	))
	return s
}

// NewFunc creates a Stream over a closure reader.
func NewFunc[T any](ctx context.Context, fn ReadFunc[T]) *Stream[T] {
	return New(ctx, fn)
}

// Of creates a Stream serving the given values. Mostly useful in tests
// and examples.
func Of[T any](ctx context.Context, items ...T) *Stream[T] {
	return New(ctx, &sliceReader[T]{items: items})
}

// Empty returns an immediately exhausted Stream whose reader is never
// invoked.
func Empty[T any]() *Stream[T] {
	return &Stream[T]{}
}

// ID returns the stream's unique identifier.
func (s *Stream[T]) ID() string { return s.id }

// Options returns the options snapshot captured at construction.
func (s *Stream[T]) Options() options.Set { return s.opts }

// Next advances the stream by one element. The first call performs the
// first read. It returns (result, true) while elements remain, where
// the result may carry the stream's single terminal error, and
// (zero, false) once the stream is exhausted. A terminal status from
// the reader ends the sequence permanently: the reader is never
// invoked again and its resources are released immediately.
func (s *Stream[T]) Next() (Result[T], bool) {
	if s == nil || s.reader == nil || s.state == stateDone {
		var zero Result[T]
		return zero, false
	}
	s.state = stateStreaming

	v, ok, err := s.reader.Next(s.ctx)
	if err != nil {
		s.finish(err)
		return Err[T](err), true
	}
	if !ok {
		s.finish(nil)
		var zero Result[T]
		return zero, false
	}
	s.elements++
	return Ok(v), true
}

// All returns a single-pass iterator over the remaining Results. The
// stream, not the iterator, owns the cursor: breaking out of a loop
// and ranging again resumes where the previous loop stopped.
func (s *Stream[T]) All() iter.Seq[Result[T]] {
	return func(yield func(Result[T]) bool) {
		for {
			r, ok := s.Next()
			if !ok {
				return
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Close releases the reader. It is idempotent, safe on exhausted and
// zero-value streams, and runs the reader teardown under the options
// captured at construction.
func (s *Stream[T]) Close() error {
	if s == nil || s.reader == nil || s.closed {
		return nil
	}
	s.state = stateDone
	return s.closeReader(nil)
}

// finish transitions to the terminal state and releases the reader.
func (s *Stream[T]) finish(terminal error) {
	s.state = stateDone
	_ = s.closeReader(terminal)
}

func (s *Stream[T]) closeReader(terminal error) error {
	if s.closed {
		return nil
	}
	s.closed = true

	log := logger.For(s.opts, Component)
	if terminal != nil {
		code := string(status.CodeOf(terminal))
		metrics.RecordStreamError(s.ctx, code)
		if s.span != nil {
			s.span.RecordError(terminal)
			s.span.SetAttributes(attribute.String(observability.AttrCode, code))
		}
		log.Debug("stream ended with error", logger.Fields(
			logger.FieldStreamID, s.id,
			logger.FieldStatus, code,
			logger.FieldError, terminal.Error(),
		))
	} else {
		log.Debug("stream ended", logger.Fields(
			logger.FieldStreamID, s.id,
			logger.FieldElements, s.elements,
		))
	}
	metrics.RecordStreamClose(s.ctx, s.elements)
	if s.span != nil {
		s.span.SetAttributes(attribute.Int64(observability.AttrElements, s.elements))
		s.span.End()
	}

	err := s.reader.Close(s.ctx)
	if err != nil {
		log.Warn("reader close failed", logger.ErrorFields("close", err))
	}
	return err
}
