package pager

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
	"github.com/kbukum/streamkit/options"
	"github.com/kbukum/streamkit/retry"
	"github.com/kbukum/streamkit/stream"
)

// Component is the logging component name for pagers.
const Component = "pager"

// metrics is the package-wide instrument set. Nil records nothing.
var metrics *observability.StreamMetrics

// SetMetrics installs the instruments pagers record into.
func SetMetrics(m *observability.StreamMetrics) { metrics = m }

// Page is one page of results plus the continuation token for the
// next. An empty NextToken means this was the last page.
type Page[T any] struct {
	Items     []T
	NextToken string
}

// Fetcher produces pages. The first call receives an empty token;
// later calls receive the NextToken of the preceding page.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, token string) (Page[T], error)
}

// FetchFunc adapts a closure to the Fetcher interface.
type FetchFunc[T any] func(ctx context.Context, token string) (Page[T], error)

// FetchPage implements Fetcher.
func (f FetchFunc[T]) FetchPage(ctx context.Context, token string) (Page[T], error) {
	return f(ctx, token)
}

// ctxCloser is implemented by fetchers holding resources that need a
// context-aware teardown, such as an open connection.
type ctxCloser interface {
	Close(ctx context.Context) error
}

// reader turns a Fetcher into a stream.Reader.
type reader[T any] struct {
	fetcher Fetcher[T]
	buf     []T
	token   string
	done    bool
}

// NewReader wraps a Fetcher in the reader shape a Stream consumes.
func NewReader[T any](fetcher Fetcher[T]) stream.Reader[T] {
	return &reader[T]{fetcher: fetcher}
}

// Stream builds a Stream over the Fetcher, capturing the ambient
// options of ctx.
func Stream[T any](ctx context.Context, fetcher Fetcher[T]) *stream.Stream[T] {
	return stream.New(ctx, NewReader(fetcher))
}

func (r *reader[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for len(r.buf) == 0 {
		if r.done {
			return zero, false, nil
		}
		if err := r.fetchNext(ctx); err != nil {
			r.done = true
			return zero, false, err
		}
	}
	v := r.buf[0]
	r.buf = r.buf[1:]
	return v, true, nil
}

func (r *reader[T]) Close(ctx context.Context) error {
	r.buf = nil
	r.done = true
	if c, ok := r.fetcher.(ctxCloser); ok {
		return c.Close(ctx)
	}
	return nil
}

// fetchNext issues one page fetch under the ambient retry policy and
// refills the buffer. An empty page with a token is legal; the loop in
// Next keeps fetching until elements arrive or the pages run out.
func (r *reader[T]) fetchNext(ctx context.Context) error {
	opts := options.FromContext(ctx)
	log := logger.For(opts, Component)

	var span trace.Span
	if opts.TracingEnabled() {
		ctx, span = observability.StartSpan(ctx, observability.SpanPagerFetch)
		span.SetAttributes(
			attribute.String(observability.AttrPageToken, r.token),
			attribute.String(observability.AttrRequestID, opts.RequestID()),
		)
		defer span.End()
	}

	cfg, ok := opts.Retry()
	if !ok {
		cfg = retry.None()
	}
	if cfg.OnRetry == nil {
		cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
			if span != nil {
				span.AddEvent("retry", trace.WithAttributes(
					attribute.Int(observability.AttrAttempt, attempt),
				))
			}
			log.Debug("retrying page fetch", logger.Fields(
				logger.FieldAttempt, attempt,
				logger.FieldError, err.Error(),
				logger.FieldPageToken, r.token,
			))
		}
	}

	start := time.Now()
	page, err := retry.Do(ctx, cfg, func() (Page[T], error) {
		return r.fetcher.FetchPage(ctx, r.token)
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
		log.Debug("page fetch failed", logger.ErrorFields("fetch", err))
		return err
	}

	if span != nil {
		span.SetAttributes(attribute.Int(observability.AttrPageSize, len(page.Items)))
	}

	r.buf = page.Items
	r.token = page.NextToken
	if page.NextToken == "" {
		r.done = true
	}
	metrics.RecordPageFetch(ctx, len(page.Items), time.Since(start))
	log.Debug("page fetched", logger.Fields(
		logger.FieldPageToken, page.NextToken,
		logger.FieldElements, len(page.Items),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return nil
}
