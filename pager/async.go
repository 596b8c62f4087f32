package pager

import (
	"context"

	"github.com/kbukum/streamkit/future"
)

// FetchAsync runs one page fetch on its own goroutine and delivers the
// result through a future. A caller can issue the fetch early and
// block in Get (or chain Then) only when the page is actually needed.
// If the goroutine exits without settling — a panicking fetcher — the
// consumer receives future.ErrBroken instead of hanging.
func FetchAsync[T any](ctx context.Context, fetcher Fetcher[T], token string) *future.Future[Page[T]] {
	p, f := future.New[Page[T]]()
	go func() {
		// Abandon runs after recover, so a panicking fetcher settles
		// the promise as broken instead of killing the process.
		defer p.Abandon()
		defer func() { _ = recover() }()
		page, err := fetcher.FetchPage(ctx, token)
		if err != nil {
			_ = p.SetError(err)
			return
		}
		_ = p.Set(page)
	}()
	return f
}
