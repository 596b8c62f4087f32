package stream

import "context"

// Reader supplies the elements of a Stream. Implementations are owned
// exclusively by the Stream that wraps them and are invoked
// synchronously on whichever goroutine advances the stream.
type Reader[T any] interface {
	// Next returns the next element. Returns (zero, false, nil) when the
	// sequence ends cleanly, and (zero, false, err) to end it with a
	// terminal error.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the reader, such as an open
	// RPC. It runs under the stream's captured options context.
	Close(ctx context.Context) error
}

// ReadFunc adapts a closure to the Reader interface with a no-op Close.
type ReadFunc[T any] func(ctx context.Context) (T, bool, error)

// Next implements Reader.
func (f ReadFunc[T]) Next(ctx context.Context) (T, bool, error) { return f(ctx) }

// Close implements Reader.
func (f ReadFunc[T]) Close(context.Context) error { return nil }

// sliceReader serves elements from a slice. Used by Of and in tests.
type sliceReader[T any] struct {
	items []T
	index int
}

func (r *sliceReader[T]) Next(_ context.Context) (T, bool, error) {
	if r.index >= len(r.items) {
		var zero T
		return zero, false, nil
	}
	v := r.items[r.index]
	r.index++
	return v, true, nil
}

func (r *sliceReader[T]) Close(context.Context) error { return nil }
