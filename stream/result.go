package stream

import "fmt"

// Result carries either a stream element or the terminal error of the
// stream. Consumers must check Ok or Get before using the value.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a value in a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps an error in a failed Result.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Ok reports whether the Result holds a value.
func (r Result[T]) Ok() bool { return r.err == nil }

// Get returns the value and error of the Result.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// Err returns the error of the Result, or nil.
func (r Result[T]) Err() error { return r.err }

// Value returns the held value. It panics when called on an error
// Result: accessing a failed element without checking it is a bug in
// the consumer, and failing loudly beats returning a zero value.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic(fmt.Sprintf("stream: Value called on error result: %v", r.err))
	}
	return r.value
}
