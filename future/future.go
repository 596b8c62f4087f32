package future

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Contract-violation errors. These indicate misuse of a promise or
// future, not operational failure of the produced value.
var (
	// ErrNoState is returned when a future is used after its value was
	// already retrieved, or when it never had a shared state.
	ErrNoState = errors.New("future: no shared state")
	// ErrAlreadySatisfied is returned by Set/SetError when the shared
	// state already holds a result.
	ErrAlreadySatisfied = errors.New("future: promise already satisfied")
	// ErrAlreadyRetrieved is returned by Promise.Future when the future
	// end was already handed out.
	ErrAlreadyRetrieved = errors.New("future: future already retrieved")
	// ErrBroken is delivered to the consumer when the producer abandons
	// the promise without satisfying it.
	ErrBroken = errors.New("future: broken promise")
)

// state is the shared state coordinating one Promise/Future pair.
type state[T any] struct {
	done chan struct{}

	mu        sync.Mutex
	value     T
	err       error
	satisfied bool
	retrieved bool
	cont      func(T, error)
}

func newState[T any]() *state[T] {
	return &state[T]{done: make(chan struct{})}
}

// satisfy stores the result exactly once. The registered continuation,
// if any, runs on the satisfying goroutine after the lock is released.
func (s *state[T]) satisfy(v T, err error) error {
	s.mu.Lock()
	if s.satisfied {
		s.mu.Unlock()
		return ErrAlreadySatisfied
	}
	s.value = v
	s.err = err
	s.satisfied = true
	cont := s.cont
	s.cont = nil
	s.mu.Unlock()

	close(s.done)
	if cont != nil {
		cont(v, err)
	}
	return nil
}

// consume marks the state retrieved and returns the stored result.
// Only the first caller succeeds.
func (s *state[T]) consume() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.retrieved {
		var zero T
		return zero, ErrNoState
	}
	s.retrieved = true
	return s.value, s.err
}

// Promise is the producing end of a shared state.
type Promise[T any] struct {
	st          *state[T]
	futureTaken bool
}

// Future is the consuming end of a shared state.
type Future[T any] struct {
	st *state[T]
}

// New creates a connected Promise/Future pair.
func New[T any]() (*Promise[T], *Future[T]) {
	st := newState[T]()
	return &Promise[T]{st: st, futureTaken: true}, &Future[T]{st: st}
}

// NewPromise creates a promise whose future end has not been handed out
// yet. Call Future exactly once to obtain it.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{st: newState[T]()}
}

// Future returns the consuming end. It fails with ErrAlreadyRetrieved
// on the second call.
func (p *Promise[T]) Future() (*Future[T], error) {
	if p.st == nil {
		return nil, ErrNoState
	}
	if p.futureTaken {
		return nil, ErrAlreadyRetrieved
	}
	p.futureTaken = true
	return &Future[T]{st: p.st}, nil
}

// Set satisfies the shared state with a value. The second satisfaction
// attempt, by either Set or SetError, returns ErrAlreadySatisfied.
func (p *Promise[T]) Set(v T) error {
	if p.st == nil {
		return ErrNoState
	}
	return p.st.satisfy(v, nil)
}

// SetError satisfies the shared state with an error.
func (p *Promise[T]) SetError(err error) error {
	if p.st == nil {
		return ErrNoState
	}
	var zero T
	return p.st.satisfy(zero, err)
}

// Abandon satisfies an unsatisfied shared state with ErrBroken. It is a
// no-op on an already satisfied promise, so producers can defer it
// unconditionally.
func (p *Promise[T]) Abandon() {
	if p.st == nil {
		return
	}
	var zero T
	_ = p.st.satisfy(zero, ErrBroken)
}

// Ready reports whether the shared state is satisfied.
func (f *Future[T]) Ready() bool {
	if f == nil || f.st == nil {
		return false
	}
	select {
	case <-f.st.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the shared state is satisfied.
// Waiting on Done does not consume the future.
func (f *Future[T]) Done() <-chan struct{} {
	if f == nil || f.st == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return f.st.done
}

// Wait blocks until the shared state is satisfied or the context ends.
// It does not consume the future.
func (f *Future[T]) Wait(ctx context.Context) error {
	if f == nil || f.st == nil {
		return ErrNoState
	}
	select {
	case <-f.st.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitFor blocks up to d and reports whether the shared state became
// satisfied. It does not consume the future, so polling callers can
// call Get afterwards.
func (f *Future[T]) WaitFor(d time.Duration) bool {
	if f == nil || f.st == nil {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-f.st.done:
		return true
	case <-timer.C:
		return false
	}
}

// Get blocks until the shared state is satisfied, then returns the
// stored result and consumes the future. A second Get returns
// ErrNoState. A context cancellation returns ctx.Err() without
// consuming, so the caller may retry.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if f == nil || f.st == nil {
		return zero, ErrNoState
	}
	select {
	case <-f.st.done:
		return f.st.consume()
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Then registers a continuation invoked with the settled result and
// returns a future for the continuation's own result. If the receiver
// is already satisfied the continuation runs inline on the calling
// goroutine; otherwise it runs on the goroutine that satisfies the
// promise. Then consumes the receiver; chaining off a consumed future
// yields ErrNoState.
func Then[T, U any](f *Future[T], fn func(T, error) (U, error)) *Future[U] {
	p, out := New[U]()
	if f == nil || f.st == nil {
		_ = p.SetError(ErrNoState)
		return out
	}

	f.st.mu.Lock()
	if f.st.retrieved {
		f.st.mu.Unlock()
		_ = p.SetError(ErrNoState)
		return out
	}
	f.st.retrieved = true
	if f.st.satisfied {
		v, err := f.st.value, f.st.err
		f.st.mu.Unlock()
		u, uerr := fn(v, err)
		settle(p, u, uerr)
		return out
	}
	f.st.cont = func(v T, err error) {
		u, uerr := fn(v, err)
		settle(p, u, uerr)
	}
	f.st.mu.Unlock()
	return out
}

func settle[U any](p *Promise[U], v U, err error) {
	if err != nil {
		_ = p.SetError(err)
		return
	}
	_ = p.Set(v)
}

// Flatten unwraps a future-of-future: the result becomes ready when
// both the outer and the inner future are ready. An outer result
// carrying a nil inner future settles as ErrBroken.
func Flatten[T any](f *Future[*Future[T]]) *Future[T] {
	p, out := New[T]()
	Then(f, func(in *Future[T], err error) (struct{}, error) {
		switch {
		case err != nil:
			_ = p.SetError(err)
		case in == nil || in.st == nil:
			_ = p.SetError(ErrBroken)
		default:
			Then(in, func(v T, err error) (struct{}, error) {
				settle(p, v, err)
				return struct{}{}, nil
			})
		}
		return struct{}{}, nil
	})
	return out
}

// ThenFuture chains a continuation that itself returns a future and
// unwraps the result, mirroring the Then + Flatten composition.
func ThenFuture[T, U any](f *Future[T], fn func(T, error) *Future[U]) *Future[U] {
	return Flatten(Then(f, func(v T, err error) (*Future[U], error) {
		return fn(v, err), nil
	}))
}
