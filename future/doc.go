// Package future provides a single-shot, thread-safe value channel
// between one producer (Promise) and one consumer (Future).
//
// A pair is created with New. The producer satisfies the shared state
// exactly once with Set or SetError; the consumer either blocks in Get
// or chains a continuation with Then. Both retrieval and satisfaction
// are one-shot: a second Set returns ErrAlreadySatisfied and a second
// Get returns ErrNoState. A producer that gives up calls Abandon,
// which delivers ErrBroken to the consumer instead of hanging it.
//
//	p, f := future.New[int]()
//	go func() { p.Set(compute()) }()
//	v, err := f.Get(ctx)
//
// Continuations compose without blocking:
//
//	doubled := future.Then(f, func(v int, err error) (int, error) {
//	    if err != nil {
//	        return 0, err
//	    }
//	    return v * 2, nil
//	})
package future
