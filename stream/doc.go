// Package stream provides a lazy, pull-based, single-pass sequence of
// Result values backed by a reader callback.
//
// A Stream is the client-side shape of a paginated or server-streamed
// API: nothing is read until the consumer asks for the next element,
// at most one element is buffered, and a terminal status from the
// reader ends the sequence permanently. An error status is delivered
// exactly once as an error Result, then the stream is exhausted; the
// consumer must check each Result before using its value.
//
//	s := stream.New(ctx, reader)
//	defer s.Close()
//	for r := range s.All() {
//	    v, err := r.Get()
//	    if err != nil {
//	        return err
//	    }
//	    use(v)
//	}
//
// The ambient options active when New is called are captured once and
// reinstated into the context passed to every reader invocation and to
// Close, no matter which goroutine drives the iteration or how much
// later teardown happens.
//
// Streams are single-consumer: Next, All, and Close must not be called
// concurrently.
package stream
