// Package options carries ambient call configuration — the logging
// component allowlist, tracing switch, retry policy, and request ID
// active for a call.
//
// A Set is immutable once built. Streams snapshot the Set found in the
// construction context and reinstate it for every reader invocation and
// for teardown, so configuration follows the call site that started the
// iteration rather than whichever goroutine happens to drive it.
//
//	set := options.New(
//	    options.LoggingComponents("pager"),
//	    options.Tracing(true),
//	    options.Retry(retry.Default()),
//	)
//	ctx = options.NewContext(ctx, set)
//	s := pager.Stream(ctx, fetcher)
package options
