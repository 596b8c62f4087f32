// Package pager adapts page-token RPC semantics into the single
// "read next element" reader a Stream consumes.
//
// A Fetcher produces one page per call, carrying forward the
// continuation token from the previous page. The pager buffers the
// current page, fetches the next one lazily when the buffer empties,
// and ends the stream when the service reports no further pages or a
// fetch fails. Retry lives here, not in the stream core: each fetch is
// wrapped in the retry policy carried by the ambient options, and no
// retry happens when the options carry none.
//
//	fetcher := pager.FetchFunc[Row](func(ctx context.Context, token string) (pager.Page[Row], error) {
//	    return client.ListRows(ctx, token)
//	})
//	s := pager.Stream(ctx, fetcher)
//	defer s.Close()
package pager
