// Package retry provides retry with exponential backoff for the policy
// layer around page fetches.
//
// The stream core never retries; a pager applies the retry policy
// carried by the ambient options around each page fetch. Whether an
// error is retried defaults to status.IsRetryable.
//
//	cfg := retry.Default()
//	page, err := retry.Do(ctx, cfg, func() (Page, error) {
//	    return fetchPage(ctx, token)
//	})
package retry
