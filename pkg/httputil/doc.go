// Package httputil provides HTTP helpers shared by the remote clients.
//
// [Retry] wraps an operation with exponential backoff. Only errors wrapped in
// [RetryableError] (network failures, 5xx and 429 responses) are retried;
// everything else is returned at once:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch(ctx)
//	})
//
// Only the artifact repository client retries. Wiki lookups fail fast and
// fall through to the next resolution tier instead.
package httputil
