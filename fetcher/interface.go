package fetcher

import "context"

// Interface defines the contract for fetching raw feed content with a
// stale-cache fallback.
type Interface interface {
	// Fetch retrieves the content behind url. On upstream failure it falls
	// back to the last cached copy, if any.
	// Returns: content, fromCache, error.
	Fetch(ctx context.Context, url string) ([]byte, bool, error)
}
