// Package fetcher retrieves raw feed content over HTTP under a bounded
// timeout, with a stale-cache fallback when the upstream is unreachable.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shanny/iptv-directory/cache"
	"github.com/shanny/iptv-directory/logger"
)

// Fetcher fetches feed content and keeps the last good copy in cache.
type Fetcher struct {
	client   *http.Client
	storage  cache.Storage
	maxStale time.Duration
	log      logger.Logger
}

// New creates a Fetcher with the specified per-request timeout and cache
// storage. A nil storage disables the fallback; maxStale bounds how old a
// cached copy may be before the fallback refuses it (zero = no bound).
func New(timeout time.Duration, storage cache.Storage, maxStale time.Duration, log logger.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		storage:  storage,
		maxStale: maxStale,
		log:      log,
	}
}

// Fetch retrieves the content behind url. A successful fetch refreshes the
// cache entry for the URL; a failing one is answered from the cached copy when
// available, so a flapping upstream degrades to stale data instead of an
// error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, bool, error) {
	content, err := f.fetchFromURL(ctx, url)
	if err == nil {
		if f.storage != nil {
			if setErr := f.storage.Set(url, content); setErr != nil {
				f.log.Warn("failed to update feed cache",
					logger.String("url", url),
					logger.Error(setErr))
			}
		}
		return content, false, nil
	}

	if f.storage == nil {
		return nil, false, err
	}

	entry, cacheErr := f.storage.Get(url)
	if cacheErr != nil {
		return nil, false, fmt.Errorf("upstream fetch failed and no cache available: %w", err)
	}

	if f.maxStale > 0 {
		expired, expErr := f.storage.IsExpired(url, f.maxStale)
		if expErr == nil && expired {
			return nil, false, fmt.Errorf("upstream fetch failed and cached copy from %s is too stale: %w",
				entry.Timestamp.Format(time.RFC3339), err)
		}
	}

	f.log.Warn("serving stale cache for feed",
		logger.String("url", url),
		logger.Time("cached_at", entry.Timestamp),
		logger.Error(err))
	return entry.Content, true, nil
}

func (f *Fetcher) fetchFromURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.log.Warn("failed to close response body", logger.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request returned status %d: %s", resp.StatusCode, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return content, nil
}
