package fetcher_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shanny/iptv-directory/cache"
	"github.com/shanny/iptv-directory/fetcher"
	"github.com/shanny/iptv-directory/logger"
)

func TestFetchSuccessUpdatesCache(t *testing.T) {
	content := []byte("#EXTM3U\n#EXTINF:-1,One\nhttp://streams.example/one.ts\n")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(content)
	}))
	defer server.Close()

	var setKey string
	var setContent []byte
	storage := &cache.MockStorage{
		SetFunc: func(key string, content []byte) error {
			setKey = key
			setContent = content
			return nil
		},
	}

	f := fetcher.New(5*time.Second, storage, 0, logger.NewNop())

	got, fromCache, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if fromCache {
		t.Error("fromCache = true, want false")
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content = %q, want %q", got, content)
	}
	if setKey != server.URL || !bytes.Equal(setContent, content) {
		t.Errorf("cache not updated: key=%q", setKey)
	}
}

func TestFetchFailureFallsBackToCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	cached := []byte("cached playlist content")
	storage := &cache.MockStorage{
		GetFunc: func(key string) (*cache.Entry, error) {
			return &cache.Entry{Content: cached, Timestamp: time.Now().Add(-time.Hour)}, nil
		},
	}

	f := fetcher.New(5*time.Second, storage, 0, logger.NewNop())

	got, fromCache, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !fromCache {
		t.Error("fromCache = false, want true")
	}
	if !bytes.Equal(got, cached) {
		t.Errorf("content = %q, want cached copy", got)
	}
}

func TestFetchFallbackRejectsTooStaleCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	cachedAt := time.Now().Add(-48 * time.Hour)
	storage := &cache.MockStorage{
		GetFunc: func(key string) (*cache.Entry, error) {
			return &cache.Entry{Content: []byte("ancient"), Timestamp: cachedAt}, nil
		},
		IsExpiredFunc: func(key string, ttl time.Duration) (bool, error) {
			return time.Since(cachedAt) > ttl, nil
		},
	}

	f := fetcher.New(5*time.Second, storage, 24*time.Hour, logger.NewNop())

	if _, _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() error = nil, want error for stale cache beyond bound")
	}
}

func TestFetchFailureWithoutCacheReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	storage := &cache.MockStorage{
		GetFunc: func(key string) (*cache.Entry, error) {
			return nil, cache.ErrNotFound
		},
	}

	f := fetcher.New(5*time.Second, storage, 0, logger.NewNop())

	if _, _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() error = nil, want error")
	}
}

func TestFetchRespectsContextCancellation(t *testing.T) {
	var hit atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit.Store(true)
		<-r.Context().Done()
	}))
	defer server.Close()

	f := fetcher.New(time.Minute, nil, 0, logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := f.Fetch(ctx, server.URL)
	if err == nil {
		t.Fatal("Fetch() error = nil, want context deadline error")
	}
	if !errors.Is(err, context.DeadlineExceeded) && !hit.Load() {
		t.Errorf("Fetch() error = %v", err)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	f := fetcher.New(5*time.Second, nil, 0, logger.NewNop())

	if _, _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() error = nil, want error for 404")
	}
}
