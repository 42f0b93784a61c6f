package fetcher

import "context"

// Mock is a mock implementation of the Interface for testing.
type Mock struct {
	FetchFunc func(ctx context.Context, url string) ([]byte, bool, error)
}

// Fetch implements Interface.Fetch.
func (m *Mock) Fetch(ctx context.Context, url string) ([]byte, bool, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return nil, false, nil
}
