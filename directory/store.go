// Package directory holds the published directory snapshot and answers the
// three read operations consumed by the addon transport.
package directory

import (
	"sync"

	"github.com/shanny/iptv-directory/domain"
)

// Store owns the currently published snapshot. Publishing replaces the
// snapshot atomically with respect to concurrent readers: a reader holding a
// previously returned snapshot keeps observing that unchanged value, and
// Current never returns a partially constructed one.
type Store struct {
	mu      sync.RWMutex
	current *domain.Snapshot
}

// NewStore creates a store holding the empty snapshot, so reads before the
// first successful refresh see an empty directory rather than failing.
func NewStore() *Store {
	return &Store{current: domain.EmptySnapshot()}
}

// Current returns the latest published snapshot. Never nil, never blocks on
// a refresh in progress.
func (s *Store) Current() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Publish replaces the published snapshot. Visible to all subsequent Current
// calls.
func (s *Store) Publish(snapshot *domain.Snapshot) {
	if snapshot == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snapshot
}
