// Package cache stores raw feed content so a failing upstream can be served
// from the last successfully fetched copy.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const feedsBucket = "feeds"

// ErrNotFound is returned when no cache entry exists for a key.
var ErrNotFound = errors.New("cache entry not found")

// BoltStorage implements Storage on top of a bbolt database. Entries are
// keyed by source URL and serialized as JSON.
type BoltStorage struct {
	db *bbolt.DB
}

// NewBoltStorage creates a bolt-backed cache storage. It initializes the
// feeds bucket if it doesn't exist.
func NewBoltStorage(db *bbolt.DB) (*BoltStorage, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}

	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(feedsBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating cache bucket: %w", err)
	}

	return &BoltStorage{db: db}, nil
}

// Get retrieves a cached entry by key.
func (s *BoltStorage) Get(key string) (*Entry, error) {
	var entry Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(feedsBucket)).Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("unmarshaling cache entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Set stores content under the key with the current timestamp.
func (s *BoltStorage) Set(key string, content []byte) error {
	entry := Entry{
		Content:   content,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(feedsBucket)).Put([]byte(key), data)
	})
}

// IsExpired checks if the entry under key has exceeded the TTL. A missing
// entry counts as expired.
func (s *BoltStorage) IsExpired(key string, ttl time.Duration) (bool, error) {
	entry, err := s.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("checking expiration: %w", err)
	}

	return time.Since(entry.Timestamp) > ttl, nil
}
