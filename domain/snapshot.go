package domain

import (
	"sort"
	"time"
)

// Snapshot is one immutable, internally consistent view of the directory:
// the channel list, the programme guide and the derived category set, taken
// at a point in time. A snapshot is fully constructed before it is published
// and never mutated afterwards.
type Snapshot struct {
	Channels   []Channel
	Categories []string
	Guide      Guide
	FetchedAt  time.Time

	channelIndex map[string]Channel
}

// NewSnapshot builds a snapshot from its parts. Categories are deduplicated
// and sorted ascending; the channel index is derived from the channel list.
func NewSnapshot(channels []Channel, categories []string, guide Guide, fetchedAt time.Time) *Snapshot {
	index := make(map[string]Channel, len(channels))
	for _, ch := range channels {
		index[ch.ID] = ch
	}

	seen := make(map[string]struct{}, len(categories))
	unique := make([]string, 0, len(categories))
	for _, cat := range categories {
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		unique = append(unique, cat)
	}
	sort.Strings(unique)

	if guide == nil {
		guide = Guide{}
	}

	return &Snapshot{
		Channels:     channels,
		Categories:   unique,
		Guide:        guide,
		FetchedAt:    fetchedAt,
		channelIndex: index,
	}
}

// EmptySnapshot returns a snapshot with no channels, no categories and an
// empty guide. It is what readers observe before the first successful refresh.
func EmptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil, Guide{}, time.Time{})
}

// ChannelByID looks up a channel by its synthesized id.
func (s *Snapshot) ChannelByID(id string) (Channel, bool) {
	ch, ok := s.channelIndex[id]
	return ch, ok
}
