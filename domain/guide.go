package domain

import "time"

// ProgramEntry is a single programme in a channel's schedule.
type ProgramEntry struct {
	Start       time.Time
	End         time.Time
	Title       string
	Description string
}

// Guide maps a guide channel identifier to that channel's programme sequence,
// ordered ascending by start time. Sequences are assumed to be sorted and
// non-overlapping as delivered by the feed; a malformed feed yields
// first-match precedence, not an error.
type Guide map[string][]ProgramEntry

// NowNext returns the programme airing at the reference instant and the one
// immediately following it in sequence order. A programme matches when the
// instant falls strictly inside its (start, end) interval, so an instant equal
// to a boundary matches neither the programme ending nor the one starting
// there. An unknown channel id, or an instant covered by no programme, yields
// (nil, nil); no nearest-future fallback is attempted.
func (g Guide) NowNext(guideChannelID string, at time.Time) (current, next *ProgramEntry) {
	programs := g[guideChannelID]
	for i := range programs {
		if at.After(programs[i].Start) && at.Before(programs[i].End) {
			current = &programs[i]
			if i+1 < len(programs) {
				next = &programs[i+1]
			}
			return current, next
		}
	}
	return nil, nil
}

// ProgramCount returns the total number of programme entries across all
// channels.
func (g Guide) ProgramCount() int {
	count := 0
	for _, programs := range g {
		count += len(programs)
	}
	return count
}
