// Package playlist turns raw M3U playlist content into the directory's
// channel records and the set of categories observed in the feed.
package playlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/shanny/iptv-directory/domain"
)

// ErrInvalidFormat is returned when the content does not start with the
// #EXTM3U header and therefore is not an M3U playlist.
var ErrInvalidFormat = errors.New("playlist: content is not a valid M3U playlist")

// Entry is one raw channel record parsed from the playlist, before any
// directory semantics (ids, category defaults) are applied.
type Entry struct {
	Name       string
	StreamURL  string
	Logo       string
	GroupTitle string
	TvgID      string
}

// Parse extracts the channel entries from raw M3U content. Each #EXTINF
// metadata line is paired with the first following non-comment line, which
// carries the stream URL. Entries without a URL are dropped.
func Parse(raw []byte) ([]Entry, error) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() || !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "#EXTM3U") {
		return nil, ErrInvalidFormat
	}

	var entries []Entry
	var pending *Entry

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#EXTINF:") {
			tvgID, tvgLogo, groupTitle := extractMetadata(line)
			pending = &Entry{
				Name:       extractDisplayName(line),
				Logo:       tvgLogo,
				GroupTitle: groupTitle,
				TvgID:      tvgID,
			}
			continue
		}

		// Other directives (#EXTGRP, #EXTVLCOPT, ...) are ignored.
		if strings.HasPrefix(line, "#") {
			continue
		}

		if pending != nil {
			pending.StreamURL = line
			entries = append(entries, *pending)
			pending = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning playlist: %w", err)
	}

	return entries, nil
}

// Ingest parses raw M3U content and derives the channel list and category set.
// Channel ids are synthesized from the entry's position in the playlist
// ("channel-<index>"), preserving source order. A blank or absent group title
// maps to the default category. No partial result is returned on error.
func Ingest(raw []byte) ([]domain.Channel, []string, error) {
	entries, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	channels := make([]domain.Channel, 0, len(entries))
	seen := make(map[string]struct{})
	var categories []string

	for i, entry := range entries {
		category := strings.TrimSpace(entry.GroupTitle)
		if category == "" {
			category = domain.DefaultCategory
		}
		if _, ok := seen[category]; !ok {
			seen[category] = struct{}{}
			categories = append(categories, category)
		}

		channels = append(channels, domain.Channel{
			ID:             fmt.Sprintf("channel-%d", i),
			Name:           entry.Name,
			StreamURL:      entry.StreamURL,
			Logo:           entry.Logo,
			Category:       category,
			GuideChannelID: entry.TvgID,
		})
	}

	return channels, categories, nil
}
