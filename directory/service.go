package directory

import (
	"fmt"
	"net/url"
	"time"

	"github.com/shanny/iptv-directory/domain"
)

// AllGenres is the sentinel genre that selects every channel.
const AllGenres = "All"

// unknownChannelName names the minimal result for a meta lookup miss.
const unknownChannelName = "Unknown"

// ChannelSummary is one catalog row.
type ChannelSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Poster      string `json:"poster,omitempty"`
	Background  string `json:"background,omitempty"`
	Description string `json:"description,omitempty"`
}

// StreamInfo describes how a downstream player should fetch a channel's
// stream.
type StreamInfo struct {
	URL       string
	Title     string
	MediaType string
	Headers   map[string]string
}

// ChannelMeta is the detailed description of one channel, including its
// current programming.
type ChannelMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Poster      string `json:"poster,omitempty"`
	Description string `json:"description,omitempty"`
}

// Service answers the directory query operations against the store's current
// snapshot. The clock is injectable so now/next resolution is testable.
type Service struct {
	store *Store
	now   func() time.Time
}

// NewService creates a query service over the given store. A nil now function
// defaults to time.Now.
func NewService(store *Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Genres returns the selectable genre list: the sentinel "All" followed by
// the snapshot's categories in ascending order.
func (s *Service) Genres() []string {
	snapshot := s.store.Current()
	genres := make([]string, 0, len(snapshot.Categories)+1)
	genres = append(genres, AllGenres)
	genres = append(genres, snapshot.Categories...)
	return genres
}

// ListChannels returns the channels matching the genre filter in snapshot
// order. The sentinel "All" (or an empty filter) selects everything; any
// other value matches the channel category exactly, case-sensitively.
func (s *Service) ListChannels(genre string) []ChannelSummary {
	snapshot := s.store.Current()

	summaries := make([]ChannelSummary, 0, len(snapshot.Channels))
	for _, ch := range snapshot.Channels {
		if genre != "" && genre != AllGenres && ch.Category != genre {
			continue
		}
		summaries = append(summaries, ChannelSummary{
			ID:          ch.ID,
			Name:        ch.Name,
			Logo:        ch.Logo,
			Poster:      posterURL(ch.Category),
			Background:  posterURL(ch.Category),
			Description: fmt.Sprintf("Category: %s", ch.Category),
		})
	}
	return summaries
}

// DescribeStream looks up a channel and describes its stream: the URL, a
// media type classified from the URL suffix, and the outbound request headers
// a player should send so origin servers that reject bare clients accept the
// fetch. An unknown id yields ok=false, not an error.
func (s *Service) DescribeStream(channelID string) (StreamInfo, bool) {
	snapshot := s.store.Current()

	ch, ok := snapshot.ChannelByID(channelID)
	if !ok {
		return StreamInfo{}, false
	}

	return StreamInfo{
		URL:       ch.StreamURL,
		Title:     ch.Name,
		MediaType: ch.MediaType(),
		Headers:   streamRequestHeaders(),
	}, true
}

// DescribeChannel looks up a channel and composes its description from the
// programme airing now and the one following it. An unknown id yields a
// minimal "Unknown" result rather than an error; a channel without guide data
// resolves to the no-EPG description.
func (s *Service) DescribeChannel(channelID string) ChannelMeta {
	snapshot := s.store.Current()

	ch, ok := snapshot.ChannelByID(channelID)
	if !ok {
		return ChannelMeta{ID: channelID, Name: unknownChannelName}
	}

	current, next := snapshot.Guide.NowNext(ch.GuideChannelID, s.now())

	return ChannelMeta{
		ID:          ch.ID,
		Name:        ch.Name,
		Logo:        ch.Logo,
		Poster:      posterURL(ch.Category),
		Description: nowNextDescription(current, next),
	}
}

// nowNextDescription renders "<current> → <next>", omitting the arrow and
// next title when there is no following programme.
func nowNextDescription(current, next *domain.ProgramEntry) string {
	if current == nil {
		return "No EPG"
	}
	if next == nil {
		return current.Title
	}
	return fmt.Sprintf("%s → %s", current.Title, next.Title)
}

// posterURL derives a category-themed poster image reference.
func posterURL(category string) string {
	if category == "" {
		category = "tv"
	}
	return "https://source.unsplash.com/1600x900/?" + url.QueryEscape(category)
}

// streamRequestHeaders returns a fresh copy of the browser-like headers
// attached to every stream response. A copy, so callers cannot mutate shared
// state.
func streamRequestHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0",
		"Accept":          "*/*",
		"Accept-Encoding": "gzip, deflate, br",
		"Accept-Language": "en-US,en;q=0.9",
		"Range":           "bytes=0-",
	}
}
