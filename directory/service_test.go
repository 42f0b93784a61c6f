package directory_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/shanny/iptv-directory/directory"
	"github.com/shanny/iptv-directory/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testSnapshot() *domain.Snapshot {
	channels := []domain.Channel{
		{ID: "channel-0", Name: "News 24", StreamURL: "http://streams.example/news.m3u8", Logo: "http://logos.example/news.png", Category: "News", GuideChannelID: "news24.example"},
		{ID: "channel-1", Name: "Sports One", StreamURL: "http://streams.example/sports.ts", Category: "Sports"},
		{ID: "channel-2", Name: "News Extra", StreamURL: "http://streams.example/extra.mp4", Category: "News"},
	}
	guide := domain.Guide{
		"news24.example": {
			{
				Start: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC),
				Title: "Evening Headlines",
			},
			{
				Start: time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
				Title: "World Report",
			},
		},
	}
	return domain.NewSnapshot(channels, []string{"News", "Sports"}, guide, time.Now())
}

func newTestService(t *testing.T, at time.Time) *directory.Service {
	t.Helper()
	store := directory.NewStore()
	store.Publish(testSnapshot())
	return directory.NewService(store, fixedClock(at))
}

func TestListChannels(t *testing.T) {
	svc := newTestService(t, time.Now())

	tests := []struct {
		name    string
		genre   string
		wantIDs []string
	}{
		{name: "sentinel All returns everything in snapshot order", genre: "All", wantIDs: []string{"channel-0", "channel-1", "channel-2"}},
		{name: "empty filter returns everything", genre: "", wantIDs: []string{"channel-0", "channel-1", "channel-2"}},
		{name: "category filter preserves relative order", genre: "News", wantIDs: []string{"channel-0", "channel-2"}},
		{name: "single-channel category", genre: "Sports", wantIDs: []string{"channel-1"}},
		{name: "absent category yields empty list", genre: "Movies", wantIDs: []string{}},
		{name: "filter is case-sensitive", genre: "news", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ListChannels(tt.genre)
			ids := make([]string, 0, len(got))
			for _, summary := range got {
				ids = append(ids, summary.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ListChannels(%q) ids = %v, want %v", tt.genre, ids, tt.wantIDs)
			}
		})
	}
}

func TestListChannelsSummaryFields(t *testing.T) {
	svc := newTestService(t, time.Now())

	got := svc.ListChannels("Sports")
	if len(got) != 1 {
		t.Fatalf("ListChannels(Sports) = %d rows, want 1", len(got))
	}

	row := got[0]
	if row.Name != "Sports One" {
		t.Errorf("Name = %q", row.Name)
	}
	if row.Description != "Category: Sports" {
		t.Errorf("Description = %q", row.Description)
	}
	if row.Poster != "https://source.unsplash.com/1600x900/?Sports" {
		t.Errorf("Poster = %q", row.Poster)
	}
}

func TestListChannelsIsReadOnly(t *testing.T) {
	svc := newTestService(t, time.Now())

	first := svc.ListChannels("All")
	second := svc.ListChannels("All")

	// Two reads with no intervening publish return identical results.
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reads differ: %v vs %v", first, second)
	}
}

func TestListChannelsEmptyDirectory(t *testing.T) {
	svc := directory.NewService(directory.NewStore(), nil)

	if got := svc.ListChannels("All"); len(got) != 0 {
		t.Errorf("ListChannels on empty directory = %v, want empty", got)
	}
}

func TestDescribeStream(t *testing.T) {
	svc := newTestService(t, time.Now())

	tests := []struct {
		name          string
		channelID     string
		wantOK        bool
		wantMediaType string
	}{
		{name: "hls stream", channelID: "channel-0", wantOK: true, wantMediaType: domain.MediaTypeHLS},
		{name: "transport stream", channelID: "channel-1", wantOK: true, wantMediaType: domain.MediaTypeTS},
		{name: "mp4 stream", channelID: "channel-2", wantOK: true, wantMediaType: domain.MediaTypeMP4},
		{name: "unknown channel", channelID: "channel-99", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := svc.DescribeStream(tt.channelID)
			if ok != tt.wantOK {
				t.Fatalf("DescribeStream(%q) ok = %v, want %v", tt.channelID, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if info.MediaType != tt.wantMediaType {
				t.Errorf("MediaType = %q, want %q", info.MediaType, tt.wantMediaType)
			}
		})
	}
}

func TestDescribeStreamHeaders(t *testing.T) {
	svc := newTestService(t, time.Now())

	info, ok := svc.DescribeStream("channel-0")
	if !ok {
		t.Fatal("DescribeStream miss")
	}

	want := map[string]string{
		"User-Agent":      "Mozilla/5.0",
		"Accept":          "*/*",
		"Accept-Encoding": "gzip, deflate, br",
		"Accept-Language": "en-US,en;q=0.9",
		"Range":           "bytes=0-",
	}
	if !reflect.DeepEqual(info.Headers, want) {
		t.Errorf("Headers = %v, want %v", info.Headers, want)
	}

	// Mutating a returned header map must not leak into later reads.
	info.Headers["User-Agent"] = "mutated"
	again, _ := svc.DescribeStream("channel-0")
	if again.Headers["User-Agent"] != "Mozilla/5.0" {
		t.Error("header mutation leaked into a later read")
	}
}

func TestDescribeChannel(t *testing.T) {
	during := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)
	lastEntry := time.Date(2024, 3, 1, 19, 30, 0, 0, time.UTC)
	offAir := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		at              time.Time
		channelID       string
		wantName        string
		wantDescription string
	}{
		{
			name:            "now and next",
			at:              during,
			channelID:       "channel-0",
			wantName:        "News 24",
			wantDescription: "Evening Headlines → World Report",
		},
		{
			name:            "last programme has no next",
			at:              lastEntry,
			channelID:       "channel-0",
			wantName:        "News 24",
			wantDescription: "World Report",
		},
		{
			name:            "no programme airing",
			at:              offAir,
			channelID:       "channel-0",
			wantName:        "News 24",
			wantDescription: "No EPG",
		},
		{
			name:            "channel without guide data",
			at:              during,
			channelID:       "channel-1",
			wantName:        "Sports One",
			wantDescription: "No EPG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.at)
			meta := svc.DescribeChannel(tt.channelID)
			if meta.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", meta.Name, tt.wantName)
			}
			if meta.Description != tt.wantDescription {
				t.Errorf("Description = %q, want %q", meta.Description, tt.wantDescription)
			}
		})
	}
}

func TestDescribeChannelUnknown(t *testing.T) {
	svc := newTestService(t, time.Now())

	meta := svc.DescribeChannel("channel-99")
	if meta.ID != "channel-99" || meta.Name != "Unknown" {
		t.Errorf("DescribeChannel(unknown) = %+v, want minimal Unknown result", meta)
	}
}

func TestGenres(t *testing.T) {
	svc := newTestService(t, time.Now())

	want := []string{"All", "News", "Sports"}
	if got := svc.Genres(); !reflect.DeepEqual(got, want) {
		t.Errorf("Genres() = %v, want %v", got, want)
	}

	empty := directory.NewService(directory.NewStore(), nil)
	if got := empty.Genres(); !reflect.DeepEqual(got, []string{"All"}) {
		t.Errorf("Genres() on empty directory = %v, want [All]", got)
	}
}
