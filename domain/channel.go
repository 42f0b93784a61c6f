package domain

import "strings"

// DefaultCategory is assigned to channels whose playlist entry carries no
// group title.
const DefaultCategory = "Uncategorized"

// Media types derived from a stream URL's file suffix.
const (
	MediaTypeHLS = "application/vnd.apple.mpegurl"
	MediaTypeMP4 = "video/mp4"
	MediaTypeTS  = "video/mp2t"
)

// Channel is one entry of the channel directory. The ID is synthesized from
// the channel's position in the source playlist ("channel-<index>") and is
// therefore only stable as long as the upstream ordering is: a reordered
// playlist reassigns ids on the next refresh.
type Channel struct {
	ID             string
	Name           string
	StreamURL      string
	Logo           string
	Category       string
	GuideChannelID string
}

// MediaType classifies the channel's stream by URL suffix. Anything that is
// neither an HLS playlist nor a progressive MP4 is assumed to be an MPEG
// transport stream.
func (c Channel) MediaType() string {
	switch {
	case strings.HasSuffix(c.StreamURL, ".m3u8"):
		return MediaTypeHLS
	case strings.HasSuffix(c.StreamURL, ".mp4"):
		return MediaTypeMP4
	default:
		return MediaTypeTS
	}
}
