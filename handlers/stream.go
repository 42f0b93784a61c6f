package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type proxyHeaders struct {
	Request map[string]string `json:"request"`
}

type behaviorHints struct {
	NotWebReady  bool         `json:"notWebReady"`
	ProxyHeaders proxyHeaders `json:"proxyHeaders"`
}

type streamItem struct {
	Title         string        `json:"title"`
	URL           string        `json:"url"`
	Type          string        `json:"type"`
	Mimetype      string        `json:"mimetype"`
	BehaviorHints behaviorHints `json:"behaviorHints"`
}

type streamResponse struct {
	Streams []streamItem `json:"streams"`
}

// Stream describes how to play one channel. Unknown channel ids get an empty
// stream list, not an error.
func Stream(d Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := chi.URLParam(r, "channelID")

		info, ok := d.Service.DescribeStream(channelID)
		if !ok {
			writeJSON(w, d.Logger, streamResponse{Streams: []streamItem{}})
			return
		}

		writeJSON(w, d.Logger, streamResponse{
			Streams: []streamItem{{
				Title:    info.Title,
				URL:      info.URL,
				Type:     "url",
				Mimetype: info.MediaType,
				BehaviorHints: behaviorHints{
					NotWebReady:  false,
					ProxyHeaders: proxyHeaders{Request: info.Headers},
				},
			}},
		})
	}
}
