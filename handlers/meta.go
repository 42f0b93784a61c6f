package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type metaItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Poster      string `json:"poster,omitempty"`
}

type metaResponse struct {
	Meta metaItem `json:"meta"`
}

// Meta describes one channel including its current and upcoming programme.
func Meta(d Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := chi.URLParam(r, "channelID")

		meta := d.Service.DescribeChannel(channelID)
		writeJSON(w, d.Logger, metaResponse{
			Meta: metaItem{
				ID:          meta.ID,
				Name:        meta.Name,
				Type:        "tv",
				Description: meta.Description,
				Logo:        meta.Logo,
				Poster:      meta.Poster,
			},
		})
	}
}
