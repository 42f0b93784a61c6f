package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shanny/iptv-directory/directory"
)

type catalogMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Logo        string `json:"logo,omitempty"`
	Poster      string `json:"poster,omitempty"`
	Background  string `json:"background,omitempty"`
	Description string `json:"description,omitempty"`
	ReleaseInfo string `json:"releaseInfo"`
}

type catalogResponse struct {
	Metas []catalogMeta `json:"metas"`
}

// Catalog lists the channels of the addon's single catalog, optionally
// filtered by the genre extra.
func Catalog(d Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genre := parseGenreExtra(chi.URLParam(r, "extra"))

		channels := d.Service.ListChannels(genre)
		metas := make([]catalogMeta, 0, len(channels))
		for _, ch := range channels {
			metas = append(metas, toCatalogMeta(ch))
		}

		writeJSON(w, d.Logger, catalogResponse{Metas: metas})
	}
}

func toCatalogMeta(ch directory.ChannelSummary) catalogMeta {
	return catalogMeta{
		ID:          ch.ID,
		Name:        ch.Name,
		Type:        "tv",
		Logo:        ch.Logo,
		Poster:      ch.Poster,
		Background:  ch.Background,
		Description: ch.Description,
	}
}

// parseGenreExtra extracts the genre value from the catalog extra path
// segment, which is querystring-encoded ("genre=News&skip=0"). An absent or
// unparseable extra selects everything.
func parseGenreExtra(extra string) string {
	if extra == "" {
		return ""
	}
	values, err := url.ParseQuery(extra)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(values.Get("genre"))
}
