package handlers

import "net/http"

const (
	addonID          = "community.iptv-directory"
	addonVersion     = "1.0.0"
	addonName        = "IPTV Directory"
	addonDescription = "IPTV with category filtering and EPG"
	addonLogo        = "https://upload.wikimedia.org/wikipedia/commons/9/99/TV_icon_2.svg"
	catalogID        = "iptv-directory"
)

type manifestExtra struct {
	Name    string   `json:"name"`
	Options []string `json:"options,omitempty"`
}

type manifestCatalog struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Extra []manifestExtra `json:"extra"`
}

type manifestResponse struct {
	ID          string            `json:"id"`
	Version     string            `json:"version"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Logo        string            `json:"logo"`
	Resources   []string          `json:"resources"`
	Types       []string          `json:"types"`
	Catalogs    []manifestCatalog `json:"catalogs"`
	IDPrefixes  []string          `json:"idPrefixes"`
}

// Manifest serves the addon manifest. The genre options are computed per
// request so they always reflect the current snapshot.
func Manifest(d Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.Logger, manifestResponse{
			ID:          addonID,
			Version:     addonVersion,
			Name:        addonName,
			Description: addonDescription,
			Logo:        addonLogo,
			Resources:   []string{"catalog", "stream", "meta"},
			Types:       []string{"tv"},
			Catalogs: []manifestCatalog{{
				Type: "tv",
				ID:   catalogID,
				Name: addonName,
				Extra: []manifestExtra{{
					Name:    "genre",
					Options: d.Service.Genres(),
				}},
			}},
			IDPrefixes: []string{"channel-"},
		})
	}
}
