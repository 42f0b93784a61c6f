package handlers

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Channels      int     `json:"channels"`
	Categories    int     `json:"categories"`
	Programmes    int     `json:"programmes"`
	LastRefresh   string  `json:"last_refresh,omitempty"`
}

// Healthz reports liveness plus a summary of the current snapshot. It is
// healthy even before the first refresh completes; the directory is just
// empty then.
func Healthz(d Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := d.Store.Current()

		resp := healthResponse{
			Status:        "ok",
			UptimeSeconds: time.Since(d.StartTime).Seconds(),
			Channels:      len(snapshot.Channels),
			Categories:    len(snapshot.Categories),
			Programmes:    snapshot.Guide.ProgramCount(),
		}
		if !snapshot.FetchedAt.IsZero() {
			resp.LastRefresh = snapshot.FetchedAt.UTC().Format(time.RFC3339)
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, d.Logger, resp)
	}
}
