package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shanny/iptv-directory/logger"
)

// NewRouter builds the addon's HTTP router: the Stremio-style resource
// endpoints plus health and metrics.
func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(accessLog(d.Logger))
	r.Use(cors())

	r.Get("/manifest.json", Manifest(d))
	r.Route("/catalog/tv", func(r chi.Router) {
		r.Get("/{catalogID}.json", Catalog(d))
		r.Get("/{catalogID}/{extra}.json", Catalog(d))
	})
	r.Get("/stream/tv/{channelID}.json", Stream(d))
	r.Get("/meta/tv/{channelID}.json", Meta(d))

	r.Get("/healthz", Healthz(d))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// writeJSON encodes v with the addon's standard response headers. Encoding
// failures at this point mean the response is already partially written, so
// they are only logged.
func writeJSON(w http.ResponseWriter, log logger.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encoding response", logger.Error(err))
	}
}
