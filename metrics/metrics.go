package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChannelsLoaded tracks the number of channels in the published snapshot.
	ChannelsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "iptv_channels_loaded",
		Help: "Number of channels in the published directory snapshot",
	})

	// ProgrammesLoaded tracks the number of guide programmes in the published snapshot.
	ProgrammesLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "iptv_guide_programmes_loaded",
		Help: "Number of programme entries in the published guide",
	})

	// RefreshTotal counts refresh attempts per feed and result.
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_refresh_total",
		Help: "Total number of feed refresh attempts",
	}, []string{"feed", "result"})

	// RefreshDuration observes how long a full refresh tick takes.
	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "iptv_refresh_duration_seconds",
		Help:    "Duration of a full directory refresh tick",
		Buckets: prometheus.DefBuckets,
	})

	// KeepaliveFailures counts failed self-ping attempts.
	KeepaliveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iptv_keepalive_failures_total",
		Help: "Total number of failed keepalive pings",
	})
)

// RecordRefresh increments the refresh counter for a feed with the given
// result ("success", "failure" or "skipped").
func RecordRefresh(feed, result string) {
	RefreshTotal.WithLabelValues(feed, result).Inc()
}
