// Package scheduler owns the background tasks: the periodic directory
// refresh and the self-ping keepalive. Both communicate with the query path
// only through the snapshot store.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/shanny/iptv-directory/circuitbreaker"
	"github.com/shanny/iptv-directory/directory"
	"github.com/shanny/iptv-directory/domain"
	"github.com/shanny/iptv-directory/epg"
	"github.com/shanny/iptv-directory/fetcher"
	"github.com/shanny/iptv-directory/logger"
	"github.com/shanny/iptv-directory/metrics"
	"github.com/shanny/iptv-directory/playlist"
)

const (
	feedPlaylist = "playlist"
	feedGuide    = "guide"
)

// RefresherOptions configures a Refresher.
type RefresherOptions struct {
	M3UURL   string
	EPGURL   string
	Interval time.Duration

	// Circuit breaker settings shared by both feeds.
	BreakerFailureThreshold int
	BreakerTimeout          time.Duration
}

// Refresher periodically re-ingests both feeds and publishes a new snapshot.
// A feed failing a tick keeps its last successfully ingested data, so a
// refreshed channel list is published even while the guide upstream is down,
// and vice versa. Failures never propagate past a tick.
type Refresher struct {
	fetch fetcher.Interface
	store *directory.Store
	log   logger.Logger
	opts  RefresherOptions

	playlistBreaker circuitbreaker.CircuitBreaker
	guideBreaker    circuitbreaker.CircuitBreaker

	stopCh   chan struct{}
	inFlight atomic.Bool

	// Last-known-good feed results. Only touched while inFlight is held.
	channels   []domain.Channel
	categories []string
	guide      domain.Guide
	haveData   bool
}

// NewRefresher creates a refresher over the given fetcher and store.
func NewRefresher(fetch fetcher.Interface, store *directory.Store, log logger.Logger, opts RefresherOptions) *Refresher {
	return &Refresher{
		fetch: fetch,
		store: store,
		log:   log,
		opts:  opts,
		playlistBreaker: circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: opts.BreakerFailureThreshold,
			Timeout:          opts.BreakerTimeout,
			Logger:           log,
			Feed:             feedPlaylist,
		}),
		guideBreaker: circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: opts.BreakerFailureThreshold,
			Timeout:          opts.BreakerTimeout,
			Logger:           log,
			Feed:             feedGuide,
		}),
		stopCh: make(chan struct{}),
		guide:  domain.Guide{},
	}
}

// Start runs the initial ingestion, then refreshes on the configured interval
// until Stop is called or the context is canceled.
func (r *Refresher) Start(ctx context.Context) {
	r.Refresh(ctx)

	ticker := time.NewTicker(r.opts.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Refresh(ctx)
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the periodic refresh.
func (r *Refresher) Stop() {
	close(r.stopCh)
}

// Refresh runs one refresh tick. If the previous tick is still in flight the
// tick is skipped, so two publishes never race. Each feed is attempted
// independently; a new snapshot is published only when at least one feed
// produced fresh data this tick.
func (r *Refresher) Refresh(ctx context.Context) {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.log.Warn("previous refresh still running, skipping tick")
		return
	}
	defer r.inFlight.Store(false)

	runID := uuid.NewString()
	start := time.Now()
	defer func() {
		metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	}()

	playlistOK := r.refreshPlaylist(ctx, runID)
	guideOK := r.refreshGuide(ctx, runID)

	if !playlistOK && !guideOK {
		if r.haveData {
			r.log.Warn("refresh produced no fresh data, keeping previous snapshot",
				logger.String("run_id", runID))
		}
		return
	}
	r.haveData = true

	snapshot := domain.NewSnapshot(r.channels, r.categories, r.guide, time.Now())
	r.store.Publish(snapshot)

	metrics.ChannelsLoaded.Set(float64(len(snapshot.Channels)))
	metrics.ProgrammesLoaded.Set(float64(snapshot.Guide.ProgramCount()))

	r.log.Info("published directory snapshot",
		logger.String("run_id", runID),
		logger.Int("channels", len(snapshot.Channels)),
		logger.Int("categories", len(snapshot.Categories)),
		logger.Int("programmes", snapshot.Guide.ProgramCount()),
		logger.Duration("took", time.Since(start)))
}

func (r *Refresher) refreshPlaylist(ctx context.Context, runID string) bool {
	if r.opts.M3UURL == "" {
		return false
	}

	var channels []domain.Channel
	var categories []string
	var fromCache bool

	err := r.playlistBreaker.Execute(func() error {
		raw, cached, err := r.fetch.Fetch(ctx, r.opts.M3UURL)
		if err != nil {
			return err
		}
		fromCache = cached
		channels, categories, err = playlist.Ingest(raw)
		return err
	})
	if err != nil {
		metrics.RecordRefresh(feedPlaylist, "failure")
		r.log.Error("playlist refresh failed",
			logger.String("run_id", runID),
			logger.String("url", r.opts.M3UURL),
			logger.Error(err))
		return false
	}

	r.channels = channels
	r.categories = categories
	metrics.RecordRefresh(feedPlaylist, "success")
	r.log.Info("loaded channels from playlist",
		logger.String("run_id", runID),
		logger.Int("count", len(channels)),
		logger.String("from_cache", boolLabel(fromCache)))
	return true
}

func (r *Refresher) refreshGuide(ctx context.Context, runID string) bool {
	if r.opts.EPGURL == "" {
		return false
	}

	var guide domain.Guide
	var skipped int
	var fromCache bool

	err := r.guideBreaker.Execute(func() error {
		raw, cached, err := r.fetch.Fetch(ctx, r.opts.EPGURL)
		if err != nil {
			return err
		}
		fromCache = cached
		guide, skipped, err = epg.Ingest(raw)
		return err
	})
	if err != nil {
		metrics.RecordRefresh(feedGuide, "failure")
		r.log.Error("guide refresh failed",
			logger.String("run_id", runID),
			logger.String("url", r.opts.EPGURL),
			logger.Error(err))
		return false
	}

	r.guide = guide
	metrics.RecordRefresh(feedGuide, "success")
	if skipped > 0 {
		r.log.Warn("dropped programmes with unparseable timestamps",
			logger.String("run_id", runID),
			logger.Int("count", skipped))
	}
	r.log.Info("loaded guide programmes",
		logger.String("run_id", runID),
		logger.Int("programmes", guide.ProgramCount()),
		logger.Int("guide_channels", len(guide)),
		logger.String("from_cache", boolLabel(fromCache)))
	return true
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
