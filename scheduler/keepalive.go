package scheduler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shanny/iptv-directory/logger"
	"github.com/shanny/iptv-directory/metrics"
)

// Keepalive periodically pings a target URL so free-tier hosts don't idle the
// process out. It shares no state with the directory: failures are logged and
// counted, nothing else.
type Keepalive struct {
	url      string
	interval time.Duration
	client   *http.Client
	log      logger.Logger
	stopCh   chan struct{}
}

// NewKeepalive creates a keepalive pinger. An empty url disables it.
func NewKeepalive(url string, interval time.Duration, timeout time.Duration, log logger.Logger) *Keepalive {
	return &Keepalive{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: timeout},
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic ping. A disabled keepalive is a no-op.
func (k *Keepalive) Start(ctx context.Context) {
	if k.url == "" {
		k.log.Info("keepalive disabled, no ping url configured")
		return
	}

	ticker := time.NewTicker(k.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				k.Ping(ctx)
			case <-k.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the keepalive.
func (k *Keepalive) Stop() {
	close(k.stopCh)
}

// Ping fires one keepalive request. Fire-and-forget: the response body is
// discarded and any failure is only logged.
func (k *Keepalive) Ping(ctx context.Context) {
	if err := k.ping(ctx); err != nil {
		metrics.KeepaliveFailures.Inc()
		k.log.Warn("keepalive ping failed",
			logger.String("url", k.url),
			logger.Error(err))
		return
	}
	k.log.Debug("keepalive ping sent", logger.String("url", k.url))
}

func (k *Keepalive) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return fmt.Errorf("creating ping request: %w", err)
	}

	resp, err := k.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("ping returned status %d", resp.StatusCode)
	}
	return nil
}
