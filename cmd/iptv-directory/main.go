package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.etcd.io/bbolt"

	"github.com/shanny/iptv-directory/cache"
	"github.com/shanny/iptv-directory/config"
	"github.com/shanny/iptv-directory/directory"
	"github.com/shanny/iptv-directory/fetcher"
	"github.com/shanny/iptv-directory/handlers"
	"github.com/shanny/iptv-directory/logger"
	"github.com/shanny/iptv-directory/scheduler"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("iptv-directory failed to start: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = logg.Sync() }()

	logg.Info("starting iptv-directory",
		logger.String("port", cfg.Port),
		logger.Duration("refresh_interval", cfg.RefreshInterval),
		logger.String("cache_path", cfg.CachePath),
	)
	if cfg.M3UURL == "" {
		logg.Warn("no playlist url configured, the directory will stay empty")
	}
	if cfg.EPGURL == "" {
		logg.Warn("no guide url configured, channels will have no programme data")
	}

	db, err := bbolt.Open(cfg.CachePath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("opening cache database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logg.Error("closing cache database", logger.Error(err))
		}
	}()

	storage, err := cache.NewBoltStorage(db)
	if err != nil {
		return fmt.Errorf("initializing cache storage: %w", err)
	}

	fetch := fetcher.New(cfg.FetchTimeout, storage, cfg.CacheTTL, logg)
	store := directory.NewStore()
	service := directory.NewService(store, nil)

	refresher := scheduler.NewRefresher(fetch, store, logg, scheduler.RefresherOptions{
		M3UURL:                  cfg.M3UURL,
		EPGURL:                  cfg.EPGURL,
		Interval:                cfg.RefreshInterval,
		BreakerFailureThreshold: cfg.BreakerFailureThreshold,
		BreakerTimeout:          cfg.BreakerTimeout,
	})

	keepalive := scheduler.NewKeepalive(cfg.PingURL, cfg.PingInterval, cfg.FetchTimeout, logg)

	router := handlers.NewRouter(handlers.Dependencies{
		Service:   service,
		Store:     store,
		Logger:    logg,
		StartTime: time.Now(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher.Start(ctx)
	keepalive.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		logg.Info("http server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logg.Info("shutting down")
	case err := <-errCh:
		return err
	}

	refresher.Stop()
	keepalive.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stopping http server: %w", err)
	}

	logg.Info("stopped cleanly")
	return nil
}
