package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kindred/internal/config"
	"github.com/mauv0809/kindred/internal/dating"
	"github.com/mauv0809/kindred/internal/database"
	"github.com/mauv0809/kindred/internal/dedup"
	"github.com/mauv0809/kindred/internal/detector"
	"github.com/mauv0809/kindred/internal/dispatcher"
	server "github.com/mauv0809/kindred/internal/http"
	"github.com/mauv0809/kindred/internal/metrics"
	"github.com/mauv0809/kindred/internal/notifier"
	"github.com/mauv0809/kindred/internal/notifier/fcm"
	"github.com/mauv0809/kindred/internal/notifier/onesignal"
	"github.com/mauv0809/kindred/internal/notifier/slack"
	"github.com/mauv0809/kindred/internal/pubsub"
	"github.com/mauv0809/kindred/internal/router"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := dating.New(db)
	counters := metrics.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	pusher, err := newPusher(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize push provider: %s", err)
	}
	guard, closeGuard := newGuard(ctx, cfg)
	defer closeGuard()

	events := router.New(
		detector.New(store, metricsSvc),
		dispatcher.New(store, pusher, guard, metricsSvc),
		counters,
	)
	s := server.NewServer(store, counters, metricsHandler, events)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server or the consumer
	serverErrors := make(chan error, 2)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	if cfg.Events.Subscription != "" {
		client, err := pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer client.Close()
		go func() {
			serverErrors <- client.Consume(ctx, cfg.Events.Subscription, router.PullHandler(events))
		}()
	}

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
	}

	// Stop the consumer before the server so in-flight pulls are nacked.
	stop()

	// Create a context with a timeout for the shutdown.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt to gracefully shut down the server.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	} else {
		log.Info("Server gracefully stopped")
	}

	log.Info("Server process shutting down")
}

func newPusher(ctx context.Context, cfg config.Config) (notifier.Pusher, error) {
	log.Info("Using push provider", "provider", cfg.Push.Provider)
	switch cfg.Push.Provider {
	case config.ProviderFCM:
		return fcm.New(ctx, cfg.ProjectID, cfg.Push.FCMCredentialsFile)
	case config.ProviderOneSignal:
		return onesignal.New(cfg.Push.OneSignal.AppID, cfg.Push.OneSignal.APIKey), nil
	case config.ProviderSlack:
		return slack.NewNotifier(cfg.Push.Slack.Token, cfg.Push.Slack.ChannelID), nil
	default:
		return nil, fmt.Errorf("unknown push provider %q", cfg.Push.Provider)
	}
}

// newGuard returns the Redis de-duplication guard when configured, else a no-op.
func newGuard(ctx context.Context, cfg config.Config) (dedup.Guard, func()) {
	if cfg.Redis.URL == "" {
		log.Info("REDIS_URL not set. Push de-duplication disabled.")
		return dedup.Noop{}, func() {}
	}
	client, err := dedup.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %s", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis is not reachable yet. Pushes will be sent without de-duplication until it is.", "error", err)
	}
	return dedup.NewRedis(client, cfg.Redis.TTL), func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close redis client", "error", err)
		}
	}
}
