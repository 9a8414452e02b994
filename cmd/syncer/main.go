package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/config"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/messaging"
	"github.com/feral-file/ff-opportunities/internal/providers/jetstream"
	"github.com/feral-file/ff-opportunities/internal/ratelimit"
	"github.com/feral-file/ff-opportunities/internal/sources"
	"github.com/feral-file/ff-opportunities/internal/store"
	"github.com/feral-file/ff-opportunities/internal/syncer"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	once       = flag.Bool("once", false, "Run a single sync pass and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSyncerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "source-syncer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Opportunities syncer",
		zap.Duration("interval", cfg.Interval),
		zap.Strings("sources", cfg.SourceIDs),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	dataStore := store.NewPGStore(db, adapter.NewCanonicalizer())

	var redisClient adapter.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	rateLimitProxy, err := ratelimit.NewProxy(cfg.RateLimiter, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limit proxy", zap.Error(err))
	}
	defer func() {
		if err := rateLimitProxy.Close(); err != nil {
			logger.Warn("Failed to close rate limit proxy", zap.Error(err))
		}
	}()

	adapters, err := sources.NewAdapters(cfg.Sources, cfg.SourceIDs, sources.Deps{
		HTTP:  adapter.NewHTTPClient(30*time.Second, time.Minute),
		Proxy: rateLimitProxy,
		JSON:  jsonAdapter,
		FS:    adapter.NewFileSystem(),
		Clock: clock,
		Backend: func(def sources.Definition) cache.Backend[sources.Batch] {
			if redisClient == nil {
				return cache.NewMemory[sources.Batch](def.TTL)
			}
			return cache.NewRedis[sources.Batch](redisClient, jsonAdapter, cfg.Redis.KeyPrefix+"source:", def.TTL)
		},
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create source adapters", zap.Error(err))
	}
	if len(adapters) == 0 {
		logger.FatalCtx(ctx, "No configured sources to sync", zap.Strings("sources", cfg.SourceIDs))
	}

	publisher := messaging.NewNopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: "ff-opportunities-syncer",
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	syncService := syncer.NewService(adapters, dataStore, publisher, clock, cfg.Sources.MaxPages)

	if *once {
		runPass(ctx, syncService)
		return
	}

	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		runLoop(ctx, syncService, clock, cfg.Interval)
	}()

	// Wait for interrupt signal to gracefully shutdown the syncer
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	cancel()

	select {
	case <-doneCh:
	case <-time.After(30 * time.Second):
		logger.Warn("Timed out waiting for the running sync pass")
	}

	logger.Info("Syncer stopped")
}

// runLoop syncs immediately and then on every tick until ctx is canceled
func runLoop(ctx context.Context, svc syncer.Service, clock adapter.Clock, interval time.Duration) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		runPass(ctx, svc)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runPass(ctx context.Context, svc syncer.Service) {
	results := svc.SyncAll(ctx)

	records, withErrors := 0, 0
	for _, r := range results {
		records += r.Count
		if len(r.Errors) > 0 {
			withErrors++
		}
	}
	logger.InfoCtx(ctx, "Sync pass completed",
		zap.Int("sources", len(results)),
		zap.Int("records", records),
		zap.Int("sources_with_errors", withErrors),
	)
}
