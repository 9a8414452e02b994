package main

import (
	"context"
	"errors"
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
	"github.com/feral-file/ff-opportunities/internal/api/middleware"
	"github.com/feral-file/ff-opportunities/internal/api/server"
	"github.com/feral-file/ff-opportunities/internal/api/shared/executor"
	"github.com/feral-file/ff-opportunities/internal/block"
	"github.com/feral-file/ff-opportunities/internal/cache"
	"github.com/feral-file/ff-opportunities/internal/config"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/eligibility"
	"github.com/feral-file/ff-opportunities/internal/logger"
	"github.com/feral-file/ff-opportunities/internal/messaging"
	"github.com/feral-file/ff-opportunities/internal/personalize"
	"github.com/feral-file/ff-opportunities/internal/providers/alchemy"
	"github.com/feral-file/ff-opportunities/internal/providers/ethereum"
	"github.com/feral-file/ff-opportunities/internal/providers/jetstream"
	"github.com/feral-file/ff-opportunities/internal/providers/moralis"
	"github.com/feral-file/ff-opportunities/internal/ratelimit"
	"github.com/feral-file/ff-opportunities/internal/signals"
	"github.com/feral-file/ff-opportunities/internal/snapshot"
	"github.com/feral-file/ff-opportunities/internal/sources"
	"github.com/feral-file/ff-opportunities/internal/store"
	"github.com/feral-file/ff-opportunities/internal/syncer"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Opportunities API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	fs := adapter.NewFileSystem()
	dataStore := store.NewPGStore(db, adapter.NewCanonicalizer())

	// Redis backs the shared cache tiers and the distributed rate limiter; without it both stay in process
	var redisClient adapter.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	} else {
		logger.WarnCtx(ctx, "Redis not configured, caches and rate limits are per process")
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

	// Signal lookups run inside a request, so provider calls fail fast instead of retrying
	signalsHTTP := adapter.NewHTTPClient(cfg.Providers.CallTimeout, 0)
	feedHTTP := adapter.NewHTTPClient(30*time.Second, time.Minute)

	// Ethereum JSON-RPC for the chain head, transaction counts and balances
	providers := signals.Providers{}
	chains := map[domain.Chain]snapshot.ChainProviders{}
	rpcClient, err := ethereum.Dial(ctx, adapter.NewEthClientDialer(), cfg.Ethereum.Chain, cfg.Ethereum.RPCURL)
	switch {
	case errors.Is(err, domain.ErrProviderUnconfigured):
		logger.WarnCtx(ctx, "Ethereum RPC not configured, on-chain signals disabled")
	case err != nil:
		logger.FatalCtx(ctx, "Failed to dial ethereum rpc", zap.Error(err))
	default:
		defer rpcClient.Close()
		blocks := block.NewBlockProvider(rpcClient, block.Config{
			TTL:              block.AverageBlockTime(cfg.Ethereum.Chain),
			StaleWindow:      5 * time.Minute,
			AverageBlockTime: block.AverageBlockTime(cfg.Ethereum.Chain),
		}, clock)
		providers.RPC = rpcClient
		providers.Blocks = blocks
		chains[cfg.Ethereum.Chain] = snapshot.ChainProviders{Blocks: blocks}
	}

	if cfg.Providers.AlchemyAPIKey != "" {
		alchemyClient := alchemy.NewClient(signalsHTTP, rateLimitProxy, cfg.Providers.AlchemyURL, cfg.Providers.AlchemyAPIKey, jsonAdapter)
		providers.Alchemy = alchemyClient
		if chain, ok := chains[cfg.Ethereum.Chain]; ok {
			chain.Transfers = alchemyClient
			chains[cfg.Ethereum.Chain] = chain
		}
	}
	if cfg.Providers.MoralisAPIKey != "" {
		providers.Moralis = moralis.NewClient(signalsHTTP, rateLimitProxy, cfg.Providers.MoralisURL, cfg.Providers.MoralisAPIKey, jsonAdapter)
	}

	// Signals follow the shared cache when redis is available
	var signalsBackend cache.Backend[domain.WalletSignals] = cache.NewMemory[domain.WalletSignals](domain.SIGNALS_TTL)
	if redisClient != nil {
		signalsBackend = cache.NewRedis[domain.WalletSignals](redisClient, jsonAdapter, cfg.Redis.KeyPrefix+"signals:", domain.SIGNALS_TTL)
	}
	signalsService := signals.NewService(providers, signals.NewTier(signalsBackend, clock), clock, cfg.Providers.CallTimeout)

	// Eligibility and snapshot results are durable and live in the store
	checker := snapshot.NewChecker(chains, snapshot.NewTiers(
		store.NewBlockHeightBackend(dataStore),
		store.NewHistoricalBackend(dataStore),
		clock,
	), clock)
	engine := eligibility.NewEngine(eligibility.NewTier(store.NewEligibilityBackend(dataStore), clock), checker, clock)

	personalizeService := personalize.NewService(signalsService, engine, dataStore, clock, personalize.Limits{
		PreselectLimit: cfg.Pipeline.PreselectLimit,
		EvaluateLimit:  cfg.Pipeline.EvaluateLimit,
		WorkerPoolSize: cfg.Pipeline.WorkerPoolSize,
	})

	// Source adapters back the manual sync trigger
	adapters, err := sources.NewAdapters(cfg.Sources, nil, sources.Deps{
		HTTP:    feedHTTP,
		Proxy:   rateLimitProxy,
		JSON:    jsonAdapter,
		FS:      fs,
		Clock:   clock,
		Backend: sourceBackend(redisClient, jsonAdapter, cfg.Redis.KeyPrefix),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create source adapters", zap.Error(err))
	}

	publisher := messaging.NewNopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: "ff-opportunities-api",
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	syncService := syncer.NewService(adapters, dataStore, publisher, clock, cfg.Sources.MaxPages)

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, executor.NewExecutor(dataStore, personalizeService, syncService, clock))

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// ctx is canceled by now
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("message", "Server forced to shutdown"))
	}

	logger.Info("API server stopped")
}

// sourceBackend returns the response cache backend of each source, shared through redis when available
func sourceBackend(rc adapter.RedisClient, json adapter.JSON, prefix string) func(sources.Definition) cache.Backend[sources.Batch] {
	return func(def sources.Definition) cache.Backend[sources.Batch] {
		if rc == nil {
			return cache.NewMemory[sources.Batch](def.TTL)
		}
		return cache.NewRedis[sources.Batch](rc, json, prefix+"source:", def.TTL)
	}
}
