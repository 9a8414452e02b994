package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-opportunities/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m"
}

// RedisConfig holds redis configuration shared by the cache tiers and the rate limiter
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// EthereumConfig holds Ethereum JSON-RPC configuration
type EthereumConfig struct {
	RPCURL string       `mapstructure:"rpc_url"`
	Chain  domain.Chain `mapstructure:"chain"`
}

// ProvidersConfig holds the indexed-data provider configuration for wallet signals
type ProvidersConfig struct {
	AlchemyURL    string        `mapstructure:"alchemy_url"`
	AlchemyAPIKey string        `mapstructure:"alchemy_api_key"`
	MoralisURL    string        `mapstructure:"moralis_url"`
	MoralisAPIKey string        `mapstructure:"moralis_api_key"`
	CallTimeout   time.Duration `mapstructure:"call_timeout"`
}

// SourcesConfig holds opportunity feed configuration
type SourcesConfig struct {
	DefiLlamaURL    string        `mapstructure:"defillama_url"`
	DefiLlamaMinTVL float64       `mapstructure:"defillama_min_tvl"`
	GalxeURL        string        `mapstructure:"galxe_url"`
	Layer3URL       string        `mapstructure:"layer3_url"`
	Layer3APIKey    string        `mapstructure:"layer3_api_key"`
	CuratedPath     string        `mapstructure:"curated_path"`
	MaxPages        int           `mapstructure:"max_pages"`
	PageDelay       time.Duration `mapstructure:"page_delay"`
}

// RateLimitConfig holds the request budget of a single provider
type RateLimitConfig struct {
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxQueueTime      time.Duration `mapstructure:"max_queue_time"`
}

// RateLimiterConfig holds the rate limiting proxy configuration
type RateLimiterConfig struct {
	RedisKeyPrefix          string                     `mapstructure:"redis_key_prefix"`
	MaxWorkers              int                        `mapstructure:"max_workers"`
	MaxQueueSize            int                        `mapstructure:"max_queue_size"`
	EnableLocalFallback     bool                       `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64                    `mapstructure:"local_fallback_multiplier"`
	Providers               map[string]RateLimitConfig `mapstructure:"providers"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// RequestTimeout bounds the personalization work of one request, in seconds
	RequestTimeout int `mapstructure:"request_timeout"`
}

// AuthConfig holds authentication configuration for the sync trigger
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// PipelineConfig bounds the per-request personalization work
type PipelineConfig struct {
	PreselectLimit int `mapstructure:"preselect_limit"`
	EvaluateLimit  int `mapstructure:"evaluate_limit"`
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Ethereum    EthereumConfig    `mapstructure:"ethereum"`
	Providers   ProvidersConfig   `mapstructure:"providers"`
	Sources     SourcesConfig     `mapstructure:"sources"`
	RateLimiter RateLimiterConfig `mapstructure:"rate_limiter"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline"`
}

// SyncerConfig holds configuration for the scheduled source syncer
type SyncerConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Sources     SourcesConfig     `mapstructure:"sources"`
	RateLimiter RateLimiterConfig `mapstructure:"rate_limiter"`
	Interval    time.Duration     `mapstructure:"interval"`
	SourceIDs   []string          `mapstructure:"source_ids"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.request_timeout", 10)
	v.SetDefault("ethereum.chain", string(domain.ChainEthereum))
	v.SetDefault("providers.alchemy_url", "https://eth-mainnet.g.alchemy.com/v2")
	v.SetDefault("providers.moralis_url", "https://deep-index.moralis.io/api/v2.2")
	v.SetDefault("providers.call_timeout", domain.PROVIDER_CALL_TIMEOUT)
	v.SetDefault("pipeline.preselect_limit", domain.PRESELECT_LIMIT)
	v.SetDefault("pipeline.evaluate_limit", domain.EVALUATE_LIMIT)
	v.SetDefault("pipeline.worker_pool_size", domain.WORKER_POOL_SIZE)

	var cfg APIConfig
	if err := readAndUnmarshal(v, configFile, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSyncerConfig loads configuration for the scheduled source syncer
func LoadSyncerConfig(configFile string, envPath string) (*SyncerConfig, error) {
	v := configureViper("syncer", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("interval", "10m")
	v.SetDefault("source_ids", []string{
		string(domain.SourceDefiLlama),
		string(domain.SourceGalxe),
		string(domain.SourceLayer3),
		string(domain.SourceCurated),
	})

	var cfg SyncerConfig
	if err := readAndUnmarshal(v, configFile, &cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("interval must be positive")
	}

	return &cfg, nil
}

// setCommonDefaults sets the defaults shared by every service
func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("redis.key_prefix", "ff:opportunities:")
	v.SetDefault("nats.stream_name", "OPPORTUNITY_EVENTS")
	v.SetDefault("nats.subject_prefix", "opportunities.synced")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("sources.defillama_url", "https://yields.llama.fi")
	v.SetDefault("sources.defillama_min_tvl", 1_000_000)
	v.SetDefault("sources.galxe_url", "https://graphigo.prd.galaxy.eco/query")
	v.SetDefault("sources.layer3_url", "https://api.layer3.xyz")
	v.SetDefault("sources.curated_path", "config/curated.json")
	v.SetDefault("sources.max_pages", 5)
	v.SetDefault("sources.page_delay", "250ms")
	v.SetDefault("rate_limiter.redis_key_prefix", "ff:opportunities:limiter:")
	v.SetDefault("rate_limiter.max_workers", 32)
	v.SetDefault("rate_limiter.max_queue_size", 1024)
	v.SetDefault("rate_limiter.enable_local_fallback", true)
	v.SetDefault("rate_limiter.local_fallback_multiplier", 0.5)
	v.SetDefault("rate_limiter.providers", map[string]any{
		"alchemy":   providerBudget(25, 25, "5s"),
		"moralis":   providerBudget(10, 10, "5s"),
		"defillama": providerBudget(5, 5, "1m"),
		"galxe":     providerBudget(5, 5, "1m"),
		"layer3":    providerBudget(5, 5, "1m"),
	})
}

func providerBudget(rps, burst int, maxQueueTime string) map[string]any {
	return map[string]any{
		"requests_per_second": rps,
		"burst":               burst,
		"max_queue_time":      maxQueueTime,
	}
}

// readAndUnmarshal reads the config file, tolerating a missing default-location file
func readAndUnmarshal(v *viper.Viper, configFile string, out any) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// no config file, environment only
		case configFile != "" && errors.Is(err, os.ErrNotExist):
			// explicit file absent, environment only
		default:
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_OPPORTUNITIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"redis.key_prefix",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain",
		// Providers
		"providers.alchemy_url",
		"providers.alchemy_api_key",
		"providers.moralis_url",
		"providers.moralis_api_key",
		"providers.call_timeout",
		// Sources
		"sources.defillama_url",
		"sources.defillama_min_tvl",
		"sources.galxe_url",
		"sources.layer3_url",
		"sources.layer3_api_key",
		"sources.curated_path",
		"sources.max_pages",
		"sources.page_delay",
		// Rate limiter
		"rate_limiter.redis_key_prefix",
		"rate_limiter.max_workers",
		"rate_limiter.max_queue_size",
		"rate_limiter.enable_local_fallback",
		"rate_limiter.local_fallback_multiplier",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.request_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Pipeline
		"pipeline.preselect_limit",
		"pipeline.evaluate_limit",
		"pipeline.worker_pool_size",
		// Syncer
		"interval",
		"source_ids",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
