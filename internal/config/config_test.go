package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  port: 9090
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
redis:
  addr: "localhost:6379"
ethereum:
  rpc_url: "http://localhost:8545"
providers:
  alchemy_api_key: "alchemy-key"
  moralis_api_key: "moralis-key"
  call_timeout: "2s"
auth:
  api_keys: ["k1", "k2"]
rate_limiter:
  providers:
    alchemy:
      requests_per_second: 3
      burst: 6
      max_queue_time: "10s"
pipeline:
  evaluate_limit: 20
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, "http://localhost:8545", cfg.Ethereum.RPCURL)
				assert.Equal(t, "alchemy-key", cfg.Providers.AlchemyAPIKey)
				assert.Equal(t, 2*time.Second, cfg.Providers.CallTimeout)
				assert.Equal(t, []string{"k1", "k2"}, cfg.Auth.APIKeys)
				assert.Equal(t, 20, cfg.Pipeline.EvaluateLimit)

				alchemy, ok := cfg.RateLimiter.Providers["alchemy"]
				require.True(t, ok)
				assert.Equal(t, 3, alchemy.RequestsPerSecond)
				assert.Equal(t, 6, alchemy.Burst)
				assert.Equal(t, 10*time.Second, alchemy.MaxQueueTime)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "ethereum", string(cfg.Ethereum.Chain))
				assert.Equal(t, 3*time.Second, cfg.Providers.CallTimeout)
				assert.Equal(t, 100, cfg.Pipeline.PreselectLimit)
				assert.Equal(t, 50, cfg.Pipeline.EvaluateLimit)
				assert.Equal(t, 8, cfg.Pipeline.WorkerPoolSize)
				assert.Equal(t, 5, cfg.Sources.MaxPages)
				assert.Equal(t, 250*time.Millisecond, cfg.Sources.PageDelay)
				assert.Equal(t, "https://yields.llama.fi", cfg.Sources.DefiLlamaURL)
				assert.True(t, cfg.RateLimiter.EnableLocalFallback)
				assert.Contains(t, cfg.RateLimiter.Providers, "moralis")
			},
		},
		{
			name: "invalid yaml",
			configFile: `
server:
  port: "not-a-port"
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadAPIConfig_MissingFile(t *testing.T) {
	cfg, err := LoadAPIConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadSyncerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *SyncerConfig)
	}{
		{
			name: "defaults",
			configFile: `
database:
  host: localhost
`,
			validate: func(t *testing.T, cfg *SyncerConfig) {
				assert.Equal(t, 10*time.Minute, cfg.Interval)
				assert.Equal(t, []string{"defillama", "galxe", "layer3", "curated"}, cfg.SourceIDs)
				assert.Equal(t, "opportunities.synced", cfg.NATS.SubjectPrefix)
			},
		},
		{
			name: "custom interval and sources",
			configFile: `
database:
  host: localhost
interval: "30m"
source_ids: ["curated"]
`,
			validate: func(t *testing.T, cfg *SyncerConfig) {
				assert.Equal(t, 30*time.Minute, cfg.Interval)
				assert.Equal(t, []string{"curated"}, cfg.SourceIDs)
			},
		},
		{
			name:        "missing database host",
			configFile:  `interval: "5m"`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadSyncerConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadSyncerConfig_EnvOverride(t *testing.T) {
	t.Setenv("FF_OPPORTUNITIES_DATABASE_HOST", "db.internal")
	t.Setenv("FF_OPPORTUNITIES_INTERVAL", "15m")

	cfg, err := LoadSyncerConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 15*time.Minute, cfg.Interval)
}

func TestLoadEnv_Overload(t *testing.T) {
	envDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte("FF_OPPORTUNITIES_DATABASE_HOST=base\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.syncer.local"), []byte("FF_OPPORTUNITIES_DATABASE_HOST=service\n"), 0600))
	t.Setenv("FF_OPPORTUNITIES_DATABASE_HOST", "")

	cfg, err := LoadSyncerConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"), envDir)
	require.NoError(t, err)
	assert.Equal(t, "service", cfg.Database.Host)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "u",
		Password: "p",
		DBName:   "opps",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=opps sslmode=disable", cfg.DSN())
}
