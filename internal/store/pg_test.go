package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/store/schema"
)

// testDB is nil when neither TEST_DB_HOST nor docker is available
var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Exit(runWithDatabase(m))
}

func runWithDatabase(m *testing.M) int {
	ctx := context.Background()

	dsn, ok := externalDSN()
	if !ok {
		container, err := postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("ff_opportunities_test"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("PostgreSQL container unavailable, database tests will skip: %v\n", err)
			return m.Run()
		}
		defer func() {
			if err := container.Terminate(ctx); err != nil {
				fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
			}
		}()

		if dsn, err = container.ConnectionString(ctx, "sslmode=disable"); err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			return 1
		}
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		return 1
	}
	if err := applySchema(db); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}

	testDB = db
	return m.Run()
}

// externalDSN builds a DSN from TEST_DB_* when an external database is configured
func externalDSN() (string, bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return "", false
	}
	env := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host,
		env("TEST_DB_PORT", "5432"),
		env("TEST_DB_USER", "postgres"),
		env("TEST_DB_PASSWORD", "postgres"),
		env("TEST_DB_NAME", "ff_opportunities_test"),
	), true
}

// applySchema executes db/init_pg_db.sql
func applySchema(db *gorm.DB) error {
	schemaSQL, err := os.ReadFile(filepath.Join("..", "..", "db", "init_pg_db.sql")) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	return db.Exec(string(schemaSQL)).Error
}

// newTxStore returns a store bound to a transaction that is rolled back when the test ends
func newTxStore(t *testing.T) Store {
	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })

	return NewPGStore(tx, adapter.NewCanonicalizer())
}

func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Skip("Test database not available")
	}
	RunStoreTests(t, newTxStore)
}

// TestPostgreSQLStore_ConcurrentSyncs runs outside a transaction so each sync gets its own connection
func TestPostgreSQLStore_ConcurrentSyncs(t *testing.T) {
	if testDB == nil {
		t.Skip("Test database not available")
	}

	batch := []domain.Opportunity{
		buildTestOpportunity(domain.SourceGalxe, "race-g", "Racefield", domain.ChainEthereum),
		buildTestOpportunity(domain.SourceLayer3, "race-l", "Racefield", domain.ChainEthereum),
		buildTestOpportunity(domain.SourceCurated, "race-c", "Racefield", domain.ChainEthereum),
		buildTestOpportunity(domain.SourceGalxe, "race-o", "Raceway", domain.ChainBase),
	}
	keys := []string{batch[0].DedupeKey, batch[3].DedupeKey}
	t.Cleanup(func() {
		testDB.Where("dedupe_key IN ?", keys).Delete(&schema.Opportunity{})
	})

	store := NewPGStore(testDB, adapter.NewCanonicalizer())
	ctx := context.Background()

	const syncs = 8
	var wg sync.WaitGroup
	for i := range syncs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// rotate the batch so syncs disagree on insertion order
			rotated := append(append([]domain.Opportunity{}, batch[i%len(batch):]...), batch[:i%len(batch)]...)
			res, err := store.UpsertOpportunities(ctx, rotated, testNow)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, store.ResolveCanonical(ctx, res.DedupeKeys, testNow))
		}()
	}
	wg.Wait()

	var rows int64
	require.NoError(t, testDB.Model(&schema.Opportunity{}).Where("dedupe_key IN ?", keys).Count(&rows).Error)
	assert.Equal(t, int64(len(batch)), rows)

	for _, key := range keys {
		var canonical []schema.Opportunity
		require.NoError(t, testDB.Where("dedupe_key = ? AND is_canonical", key).Find(&canonical).Error)
		require.Len(t, canonical, 1, key)
	}

	var winner schema.Opportunity
	require.NoError(t, testDB.Where("dedupe_key = ? AND is_canonical", keys[0]).First(&winner).Error)
	assert.Equal(t, "race-c", winner.SourceRef)

	// a later identical sync changes nothing
	res, err := store.UpsertOpportunities(ctx, batch, testNow)
	require.NoError(t, err)
	assert.Equal(t, len(batch), res.Unchanged)
}
