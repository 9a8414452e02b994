package domain

import "time"

const (
	// Cache tier TTLs
	SIGNALS_TTL              = 5 * time.Minute
	ELIGIBILITY_TTL          = 24 * time.Hour
	ELIGIBILITY_DEGRADED_TTL = time.Hour
	SNAPSHOT_TTL             = 7 * 24 * time.Hour
	SNAPSHOT_DEGRADED_TTL    = time.Hour
	FAST_FEED_TTL            = 10 * time.Minute
	SLOW_FEED_TTL            = time.Hour

	// Provider call budget
	PROVIDER_CALL_TIMEOUT = 3 * time.Second

	// Pipeline bounds
	PRESELECT_LIMIT  = 100
	EVALUATE_LIMIT   = 50
	WORKER_POOL_SIZE = 8

	// Activity window used for tx_count_90d
	TX_COUNT_WINDOW = 90 * 24 * time.Hour

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
