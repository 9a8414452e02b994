package constants

const (
	// MAX_CANDIDATES bounds the candidate set read from the store per request
	MAX_CANDIDATES = 1000
	// MAX_WALLET_ACTIONS_PER_REQUEST bounds a batch of recorded wallet actions
	MAX_WALLET_ACTIONS_PER_REQUEST = 50
)
