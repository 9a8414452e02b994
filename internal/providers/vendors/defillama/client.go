package defillama

import (
	"context"
	"fmt"
	"strings"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/ratelimit"
)

const PROVIDER_NAME = "defillama"

// Pool is one yield pool from the DefiLlama yields API
type Pool struct {
	Pool             string   `json:"pool"`
	Chain            string   `json:"chain"`
	Project          string   `json:"project"`
	Symbol           string   `json:"symbol"`
	TvlUsd           float64  `json:"tvlUsd"`
	Apy              *float64 `json:"apy"`
	ApyBase          *float64 `json:"apyBase"`
	ApyReward        *float64 `json:"apyReward"`
	Stablecoin       bool     `json:"stablecoin"`
	IlRisk           string   `json:"ilRisk"`
	Exposure         string   `json:"exposure"`
	PoolMeta         *string  `json:"poolMeta"`
	RewardTokens     []string `json:"rewardTokens"`
	UnderlyingTokens []string `json:"underlyingTokens"`
}

// PoolsResponse is the /pools response envelope
type PoolsResponse struct {
	Status string `json:"status"`
	Data   []Pool `json:"data"`
}

// Client defines the interface for DefiLlama client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../../mocks/defillama_client.go -package=mocks -mock_names=Client=MockDefiLlamaClient
type Client interface {
	// GetPools fetches every yield pool. The endpoint is not paginated.
	GetPools(ctx context.Context) ([]Pool, error)
}

// DefiLlamaClient implements DefiLlama client
type DefiLlamaClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	json           adapter.JSON
}

// NewClient creates a new DefiLlama client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, apiURL string, json adapter.JSON) Client {
	return &DefiLlamaClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         strings.TrimRight(apiURL, "/"),
		json:           json,
	}
}

// GetPools fetches pools from the yields API
func (c *DefiLlamaClient) GetPools(ctx context.Context) ([]Pool, error) {
	url := c.apiURL + "/pools"

	body, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, url, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call DefiLlama API: %w", err)
	}

	var resp PoolsResponse
	if err := c.json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DefiLlama response: %w", err)
	}
	if resp.Status != "" && resp.Status != "success" {
		return nil, fmt.Errorf("unexpected DefiLlama status: %s", resp.Status)
	}

	return resp.Data, nil
}
