package moralis

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/ratelimit"
)

const PROVIDER_NAME = "moralis"

// queriedChains are the chains asked about in an active-chains lookup
var queriedChains = []string{"eth", "base", "arbitrum", "optimism", "polygon", "bsc"}

// Client defines the interface for Moralis wallet operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/moralis_client.go -package=mocks -mock_names=Client=MockMoralisClient
type Client interface {
	// ActiveChains returns the chains on which address has at least one transaction
	ActiveChains(ctx context.Context, address string) ([]domain.Chain, error)
}

type activeChainsResponse struct {
	Address      string `json:"address"`
	ActiveChains []struct {
		Chain            string `json:"chain"`
		ChainID          string `json:"chain_id"`
		FirstTransaction *struct {
			BlockTimestamp string `json:"block_timestamp"`
		} `json:"first_transaction"`
	} `json:"active_chains"`
}

// MoralisClient implements Client
type MoralisClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	apiKey         string
	json           adapter.JSON
}

// NewClient creates a new Moralis client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, apiURL string, apiKey string, json adapter.JSON) Client {
	return &MoralisClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         strings.TrimRight(apiURL, "/"),
		apiKey:         apiKey,
		json:           json,
	}
}

// ActiveChains calls /wallets/{address}/chains
func (c *MoralisClient) ActiveChains(ctx context.Context, address string) ([]domain.Chain, error) {
	if c.apiKey == "" || c.apiURL == "" {
		return nil, domain.ErrProviderUnconfigured
	}

	query := url.Values{}
	for _, chain := range queriedChains {
		query.Add("chains", chain)
	}
	reqURL := fmt.Sprintf("%s/wallets/%s/chains?%s", c.apiURL, strings.ToLower(address), query.Encode())
	headers := map[string]string{
		"X-API-Key": c.apiKey,
		"Accept":    "application/json",
	}

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, reqURL, headers)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Moralis API: %w", err)
	}

	var resp activeChainsResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Moralis response: %w", err)
	}

	names := make([]string, 0, len(resp.ActiveChains))
	for _, ac := range resp.ActiveChains {
		// chains with no first transaction are reported but inactive
		if ac.FirstTransaction == nil {
			continue
		}
		names = append(names, ac.Chain)
	}
	return domain.NormalizeChains(names), nil
}
