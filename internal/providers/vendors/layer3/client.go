package layer3

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/ratelimit"
)

const PROVIDER_NAME = "layer3"

// Quest is a Layer3 quest or airdrop listing
type Quest struct {
	ID           string             `json:"id"`
	Slug         string             `json:"slug"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Chains       []string           `json:"chains"`
	Tags         []string           `json:"tags"`
	CreatedAt    time.Time          `json:"createdAt"`
	EndsAt       *time.Time         `json:"endsAt"`
	Snapshot     *time.Time         `json:"snapshotAt"`
	Completions  int                `json:"completions"`
	Dapp         *Dapp              `json:"dapp"`
	Requirements *QuestRequirements `json:"requirements"`
}

// Dapp is the application a quest belongs to
type Dapp struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// QuestRequirements are the wallet requirements published with a quest
type QuestRequirements struct {
	MinWalletAgeDays *int     `json:"minWalletAgeDays"`
	MinTxCount       *int     `json:"minTxCount"`
	Tokens           []string `json:"tokens"`
}

// QuestPage is one page of quests
type QuestPage struct {
	Quests  []Quest `json:"quests"`
	HasMore bool    `json:"hasMore"`
}

// Client defines the interface for Layer3 client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../../mocks/layer3_client.go -package=mocks -mock_names=Client=MockLayer3Client
type Client interface {
	// GetQuests fetches one page of active quests; pages start at 1
	GetQuests(ctx context.Context, page int, limit int) (*QuestPage, error)
}

// Layer3Client implements Layer3 client
type Layer3Client struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	apiKey         string
	json           adapter.JSON
}

// NewClient creates a new Layer3 client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, apiURL string, apiKey string, json adapter.JSON) Client {
	return &Layer3Client{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         strings.TrimRight(apiURL, "/"),
		apiKey:         apiKey,
		json:           json,
	}
}

// GetQuests fetches quests from the REST API
func (c *Layer3Client) GetQuests(ctx context.Context, page int, limit int) (*QuestPage, error) {
	query := url.Values{}
	query.Set("status", "active")
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	reqURL := fmt.Sprintf("%s/api/quests?%s", c.apiURL, query.Encode())

	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.apiKey}
	}

	body, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, reqURL, headers)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Layer3 API: %w", err)
	}

	var resp QuestPage
	if err := c.json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Layer3 response: %w", err)
	}

	return &resp, nil
}
