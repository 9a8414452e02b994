package alchemy

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/ratelimit"
)

const PROVIDER_NAME = "alchemy"

// transferCategories are the asset transfer categories that count as wallet activity
var transferCategories = []string{"external", "erc20", "erc721", "erc1155"}

// Transfer is the earliest observed transfer touching an address
type Transfer struct {
	BlockNumber uint64
	Timestamp   time.Time
}

// Client defines the interface for Alchemy transfer-history operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/alchemy_client.go -package=mocks -mock_names=Client=MockAlchemyClient
type Client interface {
	// FirstTransfer returns the earliest transfer from or to address at or before toBlock
	// (nil toBlock means latest). It returns nil when the address has no transfers.
	FirstTransfer(ctx context.Context, address string, toBlock *uint64) (*Transfer, error)
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  []rpcFilter `json:"params"`
}

type rpcFilter struct {
	FromBlock    string   `json:"fromBlock"`
	ToBlock      string   `json:"toBlock"`
	FromAddress  string   `json:"fromAddress,omitempty"`
	ToAddress    string   `json:"toAddress,omitempty"`
	Category     []string `json:"category"`
	Order        string   `json:"order"`
	MaxCount     string   `json:"maxCount"`
	WithMetadata bool     `json:"withMetadata"`
	ExcludeZero  bool     `json:"excludeZeroValue"`
}

type rpcResponse struct {
	Result *struct {
		Transfers []struct {
			BlockNum string `json:"blockNum"`
			Metadata struct {
				BlockTimestamp string `json:"blockTimestamp"`
			} `json:"metadata"`
		} `json:"transfers"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AlchemyClient implements Client over alchemy_getAssetTransfers
type AlchemyClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	apiKey         string
	json           adapter.JSON
}

// NewClient creates a new Alchemy client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, apiURL string, apiKey string, json adapter.JSON) Client {
	return &AlchemyClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         strings.TrimRight(apiURL, "/"),
		apiKey:         apiKey,
		json:           json,
	}
}

// FirstTransfer queries outgoing and incoming transfers and returns the earlier one
func (c *AlchemyClient) FirstTransfer(ctx context.Context, address string, toBlock *uint64) (*Transfer, error) {
	if c.apiKey == "" || c.apiURL == "" {
		return nil, domain.ErrProviderUnconfigured
	}

	to := "latest"
	if toBlock != nil {
		to = "0x" + strconv.FormatUint(*toBlock, 16)
	}

	outgoing, err := c.firstTransfer(ctx, rpcFilter{FromAddress: address, ToBlock: to})
	if err != nil {
		return nil, err
	}
	incoming, err := c.firstTransfer(ctx, rpcFilter{ToAddress: address, ToBlock: to})
	if err != nil {
		return nil, err
	}

	switch {
	case outgoing == nil:
		return incoming, nil
	case incoming == nil:
		return outgoing, nil
	case incoming.BlockNumber < outgoing.BlockNumber:
		return incoming, nil
	default:
		return outgoing, nil
	}
}

func (c *AlchemyClient) firstTransfer(ctx context.Context, filter rpcFilter) (*Transfer, error) {
	filter.FromBlock = "0x0"
	filter.Category = transferCategories
	filter.Order = "asc"
	filter.MaxCount = "0x1"
	filter.WithMetadata = true

	body, err := c.json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "alchemy_getAssetTransfers",
		Params:  []rpcFilter{filter},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.apiURL, c.apiKey)
	headers := map[string]string{"Content-Type": "application/json"}

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.PostBytes(ctx, url, headers, body)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Alchemy API: %w", err)
	}

	var resp rpcResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Alchemy response: %w", err)
	}
	if resp.Error != nil {
		if resp.Error.Code == 429 {
			return nil, fmt.Errorf("%w: alchemy: %s", domain.ErrProviderTransient, resp.Error.Message)
		}
		return nil, fmt.Errorf("alchemy error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Result == nil || len(resp.Result.Transfers) == 0 {
		return nil, nil
	}

	first := resp.Result.Transfers[0]
	blockNumber, err := strconv.ParseUint(strings.TrimPrefix(first.BlockNum, "0x"), 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid block number %q: %w", first.BlockNum, err)
	}
	ts, err := time.Parse(time.RFC3339, first.Metadata.BlockTimestamp)
	if err != nil {
		return nil, fmt.Errorf("invalid block timestamp %q: %w", first.Metadata.BlockTimestamp, err)
	}

	return &Transfer{BlockNumber: blockNumber, Timestamp: ts.UTC()}, nil
}
