package galxe

import (
	"context"
	"fmt"
	"strings"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/ratelimit"
)

const PROVIDER_NAME = "galxe"

const campaignsQuery = `query Campaigns($input: ListCampaignInput!) {
  campaigns(input: $input) {
    pageInfo {
      endCursor
      hasNextPage
    }
    list {
      id
      name
      description
      type
      status
      chain
      startTime
      endTime
      createdAt
      participantsCount
      space {
        name
        alias
      }
      tags
    }
  }
}`

// Campaign is a Galxe campaign
type Campaign struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Type              string   `json:"type"`
	Status            string   `json:"status"`
	Chain             string   `json:"chain"`
	StartTime         *int64   `json:"startTime"`
	EndTime           *int64   `json:"endTime"`
	CreatedAt         *int64   `json:"createdAt"`
	ParticipantsCount int      `json:"participantsCount"`
	Tags              []string `json:"tags"`
	Space             *Space   `json:"space"`
}

// Space is the project hosting a campaign
type Space struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

// CampaignPage is one cursor page of campaigns
type CampaignPage struct {
	Campaigns   []Campaign
	EndCursor   string
	HasNextPage bool
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// GraphQLResponse represents the campaigns GraphQL response
type GraphQLResponse struct {
	Data struct {
		Campaigns *struct {
			PageInfo struct {
				EndCursor   string `json:"endCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
			List []Campaign `json:"list"`
		} `json:"campaigns"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client defines the interface for Galxe client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../../mocks/galxe_client.go -package=mocks -mock_names=Client=MockGalxeClient
type Client interface {
	// GetCampaigns fetches one page of active campaigns after cursor (empty for the first page)
	GetCampaigns(ctx context.Context, after string, first int) (*CampaignPage, error)
}

// GalxeClient implements Galxe client
type GalxeClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	graphqlURL     string
	json           adapter.JSON
}

// NewClient creates a new Galxe client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, graphqlURL string, json adapter.JSON) Client {
	return &GalxeClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		graphqlURL:     graphqlURL,
		json:           json,
	}
}

// GetCampaigns fetches campaigns using the GraphQL API
func (c *GalxeClient) GetCampaigns(ctx context.Context, after string, first int) (*CampaignPage, error) {
	input := map[string]any{
		"first":    first,
		"statuses": []string{"Active"},
		"listType": "Trending",
	}
	if after != "" {
		input["after"] = after
	}

	requestBody, err := c.json.Marshal(GraphQLRequest{
		Query:         campaignsQuery,
		Variables:     map[string]any{"input": input},
		OperationName: "Campaigns",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	responseBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.PostBytes(ctx, c.graphqlURL, headers, requestBody)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Galxe API: %w", err)
	}

	var response GraphQLResponse
	if err := c.json.Unmarshal(responseBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Galxe response: %w", err)
	}

	if len(response.Errors) > 0 {
		messages := make([]string, len(response.Errors))
		for i, e := range response.Errors {
			messages[i] = e.Message
		}
		return nil, fmt.Errorf("galxe GraphQL errors: %s", strings.Join(messages, "; "))
	}

	if response.Data.Campaigns == nil {
		return &CampaignPage{}, nil
	}

	return &CampaignPage{
		Campaigns:   response.Data.Campaigns.List,
		EndCursor:   response.Data.Campaigns.PageInfo.EndCursor,
		HasNextPage: response.Data.Campaigns.PageInfo.HasNextPage,
	}, nil
}
