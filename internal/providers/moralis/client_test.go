package moralis_test

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/domain"
	"github.com/feral-file/ff-opportunities/internal/mocks"
	"github.com/feral-file/ff-opportunities/internal/providers/moralis"
)

func TestActiveChains(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := moralis.NewClient(httpClient, nil, "https://deep-index.moralis.io/api/v2.2", "secret", adapter.NewJSON())

	httpClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), map[string]string{"X-API-Key": "secret", "Accept": "application/json"}).
		DoAndReturn(func(_ context.Context, url string, _ map[string]string) ([]byte, error) {
			assert.True(t, strings.HasPrefix(url, "https://deep-index.moralis.io/api/v2.2/wallets/0xabcdefabcdefabcdefabcdefabcdefabcdefabcd/chains?"))
			assert.Contains(t, url, "chains=eth")
			return []byte(`{
				"address": "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
				"active_chains": [
					{"chain": "eth", "chain_id": "0x1", "first_transaction": {"block_timestamp": "2020-01-01T00:00:00.000Z"}},
					{"chain": "polygon", "chain_id": "0x89", "first_transaction": null},
					{"chain": "base", "chain_id": "0x2105", "first_transaction": {"block_timestamp": "2024-01-01T00:00:00.000Z"}},
					{"chain": "eth", "chain_id": "0x1", "first_transaction": {"block_timestamp": "2020-01-01T00:00:00.000Z"}}
				]
			}`), nil
		})

	got, err := client.ActiveChains(context.Background(), "0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD")
	require.NoError(t, err)
	assert.Equal(t, []domain.Chain{domain.ChainEthereum, domain.ChainBase}, got)
}

func TestActiveChains_Unconfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := moralis.NewClient(mocks.NewMockHTTPClient(ctrl), nil, "https://deep-index.moralis.io/api/v2.2", "", adapter.NewJSON())

	_, err := client.ActiveChains(context.Background(), "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	assert.ErrorIs(t, err, domain.ErrProviderUnconfigured)
}

func TestActiveChains_ServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := moralis.NewClient(httpClient, nil, "https://moralis.test", "secret", adapter.NewJSON())

	httpClient.EXPECT().GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &adapter.StatusError{StatusCode: 503, Body: "unavailable"})

	_, err := client.ActiveChains(context.Background(), "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
}
