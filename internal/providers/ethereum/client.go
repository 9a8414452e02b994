package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-opportunities/internal/adapter"
	"github.com/feral-file/ff-opportunities/internal/block"
	"github.com/feral-file/ff-opportunities/internal/domain"
)

const PROVIDER_NAME = "ethereum_rpc"

// Client reads account state over JSON-RPC
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=Client=MockEthereumClient
type Client interface {
	// FetchLatestBlock returns the chain head
	FetchLatestBlock(ctx context.Context) (block.BlockInfo, error)

	// TxCountSince returns the number of transactions sent by address after fromBlock,
	// derived from the nonce difference
	TxCountSince(ctx context.Context, address string, fromBlock uint64) (int, error)

	// NativeBalance returns the latest native balance of address in wei
	NativeBalance(ctx context.Context, address string) (*big.Int, error)

	// Close closes the connection
	Close()
}

type ethereumClient struct {
	chain  domain.Chain
	client adapter.EthClient
}

// NewClient creates a JSON-RPC backed client for chain
func NewClient(chain domain.Chain, client adapter.EthClient) Client {
	return &ethereumClient{chain: chain, client: client}
}

// Dial connects to rpcURL and returns a client; an empty URL means the provider is not configured
func Dial(ctx context.Context, dialer adapter.EthClientDialer, chain domain.Chain, rpcURL string) (Client, error) {
	if rpcURL == "" {
		return nil, domain.ErrProviderUnconfigured
	}
	ec, err := dialer.Dial(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s rpc: %w", chain, err)
	}
	return NewClient(chain, ec), nil
}

// FetchLatestBlock returns the chain head
func (c *ethereumClient) FetchLatestBlock(ctx context.Context) (block.BlockInfo, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return block.BlockInfo{}, wrapRPCError(ctx, "failed to get latest header", err)
	}
	return block.BlockInfo{
		Number:    header.Number.Uint64(),
		Timestamp: time.Unix(int64(header.Time), 0).UTC(), //nolint:gosec,G115
	}, nil
}

// TxCountSince returns nonce(latest) - nonce(fromBlock)
func (c *ethereumClient) TxCountSince(ctx context.Context, address string, fromBlock uint64) (int, error) {
	account := common.HexToAddress(address)

	latest, err := c.client.NonceAt(ctx, account, nil)
	if err != nil {
		return 0, wrapRPCError(ctx, "failed to get latest nonce", err)
	}
	past, err := c.client.NonceAt(ctx, account, new(big.Int).SetUint64(fromBlock))
	if err != nil {
		return 0, wrapRPCError(ctx, fmt.Sprintf("failed to get nonce at block %d", fromBlock), err)
	}

	if latest < past {
		return 0, fmt.Errorf("%w: nonce decreased from %d to %d", domain.ErrDataIntegrity, past, latest)
	}
	return int(latest - past), nil //nolint:gosec,G115
}

// NativeBalance returns the latest native balance in wei
func (c *ethereumClient) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	balance, err := c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, wrapRPCError(ctx, "failed to get balance", err)
	}
	return balance, nil
}

// Close closes the connection
func (c *ethereumClient) Close() {
	c.client.Close()
}

// wrapRPCError marks deadline and cancellation failures as transient
func wrapRPCError(ctx context.Context, msg string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w: %w", msg, domain.ErrProviderTransient, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
