// Package solana implements the ledger handshake against a Solana JSON-RPC endpoint.
// Nothing is ever written to the chain; the call only proves the endpoint is reachable.
package solana

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go/rpc"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

// DefaultEndpoint is the public devnet RPC.
const DefaultEndpoint = rpc.DevNet_RPC

const defaultTimeout = 5 * time.Second

var _ ports.LedgerClient = (*Client)(nil)

// Client queries the latest blockhash of a Solana cluster.
type Client struct {
	endpoint string
	rpc      *rpc.Client
	timeout  time.Duration
	now      func() time.Time
}

// Option customises the client.
type Option func(*Client)

// WithTimeout bounds a single handshake.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient dials nothing; connections are made lazily per call.
func NewClient(endpoint string, opts ...Option) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		rpc:      rpc.New(endpoint),
		timeout:  defaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// LatestHandshake performs getLatestBlockhash at finalized commitment.
func (c *Client) LatestHandshake(ctx context.Context) (*types.LedgerHandshake, error) {
	if c == nil || c.rpc == nil {
		return nil, ports.ErrLedgerUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	out, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrLedgerUnavailable, err)
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("%w: empty blockhash response", ports.ErrLedgerUnavailable)
	}
	return &types.LedgerHandshake{
		Endpoint:             c.endpoint,
		Blockhash:            out.Value.Blockhash.String(),
		LastValidBlockHeight: out.Value.LastValidBlockHeight,
		CheckedAt:            c.now().UTC(),
	}, nil
}

// Close releases idle RPC connections.
func (c *Client) Close() error {
	if c == nil || c.rpc == nil {
		return nil
	}
	return c.rpc.Close()
}
