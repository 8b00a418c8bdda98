package ports

import (
	"context"
	"errors"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
)

// ErrLedgerUnavailable is returned when no ledger endpoint is configured.
var ErrLedgerUnavailable = errors.New("ledger rpc endpoint unavailable")

// LedgerClient is the network RPC stand-in for a blockchain endpoint. It only proves reachability.
type LedgerClient interface {
	LatestHandshake(ctx context.Context) (*types.LedgerHandshake, error)
}
