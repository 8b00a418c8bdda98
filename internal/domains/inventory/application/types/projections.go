package types

import (
	"time"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

// MedicineProjection transports a batch together with its persistence metadata.
type MedicineProjection = projection.Projection[*domain.Medicine]

// LedgerHandshake is the result of the ledger reachability check.
type LedgerHandshake struct {
	Endpoint             string
	Blockhash            string
	LastValidBlockHeight uint64
	CheckedAt            time.Time
}
