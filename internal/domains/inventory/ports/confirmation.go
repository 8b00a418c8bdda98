package ports

import (
	"context"
	"time"
)

// ConfirmationRequest asks for a delayed ledger settlement of one write.
type ConfirmationRequest struct {
	MedicineID string
	Generation int64
	Delay      time.Duration
}

// ConfirmationScheduler runs delayed ledger settlements. Scheduling a newer generation for the
// same medicine supersedes the pending one.
type ConfirmationScheduler interface {
	Schedule(ctx context.Context, request ConfirmationRequest) error
	Cancel(ctx context.Context, medicineID string) error
}

// NoopConfirmationScheduler leaves every write unconfirmed.
var NoopConfirmationScheduler ConfirmationScheduler = noopScheduler{}

type noopScheduler struct{}

func (noopScheduler) Schedule(context.Context, ConfirmationRequest) error { return nil }
func (noopScheduler) Cancel(context.Context, string) error                { return nil }
