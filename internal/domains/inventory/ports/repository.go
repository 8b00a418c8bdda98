package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("medicine not found")
	// ErrStaleConfirmation is returned when a settlement targets a generation that is no longer current.
	ErrStaleConfirmation = errors.New("ledger confirmation is stale")
)

// Repository persists medicine batches.
type Repository interface {
	Save(ctx context.Context, medicine *domain.Medicine) (*projection.Projection[*domain.Medicine], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Medicine], error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Medicine], error)
	FindByListingStatus(ctx context.Context, statuses []domain.ListingStatus) ([]*projection.Projection[*domain.Medicine], error)
	// MarkConfirmed sets the ledger flag only when the stored generation equals generation.
	// It returns ErrNotFound or ErrStaleConfirmation without writing otherwise.
	MarkConfirmed(ctx context.Context, id string, generation int64) (*projection.Projection[*domain.Medicine], error)
	// MarkApproved approves a pending batch in place, touching only its listing status and history.
	// The boolean is false when the batch was already approved.
	MarkApproved(ctx context.Context, id string, at time.Time) (*projection.Projection[*domain.Medicine], bool, error)
}
