package ports

import (
	"context"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/analytics/domain"
	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	orderstypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
)

// MedicineSource lists every batch regardless of listing status.
type MedicineSource interface {
	List(ctx context.Context) ([]*inventorytypes.MedicineProjection, error)
}

// OrderSource lists every order.
type OrderSource interface {
	List(ctx context.Context) ([]*orderstypes.OrderProjection, error)
}

// Service builds dashboard reports.
type Service interface {
	Report(ctx context.Context) (*domain.Report, error)
}
