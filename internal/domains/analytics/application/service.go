package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/analytics/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/analytics/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

// Service reads both stores and folds them into a report.
type Service struct {
	medicines ports.MedicineSource
	orders    ports.OrderSource
	now       func() time.Time
}

func NewService(medicines ports.MedicineSource, orders ports.OrderSource) *Service {
	return &Service{medicines: medicines, orders: orders, now: time.Now}
}

// WithClock overrides the report timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

var _ ports.Service = (*Service)(nil)

func (s *Service) Report(ctx context.Context) (*domain.Report, error) {
	medicines, err := s.medicines.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	report := domain.Build(projection.Entities(medicines), projection.Entities(orders), s.now())
	return &report, nil
}
