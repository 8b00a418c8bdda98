package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

const (
	// DefaultCreateConfirmationDelay is the simulated settlement latency of a new batch.
	DefaultCreateConfirmationDelay = 2 * time.Second
	// DefaultUpdateConfirmationDelay is the simulated settlement latency of an edit.
	DefaultUpdateConfirmationDelay = 1500 * time.Millisecond
)

// Service orchestrates the inventory record store use cases.
type Service struct {
	repo          ports.Repository
	confirmations ports.ConfirmationScheduler
	ledger        ports.LedgerClient
	events        ports.EventPublisher
	logger        *slog.Logger
	now           func() time.Time
	newID         func() string
	createDelay   time.Duration
	updateDelay   time.Duration
}

// Option customises the service.
type Option func(*Service)

// WithConfirmationScheduler sets the scheduler running delayed ledger settlements.
func WithConfirmationScheduler(scheduler ports.ConfirmationScheduler) Option {
	return func(s *Service) {
		if scheduler != nil {
			s.confirmations = scheduler
		}
	}
}

// WithLedgerClient sets the RPC stand-in touched before every settlement.
func WithLedgerClient(client ports.LedgerClient) Option {
	return func(s *Service) { s.ledger = client }
}

// WithEventPublisher sets the sink for domain events.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithLogger sets the logger used for best-effort side effects.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides batch id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithConfirmationDelays overrides the simulated settlement latencies. Non-positive values keep the defaults.
func WithConfirmationDelays(create, update time.Duration) Option {
	return func(s *Service) {
		if create > 0 {
			s.createDelay = create
		}
		if update > 0 {
			s.updateDelay = update
		}
	}
}

// NewService wires the inventory service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		confirmations: ports.NoopConfirmationScheduler,
		events:        ports.NoopEventPublisher,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:           time.Now,
		newID:         NewMedicineID,
		createDelay:   DefaultCreateConfirmationDelay,
		updateDelay:   DefaultUpdateConfirmationDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewMedicineID returns an opaque batch identifier.
func NewMedicineID() string {
	return "mdc-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Create registers a new batch and schedules its ledger confirmation.
func (s *Service) Create(ctx context.Context, input types.CreateMedicineInput) (*types.MedicineProjection, error) {
	now := s.now()
	medicine, err := domain.NewMedicine(s.newID(), domain.Details{
		Name:              input.Name,
		Manufacturer:      input.Manufacturer,
		BatchNo:           input.BatchNo,
		Description:       input.Description,
		MfgDate:           input.MfgDate,
		ExpDate:           input.ExpDate,
		Quantity:          input.Quantity,
		Price:             input.Price,
		SupplyChainStatus: domain.SupplyChainStatus(input.SupplyChainStatus),
	}, now)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, medicine)
	if err != nil {
		return nil, mapError(err)
	}
	s.schedule(ctx, saved.Entity, s.createDelay)
	s.events.Publish(ctx, domain.MedicineCreated{
		BaseEvent:  domain.BaseEvent{Timestamp: now},
		MedicineID: saved.Entity.ID,
		Name:       saved.Entity.Name,
		Quantity:   saved.Entity.Quantity,
	})
	return saved, nil
}

// Update merges a partial edit. An edit that changes nothing returns the stored batch untouched.
func (s *Service) Update(ctx context.Context, input types.UpdateMedicineInput) (*types.MedicineProjection, error) {
	current, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	now := s.now()
	medicine := current.Entity
	changed, err := medicine.Apply(toPatch(input), now)
	if err != nil {
		return nil, mapError(err)
	}
	if !changed {
		return current, nil
	}
	saved, err := s.repo.Save(ctx, medicine)
	if err != nil {
		return nil, mapError(err)
	}
	s.schedule(ctx, saved.Entity, s.updateDelay)
	s.events.Publish(ctx, domain.MedicineUpdated{
		BaseEvent:   domain.BaseEvent{Timestamp: now},
		MedicineID:  saved.Entity.ID,
		Changes:     lastChanges(saved.Entity),
		StockStatus: saved.Entity.StockStatus(),
		Generation:  saved.Entity.Generation,
	})
	return saved, nil
}

// Approve makes a pending batch customer-visible. Approving twice is a no-op.
// The write leaves the ledger flag and generation alone, so approval never re-enters ledger pending.
func (s *Service) Approve(ctx context.Context, input types.MedicineIdentifier) (*types.MedicineProjection, error) {
	now := s.now()
	saved, changed, err := s.repo.MarkApproved(ctx, input.ID, now)
	if err != nil {
		return nil, mapError(err)
	}
	if changed {
		s.events.Publish(ctx, domain.MedicineApproved{BaseEvent: domain.BaseEvent{Timestamp: now}, MedicineID: saved.Entity.ID})
	}
	return saved, nil
}

// Delete removes a batch from the local view and cancels its pending confirmation.
func (s *Service) Delete(ctx context.Context, input types.MedicineIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	if err := s.confirmations.Cancel(ctx, input.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to cancel ledger confirmation", slog.String("medicine.id", input.ID), slog.String("error", err.Error()))
	}
	s.events.Publish(ctx, domain.MedicineDeleted{BaseEvent: domain.BaseEvent{Timestamp: s.now()}, MedicineID: input.ID})
	return nil
}

// Get loads a single batch.
func (s *Service) Get(ctx context.Context, input types.MedicineIdentifier) (*types.MedicineProjection, error) {
	result, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]*types.MedicineProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindByListingStatus filters the catalog; no statuses means the customer-visible catalog.
func (s *Service) FindByListingStatus(ctx context.Context, input types.FindByListingStatusInput) ([]*types.MedicineProjection, error) {
	statuses := make([]domain.ListingStatus, 0, len(input.Statuses))
	for _, raw := range input.Statuses {
		status, err := domain.ParseListingStatus(raw)
		if err != nil {
			return nil, mapError(err)
		}
		statuses = append(statuses, status)
	}
	if len(statuses) == 0 {
		statuses = []domain.ListingStatus{domain.ListingApproved}
	}
	result, err := s.repo.FindByListingStatus(ctx, statuses)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// ConfirmLedger applies a scheduled settlement. Stale or deleted targets yield
// ports.ErrStaleConfirmation or ports.ErrNotFound and change nothing.
func (s *Service) ConfirmLedger(ctx context.Context, input types.LedgerConfirmationInput) (*types.MedicineProjection, error) {
	if s.ledger != nil {
		if _, err := s.ledger.LatestHandshake(ctx); err != nil {
			return nil, fmt.Errorf("ledger handshake: %w", err)
		}
	}
	saved, err := s.repo.MarkConfirmed(ctx, input.MedicineID, input.Generation)
	if err != nil {
		return nil, mapError(err)
	}
	s.events.Publish(ctx, domain.LedgerConfirmed{
		BaseEvent:  domain.BaseEvent{Timestamp: s.now()},
		MedicineID: input.MedicineID,
		Generation: input.Generation,
	})
	return saved, nil
}

// LedgerHealth performs the ledger reachability check.
func (s *Service) LedgerHealth(ctx context.Context) (*types.LedgerHandshake, error) {
	if s.ledger == nil {
		return nil, ports.ErrLedgerUnavailable
	}
	return s.ledger.LatestHandshake(ctx)
}

// schedule is best effort: a failed schedule leaves the batch pending on the ledger.
func (s *Service) schedule(ctx context.Context, medicine *domain.Medicine, delay time.Duration) {
	request := ports.ConfirmationRequest{MedicineID: medicine.ID, Generation: medicine.Generation, Delay: delay}
	if err := s.confirmations.Schedule(ctx, request); err != nil {
		s.logger.WarnContext(ctx, "failed to schedule ledger confirmation",
			slog.String("medicine.id", medicine.ID),
			slog.Int64("medicine.generation", medicine.Generation),
			slog.String("error", err.Error()))
	}
}

// IsStale reports whether err means a settlement no longer applies.
func IsStale(err error) bool {
	return errors.Is(err, ports.ErrStaleConfirmation) || errors.Is(err, ports.ErrNotFound)
}

func toPatch(input types.UpdateMedicineInput) domain.Patch {
	patch := domain.Patch{
		Name:         input.Name,
		Manufacturer: input.Manufacturer,
		BatchNo:      input.BatchNo,
		Description:  input.Description,
		MfgDate:      input.MfgDate,
		ExpDate:      input.ExpDate,
		Quantity:     input.Quantity,
		Price:        input.Price,
	}
	if input.SupplyChainStatus != nil {
		status := domain.SupplyChainStatus(*input.SupplyChainStatus)
		patch.SupplyChainStatus = &status
	}
	return patch
}

func lastChanges(medicine *domain.Medicine) string {
	if len(medicine.History) == 0 {
		return ""
	}
	return medicine.History[len(medicine.History)-1].Changes
}

var _ ports.Service = (*Service)(nil)
