package confirmation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

// ErrSchedulerClosed is returned when scheduling after Close.
var ErrSchedulerClosed = errors.New("confirmation scheduler closed")

const confirmTimeout = 10 * time.Second

// Confirmer applies a ledger settlement once its delay has elapsed.
type Confirmer interface {
	ConfirmLedger(ctx context.Context, input types.LedgerConfirmationInput) (*types.MedicineProjection, error)
}

var _ ports.ConfirmationScheduler = (*InlineScheduler)(nil)

// InlineScheduler runs settlements on in-process timers. At most one timer is pending per medicine.
type InlineScheduler struct {
	mu        sync.Mutex
	pending   map[string]*pendingConfirmation
	confirmer Confirmer
	logger    *slog.Logger
	closed    bool
	wg        sync.WaitGroup
	baseCtx   context.Context
	cancel    context.CancelFunc
}

type pendingConfirmation struct {
	timer      *time.Timer
	generation int64
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewInlineScheduler builds a timer-backed scheduler. Bind must be called before the first timer fires.
func NewInlineScheduler(logger *slog.Logger) *InlineScheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &InlineScheduler{
		pending: map[string]*pendingConfirmation{},
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Bind attaches the service that applies confirmations.
func (s *InlineScheduler) Bind(confirmer Confirmer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmer = confirmer
}

// Schedule replaces any pending timer for the medicine with one for the new generation.
func (s *InlineScheduler) Schedule(_ context.Context, request ports.ConfirmationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSchedulerClosed
	}
	s.stopLocked(request.MedicineID)

	ctx, cancel := context.WithCancel(s.baseCtx)
	entry := &pendingConfirmation{generation: request.Generation, ctx: ctx, cancel: cancel}
	s.wg.Add(1)
	entry.timer = time.AfterFunc(request.Delay, func() {
		defer s.wg.Done()
		s.fire(request.MedicineID, entry)
	})
	s.pending[request.MedicineID] = entry
	return nil
}

// Cancel drops the pending timer of a medicine, if any.
func (s *InlineScheduler) Cancel(_ context.Context, medicineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(medicineID)
	return nil
}

// Pending reports how many timers have not fired yet.
func (s *InlineScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close stops every pending timer and waits for in-flight confirmations.
func (s *InlineScheduler) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	for id := range s.pending {
		s.stopLocked(id)
	}
	s.mu.Unlock()
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *InlineScheduler) stopLocked(medicineID string) {
	entry, ok := s.pending[medicineID]
	if !ok {
		return
	}
	entry.cancel()
	if entry.timer.Stop() {
		s.wg.Done()
	}
	delete(s.pending, medicineID)
}

func (s *InlineScheduler) fire(medicineID string, entry *pendingConfirmation) {
	defer entry.cancel()
	s.mu.Lock()
	if entry.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	if current, ok := s.pending[medicineID]; ok && current == entry {
		delete(s.pending, medicineID)
	}
	confirmer := s.confirmer
	s.mu.Unlock()

	logger := s.logger.With(slog.String("medicine.id", medicineID), slog.Int64("medicine.generation", entry.generation))
	if confirmer == nil {
		logger.Warn("ledger confirmation fired before scheduler was bound; dropping")
		return
	}
	ctx, cancel := context.WithTimeout(entry.ctx, confirmTimeout)
	defer cancel()
	_, err := confirmer.ConfirmLedger(ctx, types.LedgerConfirmationInput{MedicineID: medicineID, Generation: entry.generation})
	switch {
	case err == nil:
		logger.Debug("ledger confirmation applied")
	case errors.Is(err, ports.ErrStaleConfirmation), errors.Is(err, ports.ErrNotFound):
		logger.Debug("ledger confirmation superseded", slog.String("reason", err.Error()))
	default:
		logger.Warn("ledger confirmation failed", slog.String("error", err.Error()))
	}
}
