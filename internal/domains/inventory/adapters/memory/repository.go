package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory medicine store used for demos and tests.
type Repository struct {
	mu        sync.RWMutex
	medicines map[string]*storedMedicine
	now       func() time.Time
}

type storedMedicine struct {
	medicine *domain.Medicine
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		medicines: map[string]*storedMedicine{},
		now:       time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a batch, keeping its original creation time.
func (r *Repository) Save(_ context.Context, medicine *domain.Medicine) (*projection.Projection[*domain.Medicine], error) {
	if medicine == nil {
		return nil, errors.New("cannot save nil medicine")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.medicines[medicine.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	stored := &storedMedicine{medicine: medicine.Clone(), metadata: metadata}
	r.medicines[medicine.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a batch if present.
func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Medicine], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.medicines[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a batch.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.medicines[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.medicines, id)
	return nil
}

// List returns every batch ordered by name.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Medicine], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Medicine], 0, len(r.medicines))
	for _, entry := range r.medicines {
		list = append(list, projectionCopy(entry))
	}
	sortByName(list)
	return list, nil
}

// FindByListingStatus returns batches with a matching listing status.
func (r *Repository) FindByListingStatus(_ context.Context, statuses []domain.ListingStatus) ([]*projection.Projection[*domain.Medicine], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := make(map[domain.ListingStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	var list []*projection.Projection[*domain.Medicine]
	for _, entry := range r.medicines {
		if _, ok := set[entry.medicine.ListingStatus]; ok {
			list = append(list, projectionCopy(entry))
		}
	}
	sortByName(list)
	return list, nil
}

// MarkConfirmed flips the ledger flag when the stored generation still matches.
func (r *Repository) MarkConfirmed(_ context.Context, id string, generation int64) (*projection.Projection[*domain.Medicine], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.medicines[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if !entry.medicine.ConfirmLedger(generation) {
		return nil, ports.ErrStaleConfirmation
	}
	entry.metadata.UpdatedAt = r.now()
	return projectionCopy(entry), nil
}

// MarkApproved approves the stored batch under the write lock.
func (r *Repository) MarkApproved(_ context.Context, id string, at time.Time) (*projection.Projection[*domain.Medicine], bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.medicines[id]
	if !ok {
		return nil, false, ports.ErrNotFound
	}
	if !entry.medicine.Approve(at) {
		return projectionCopy(entry), false, nil
	}
	entry.metadata.UpdatedAt = r.now()
	return projectionCopy(entry), true, nil
}

func projectionCopy(entry *storedMedicine) *projection.Projection[*domain.Medicine] {
	return &projection.Projection[*domain.Medicine]{
		Entity:   entry.medicine.Clone(),
		Metadata: entry.metadata,
	}
}

func sortByName(list []*projection.Projection[*domain.Medicine]) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Entity.Name == list[j].Entity.Name {
			return list[i].Entity.ID < list[j].Entity.ID
		}
		return list[i].Entity.Name < list[j].Entity.Name
	})
}
