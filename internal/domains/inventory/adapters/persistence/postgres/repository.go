package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists medicine batches in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&medicineRecord{}); err != nil {
			log.Printf("postgres medicine repository migration failed: %v", err)
		}
	}
	return repo
}

type medicineRecord struct {
	ID                string          `gorm:"primaryKey;column:id;size:64"`
	Name              string          `gorm:"column:name;index"`
	Manufacturer      string          `gorm:"column:manufacturer"`
	BatchNo           string          `gorm:"column:batch_no"`
	Description       string          `gorm:"column:description"`
	MfgDate           time.Time       `gorm:"column:mfg_date;type:date"`
	ExpDate           time.Time       `gorm:"column:exp_date;type:date"`
	Quantity          int             `gorm:"column:quantity"`
	Price             float64         `gorm:"column:price"`
	SupplyChainStatus string          `gorm:"column:supply_chain_status;type:varchar(32)"`
	ListingStatus     string          `gorm:"column:listing_status;type:varchar(16);index"`
	OnChain           bool            `gorm:"column:on_chain"`
	Generation        int64           `gorm:"column:generation"`
	History           []historyRecord `gorm:"column:history;serializer:json"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (medicineRecord) TableName() string { return "medicines" }

// upsertColumns are overwritten from the incoming row on conflict; created_at is kept.
var upsertColumns = []string{
	"name", "manufacturer", "batch_no", "description", "mfg_date", "exp_date", "quantity", "price",
	"supply_chain_status", "listing_status", "on_chain", "generation", "history",
}

type historyRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Changes   string    `json:"changes"`
}

func newMedicineRecord(m *domain.Medicine) medicineRecord {
	history := make([]historyRecord, 0, len(m.History))
	for _, entry := range m.History {
		history = append(history, historyRecord{Timestamp: entry.Timestamp, Action: string(entry.Action), Changes: entry.Changes})
	}
	return medicineRecord{
		ID:                m.ID,
		Name:              m.Name,
		Manufacturer:      m.Manufacturer,
		BatchNo:           m.BatchNo,
		Description:       m.Description,
		MfgDate:           m.MfgDate,
		ExpDate:           m.ExpDate,
		Quantity:          m.Quantity,
		Price:             m.Price,
		SupplyChainStatus: string(m.SupplyChainStatus),
		ListingStatus:     string(m.ListingStatus),
		OnChain:           m.OnChain,
		Generation:        m.Generation,
		History:           history,
	}
}

// Save inserts or updates a medicine batch.
func (r *Repository) Save(ctx context.Context, medicine *domain.Medicine) (*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, errors.New("cannot save nil medicine")
	}
	record := newMedicineRecord(medicine)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: append(clause.AssignmentColumns(upsertColumns),
				clause.Assignment{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("NOW()")}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, medicine.ID)
}

// GetByID fetches a batch by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record medicineRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a batch by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&medicineRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns every batch ordered by name.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []medicineRecord
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// FindByListingStatus returns batches whose listing status matches any provided status.
func (r *Repository) FindByListingStatus(ctx context.Context, statuses []domain.ListingStatus) ([]*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, nil
	}
	args := make([]string, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
	}
	var records []medicineRecord
	if err := r.db.WithContext(ctx).
		Where("listing_status = ANY(?)", pq.Array(args)).
		Order("name ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// MarkConfirmed sets on_chain with a generation guard so a superseded settlement never lands.
func (r *Repository) MarkConfirmed(ctx context.Context, id string, generation int64) (*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).
		Model(&medicineRecord{}).
		Where("id = ? AND generation = ?", id, generation).
		Updates(map[string]any{"on_chain": true, "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ports.ErrStaleConfirmation
	}
	return r.GetByID(ctx, id)
}

// MarkApproved locks the row and rewrites only listing_status, history and updated_at,
// so a settlement landing concurrently keeps its on_chain flag.
func (r *Repository) MarkApproved(ctx context.Context, id string, at time.Time) (*projection.Projection[*domain.Medicine], bool, error) {
	if err := r.ensureDB(); err != nil {
		return nil, false, err
	}
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record medicineRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		medicine := record.toProjection().Entity
		if !medicine.Approve(at) {
			return nil
		}
		changed = true
		approved := newMedicineRecord(medicine)
		approved.UpdatedAt = time.Now().UTC()
		return tx.Model(&medicineRecord{ID: id}).
			Select("listing_status", "history", "updated_at").
			Updates(&approved).Error
	})
	if err != nil {
		return nil, false, err
	}
	saved, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return saved, changed, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres medicine repository not configured")
	}
	return nil
}

func recordsToProjections(records []medicineRecord) []*projection.Projection[*domain.Medicine] {
	list := make([]*projection.Projection[*domain.Medicine], 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list
}

func (r medicineRecord) toProjection() *projection.Projection[*domain.Medicine] {
	history := make([]domain.HistoryEntry, 0, len(r.History))
	for _, entry := range r.History {
		history = append(history, domain.HistoryEntry{
			Timestamp: entry.Timestamp,
			Action:    domain.HistoryAction(entry.Action),
			Changes:   entry.Changes,
		})
	}
	medicine := &domain.Medicine{
		ID:                r.ID,
		Name:              r.Name,
		Manufacturer:      r.Manufacturer,
		BatchNo:           r.BatchNo,
		Description:       r.Description,
		MfgDate:           r.MfgDate.UTC(),
		ExpDate:           r.ExpDate.UTC(),
		Quantity:          r.Quantity,
		Price:             r.Price,
		SupplyChainStatus: domain.SupplyChainStatus(r.SupplyChainStatus),
		ListingStatus:     domain.ListingStatus(r.ListingStatus),
		OnChain:           r.OnChain,
		Generation:        r.Generation,
		History:           history,
	}
	return projection.New(medicine, r.CreatedAt, r.UpdatedAt)
}
