package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL. Line items are stored as a JSON column.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order repository.
func NewRepository(db *gorm.DB) *Repository {
	if db != nil {
		if err := db.AutoMigrate(&orderRecord{}, &idempotencyRecord{}); err != nil {
			log.Printf("postgres order repository migration failed: %v", err)
		}
	}
	return &Repository{db: db}
}

type orderRecord struct {
	ID              string           `gorm:"primaryKey;column:id;size:64"`
	CustomerID      string           `gorm:"column:customer_id;size:64;index"`
	CustomerName    string           `gorm:"column:customer_name"`
	Items           []lineItemRecord `gorm:"column:items;serializer:json"`
	Total           float64          `gorm:"column:total"`
	Status          string           `gorm:"column:status;type:varchar(16);index"`
	OrderDate       time.Time        `gorm:"column:order_date;index"`
	ShippingAddress string           `gorm:"column:shipping_address"`
	MobileNumber    string           `gorm:"column:mobile_number;size:16"`
	CreatedAt       time.Time        `gorm:"column:created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type lineItemRecord struct {
	MedicineID string  `json:"medicineId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Total and items are frozen at checkout, so only the status moves on conflict.
var upsertColumns = []string{"status"}

func newOrderRecord(o *domain.Order) orderRecord {
	items := make([]lineItemRecord, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, lineItemRecord(item))
	}
	return orderRecord{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		Items:           items,
		Total:           o.Total,
		Status:          string(o.Status),
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		MobileNumber:    o.MobileNumber,
	}
}

func (r orderRecord) toProjection() *projection.Projection[*domain.Order] {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.LineItem(item))
	}
	order := &domain.Order{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		Items:           items,
		Total:           r.Total,
		Status:          domain.Status(r.Status),
		OrderDate:       r.OrderDate.UTC(),
		ShippingAddress: r.ShippingAddress,
		MobileNumber:    r.MobileNumber,
	}
	return projection.New(order, r.CreatedAt, r.UpdatedAt)
}

// Save inserts a new order or updates the status of an existing one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("cannot save nil order")
	}
	record := newOrderRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: append(clause.AssignmentColumns(upsertColumns),
				clause.Assignment{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("NOW()")}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// List returns every order, newest first.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("order_date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Order], 0, len(records))
	for _, record := range records {
		list = append(list, record.toProjection())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}
