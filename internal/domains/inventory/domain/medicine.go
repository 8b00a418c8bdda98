package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// StockStatus is derived from the on-hand quantity and never stored on its own.
type StockStatus string

const (
	StockInStock    StockStatus = "In Stock"
	StockLowStock   StockStatus = "Low Stock"
	StockOutOfStock StockStatus = "Out of Stock"
)

// LowStockThreshold is the highest quantity still reported as low stock.
const LowStockThreshold = 50

// SupplyChainStatus is the coarse physical location of a batch.
type SupplyChainStatus string

const (
	SupplyAtManufacturer SupplyChainStatus = "At Manufacturer"
	SupplyInTransit      SupplyChainStatus = "In Transit"
	SupplyAtPharmacy     SupplyChainStatus = "At Pharmacy"
)

// ListingStatus controls customer visibility of a batch.
type ListingStatus string

const (
	ListingPending  ListingStatus = "Pending"
	ListingApproved ListingStatus = "Approved"
)

const (
	minNameLength        = 2
	minDescriptionLength = 10
)

const (
	createdChanges  = "Batch registered in the database."
	approvedChanges = "Listing approved for customers."
)

var (
	ErrInvalidName         = fmt.Errorf("name must be at least %d characters", minNameLength)
	ErrInvalidManufacturer = fmt.Errorf("manufacturer must be at least %d characters", minNameLength)
	ErrEmptyBatchNo        = errors.New("batch number is required")
	ErrInvalidDescription  = fmt.Errorf("description must be at least %d characters", minDescriptionLength)
	ErrNegativeQuantity    = errors.New("quantity must be greater or equal to zero")
	ErrNegativePrice       = errors.New("price must be greater or equal to zero")
	ErrMissingMfgDate      = errors.New("manufacturing date is required")
	ErrMissingExpDate      = errors.New("expiry date is required")
	ErrInvalidSupplyChain  = errors.New("supply chain status is invalid")
	ErrInvalidListing      = errors.New("listing status is invalid")
)

// StockStatusFor maps a quantity onto its stock status.
func StockStatusFor(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOutOfStock
	case quantity <= LowStockThreshold:
		return StockLowStock
	default:
		return StockInStock
	}
}

// ParseSupplyChainStatus validates a supply chain status, defaulting empty input to At Manufacturer.
func ParseSupplyChainStatus(raw string) (SupplyChainStatus, error) {
	status := SupplyChainStatus(strings.TrimSpace(raw))
	switch status {
	case "":
		return SupplyAtManufacturer, nil
	case SupplyAtManufacturer, SupplyInTransit, SupplyAtPharmacy:
		return status, nil
	default:
		return "", ErrInvalidSupplyChain
	}
}

// ParseListingStatus validates a listing status filter value.
func ParseListingStatus(raw string) (ListingStatus, error) {
	switch status := ListingStatus(strings.TrimSpace(raw)); status {
	case ListingPending, ListingApproved:
		return status, nil
	default:
		return "", ErrInvalidListing
	}
}

// Details groups the caller-supplied fields of a new batch.
type Details struct {
	Name              string
	Manufacturer      string
	BatchNo           string
	Description       string
	MfgDate           time.Time
	ExpDate           time.Time
	Quantity          int
	Price             float64
	SupplyChainStatus SupplyChainStatus
}

// Medicine is a registered batch of a medicine, the aggregate of the inventory context.
type Medicine struct {
	ID                string
	Name              string
	Manufacturer      string
	BatchNo           string
	Description       string
	MfgDate           time.Time
	ExpDate           time.Time
	Quantity          int
	Price             float64
	SupplyChainStatus SupplyChainStatus
	ListingStatus     ListingStatus
	OnChain           bool
	Generation        int64
	History           []HistoryEntry
}

// NewMedicine validates the details and registers a pending, unconfirmed batch.
func NewMedicine(id string, details Details, now time.Time) (*Medicine, error) {
	m := &Medicine{ID: id}
	if err := m.Rename(details.Name); err != nil {
		return nil, err
	}
	if err := m.SetManufacturer(details.Manufacturer); err != nil {
		return nil, err
	}
	if err := m.SetBatchNo(details.BatchNo); err != nil {
		return nil, err
	}
	if err := m.SetDescription(details.Description); err != nil {
		return nil, err
	}
	if details.MfgDate.IsZero() {
		return nil, ErrMissingMfgDate
	}
	if details.ExpDate.IsZero() {
		return nil, ErrMissingExpDate
	}
	m.MfgDate = calendarDate(details.MfgDate)
	m.ExpDate = calendarDate(details.ExpDate)
	if err := m.SetQuantity(details.Quantity); err != nil {
		return nil, err
	}
	if err := m.SetPrice(details.Price); err != nil {
		return nil, err
	}
	supply, err := ParseSupplyChainStatus(string(details.SupplyChainStatus))
	if err != nil {
		return nil, err
	}
	m.SupplyChainStatus = supply
	m.ListingStatus = ListingPending
	m.OnChain = false
	m.Generation = 1
	m.appendHistory(now, ActionCreated, createdChanges)
	return m, nil
}

// StockStatus derives the current stock status from the quantity.
func (m *Medicine) StockStatus() StockStatus {
	return StockStatusFor(m.Quantity)
}

// IsApproved reports whether the batch is visible to customers.
func (m *Medicine) IsApproved() bool {
	return m.ListingStatus == ListingApproved
}

// Rename validates and sets the display name.
func (m *Medicine) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < minNameLength {
		return ErrInvalidName
	}
	m.Name = name
	return nil
}

// SetManufacturer validates and sets the manufacturer.
func (m *Medicine) SetManufacturer(manufacturer string) error {
	manufacturer = strings.TrimSpace(manufacturer)
	if len([]rune(manufacturer)) < minNameLength {
		return ErrInvalidManufacturer
	}
	m.Manufacturer = manufacturer
	return nil
}

// SetBatchNo validates and sets the batch number.
func (m *Medicine) SetBatchNo(batchNo string) error {
	batchNo = strings.TrimSpace(batchNo)
	if batchNo == "" {
		return ErrEmptyBatchNo
	}
	m.BatchNo = batchNo
	return nil
}

// SetDescription validates and sets the free-text description.
func (m *Medicine) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if len([]rune(description)) < minDescriptionLength {
		return ErrInvalidDescription
	}
	m.Description = description
	return nil
}

// SetQuantity stores the on-hand quantity.
func (m *Medicine) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	m.Quantity = quantity
	return nil
}

// SetPrice stores the unit price.
func (m *Medicine) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	m.Price = price
	return nil
}

// Approve moves a pending listing to approved. It reports false when the batch was already approved.
func (m *Medicine) Approve(now time.Time) bool {
	if m.ListingStatus == ListingApproved {
		return false
	}
	m.ListingStatus = ListingApproved
	m.appendHistory(now, ActionApproved, approvedChanges)
	return true
}

// ConfirmLedger flips the confirmation flag when generation still matches the latest write.
func (m *Medicine) ConfirmLedger(generation int64) bool {
	if generation != m.Generation {
		return false
	}
	m.OnChain = true
	return true
}

func (m *Medicine) appendHistory(now time.Time, action HistoryAction, changes string) {
	m.History = append(m.History, HistoryEntry{Timestamp: now.UTC(), Action: action, Changes: changes})
}

// Clone returns a deep copy of the aggregate.
func (m *Medicine) Clone() *Medicine {
	if m == nil {
		return nil
	}
	clone := *m
	clone.History = append([]HistoryEntry(nil), m.History...)
	return &clone
}

func calendarDate(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
