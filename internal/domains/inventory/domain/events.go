package domain

import "time"

// Event is the base interface for all inventory domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// MedicineCreated is raised when a new batch is registered.
type MedicineCreated struct {
	BaseEvent
	MedicineID string
	Name       string
	Quantity   int
}

func (e MedicineCreated) EventName() string { return "inventory.medicine.created" }

// MedicineUpdated is raised when an edit changed at least one field.
type MedicineUpdated struct {
	BaseEvent
	MedicineID  string
	Changes     string
	StockStatus StockStatus
	Generation  int64
}

func (e MedicineUpdated) EventName() string { return "inventory.medicine.updated" }

// MedicineApproved is raised when a listing becomes customer-visible.
type MedicineApproved struct {
	BaseEvent
	MedicineID string
}

func (e MedicineApproved) EventName() string { return "inventory.medicine.approved" }

// MedicineDeleted is raised when a batch is removed from the local view.
type MedicineDeleted struct {
	BaseEvent
	MedicineID string
}

func (e MedicineDeleted) EventName() string { return "inventory.medicine.deleted" }

// LedgerConfirmed is raised when a simulated ledger settlement applied.
type LedgerConfirmed struct {
	BaseEvent
	MedicineID string
	Generation int64
}

func (e LedgerConfirmed) EventName() string { return "inventory.medicine.ledger_confirmed" }
