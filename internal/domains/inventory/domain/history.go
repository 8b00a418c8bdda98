package domain

import (
	"fmt"
	"strings"
	"time"
)

// HistoryAction names the kind of audit entry.
type HistoryAction string

const (
	ActionCreated  HistoryAction = "CREATED"
	ActionUpdated  HistoryAction = "UPDATED"
	ActionApproved HistoryAction = "APPROVED"
)

// HistoryEntry is one append-only audit record of a batch.
type HistoryEntry struct {
	Timestamp time.Time
	Action    HistoryAction
	Changes   string
}

// Patch carries the optional fields of an edit. Nil fields are left untouched.
type Patch struct {
	Name              *string
	Manufacturer      *string
	BatchNo           *string
	Description       *string
	MfgDate           *time.Time
	ExpDate           *time.Time
	Quantity          *int
	Price             *float64
	SupplyChainStatus *SupplyChainStatus
}

// IsEmpty reports whether the patch sets no field at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Manufacturer == nil && p.BatchNo == nil && p.Description == nil &&
		p.MfgDate == nil && p.ExpDate == nil && p.Quantity == nil && p.Price == nil && p.SupplyChainStatus == nil
}

// Apply merges the patch into the batch. Only fields whose value differs are applied; when at
// least one changes, a single UPDATED entry is appended, the ledger flag re-enters pending and
// the generation advances. The aggregate is untouched when validation fails.
func (m *Medicine) Apply(patch Patch, now time.Time) (bool, error) {
	next := m.Clone()
	var changes []string
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != m.Name {
		if err := next.Rename(*patch.Name); err != nil {
			return false, err
		}
		changes = append(changes, "name updated")
	}
	if patch.Manufacturer != nil && strings.TrimSpace(*patch.Manufacturer) != m.Manufacturer {
		if err := next.SetManufacturer(*patch.Manufacturer); err != nil {
			return false, err
		}
		changes = append(changes, "manufacturer updated")
	}
	if patch.BatchNo != nil && strings.TrimSpace(*patch.BatchNo) != m.BatchNo {
		if err := next.SetBatchNo(*patch.BatchNo); err != nil {
			return false, err
		}
		changes = append(changes, "batchNo updated")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != m.Description {
		if err := next.SetDescription(*patch.Description); err != nil {
			return false, err
		}
		changes = append(changes, "description updated")
	}
	if patch.MfgDate != nil {
		if patch.MfgDate.IsZero() {
			return false, ErrMissingMfgDate
		}
		if date := calendarDate(*patch.MfgDate); !date.Equal(m.MfgDate) {
			next.MfgDate = date
			changes = append(changes, "mfgDate updated")
		}
	}
	if patch.ExpDate != nil {
		if patch.ExpDate.IsZero() {
			return false, ErrMissingExpDate
		}
		if date := calendarDate(*patch.ExpDate); !date.Equal(m.ExpDate) {
			next.ExpDate = date
			changes = append(changes, "expDate updated")
		}
	}
	if patch.Quantity != nil && *patch.Quantity != m.Quantity {
		if err := next.SetQuantity(*patch.Quantity); err != nil {
			return false, err
		}
		changes = append(changes, fmt.Sprintf("Quantity changed from %d to %d", m.Quantity, *patch.Quantity))
	}
	if patch.Price != nil && *patch.Price != m.Price {
		if err := next.SetPrice(*patch.Price); err != nil {
			return false, err
		}
		changes = append(changes, "price updated")
	}
	if patch.SupplyChainStatus != nil {
		// empty only defaults at creation; an edit must name a location
		if strings.TrimSpace(string(*patch.SupplyChainStatus)) == "" {
			return false, ErrInvalidSupplyChain
		}
		status, err := ParseSupplyChainStatus(string(*patch.SupplyChainStatus))
		if err != nil {
			return false, err
		}
		if status != m.SupplyChainStatus {
			next.SupplyChainStatus = status
			changes = append(changes, "supplyChainStatus updated")
		}
	}
	if len(changes) == 0 {
		return false, nil
	}
	next.OnChain = false
	next.Generation++
	next.appendHistory(now, ActionUpdated, strings.Join(changes, ", "))
	*m = *next
	return true, nil
}
