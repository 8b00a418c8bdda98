package mapper

import (
	"fmt"
	"strings"
	"time"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// CreateMedicine is the inbound payload of a new batch.
type CreateMedicine struct {
	Name              string  `json:"name" binding:"required"`
	Manufacturer      string  `json:"manufacturer" binding:"required"`
	BatchNo           string  `json:"batchNo" binding:"required"`
	Description       string  `json:"description" binding:"required"`
	MfgDate           string  `json:"mfgDate" binding:"required"`
	ExpDate           string  `json:"expDate" binding:"required"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	SupplyChainStatus string  `json:"supplyChainStatus,omitempty"`
}

// UpdateMedicine carries a partial edit while preserving field presence.
type UpdateMedicine struct {
	Name              *string  `json:"name,omitempty"`
	Manufacturer      *string  `json:"manufacturer,omitempty"`
	BatchNo           *string  `json:"batchNo,omitempty"`
	Description       *string  `json:"description,omitempty"`
	MfgDate           *string  `json:"mfgDate,omitempty"`
	ExpDate           *string  `json:"expDate,omitempty"`
	Quantity          *int     `json:"quantity,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	SupplyChainStatus *string  `json:"supplyChainStatus,omitempty"`
}

// HistoryEntry is one audit record on the wire.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Changes   string    `json:"changes"`
}

// Medicine is the HTTP representation of a batch.
type Medicine struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Manufacturer      string         `json:"manufacturer"`
	BatchNo           string         `json:"batchNo"`
	Description       string         `json:"description"`
	MfgDate           string         `json:"mfgDate"`
	ExpDate           string         `json:"expDate"`
	Quantity          int            `json:"quantity"`
	Price             float64        `json:"price"`
	StockStatus       string         `json:"stockStatus"`
	SupplyChainStatus string         `json:"supplyChainStatus"`
	ListingStatus     string         `json:"listingStatus"`
	OnChain           bool           `json:"onChain"`
	History           []HistoryEntry `json:"history"`
	CreatedAt         time.Time      `json:"createdAt,omitempty"`
	UpdatedAt         time.Time      `json:"updatedAt,omitempty"`
}

// LedgerHandshake is the response of the ledger health probe.
type LedgerHandshake struct {
	Endpoint             string    `json:"endpoint"`
	Blockhash            string    `json:"blockhash"`
	LastValidBlockHeight uint64    `json:"lastValidBlockHeight"`
	CheckedAt            time.Time `json:"checkedAt"`
}

// ToCreateInput parses dates and maps the payload to the application input.
func ToCreateInput(payload CreateMedicine) (types.CreateMedicineInput, error) {
	mfg, err := parseDate("mfgDate", payload.MfgDate)
	if err != nil {
		return types.CreateMedicineInput{}, err
	}
	exp, err := parseDate("expDate", payload.ExpDate)
	if err != nil {
		return types.CreateMedicineInput{}, err
	}
	return types.CreateMedicineInput{
		Name:              payload.Name,
		Manufacturer:      payload.Manufacturer,
		BatchNo:           payload.BatchNo,
		Description:       payload.Description,
		MfgDate:           mfg,
		ExpDate:           exp,
		Quantity:          payload.Quantity,
		Price:             payload.Price,
		SupplyChainStatus: payload.SupplyChainStatus,
	}, nil
}

// ToUpdateInput maps a partial edit for the batch id.
func ToUpdateInput(id string, payload UpdateMedicine) (types.UpdateMedicineInput, error) {
	input := types.UpdateMedicineInput{
		ID:                id,
		Name:              payload.Name,
		Manufacturer:      payload.Manufacturer,
		BatchNo:           payload.BatchNo,
		Description:       payload.Description,
		Quantity:          payload.Quantity,
		Price:             payload.Price,
		SupplyChainStatus: payload.SupplyChainStatus,
	}
	if payload.MfgDate != nil {
		mfg, err := parseDate("mfgDate", *payload.MfgDate)
		if err != nil {
			return types.UpdateMedicineInput{}, err
		}
		input.MfgDate = &mfg
	}
	if payload.ExpDate != nil {
		exp, err := parseDate("expDate", *payload.ExpDate)
		if err != nil {
			return types.UpdateMedicineInput{}, err
		}
		input.ExpDate = &exp
	}
	return input, nil
}

// FromProjection maps a stored batch to its HTTP representation.
func FromProjection(p *types.MedicineProjection) Medicine {
	if p == nil || p.Entity == nil {
		return Medicine{}
	}
	m := p.Entity
	history := make([]HistoryEntry, 0, len(m.History))
	for _, entry := range m.History {
		history = append(history, HistoryEntry{Timestamp: entry.Timestamp, Action: string(entry.Action), Changes: entry.Changes})
	}
	return Medicine{
		ID:                m.ID,
		Name:              m.Name,
		Manufacturer:      m.Manufacturer,
		BatchNo:           m.BatchNo,
		Description:       m.Description,
		MfgDate:           m.MfgDate.Format(DateLayout),
		ExpDate:           m.ExpDate.Format(DateLayout),
		Quantity:          m.Quantity,
		Price:             m.Price,
		StockStatus:       string(m.StockStatus()),
		SupplyChainStatus: string(m.SupplyChainStatus),
		ListingStatus:     string(m.ListingStatus),
		OnChain:           m.OnChain,
		History:           history,
		CreatedAt:         p.Metadata.CreatedAt,
		UpdatedAt:         p.Metadata.UpdatedAt,
	}
}

// FromProjectionList maps a list, keeping order.
func FromProjectionList(list []*types.MedicineProjection) []Medicine {
	out := make([]Medicine, 0, len(list))
	for _, p := range list {
		if p == nil || p.Entity == nil {
			continue
		}
		out = append(out, FromProjection(p))
	}
	return out
}

// FromHandshake maps the ledger probe result.
func FromHandshake(h *types.LedgerHandshake) LedgerHandshake {
	if h == nil {
		return LedgerHandshake{}
	}
	return LedgerHandshake{
		Endpoint:             h.Endpoint,
		Blockhash:            h.Blockhash,
		LastValidBlockHeight: h.LastValidBlockHeight,
		CheckedAt:            h.CheckedAt,
	}
}

// DateError reports a malformed calendar date field.
type DateError struct {
	Field string
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s must be a date formatted as YYYY-MM-DD, got %q", e.Field, e.Value)
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, &DateError{Field: field, Value: raw}
	}
	return t, nil
}
