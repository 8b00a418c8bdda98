package events

import (
	"context"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	sharedevents "github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/events"
)

var _ ports.EventPublisher = (*HubPublisher)(nil)

// HubPublisher forwards inventory events onto the shared in-process hub.
type HubPublisher struct {
	hub *sharedevents.Hub
}

// NewHubPublisher wraps hub.
func NewHubPublisher(hub *sharedevents.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

// Publish converts the event into a transport message.
func (p *HubPublisher) Publish(ctx context.Context, event domain.Event) {
	if p == nil || p.hub == nil || event == nil {
		return
	}
	p.hub.Publish(ctx, sharedevents.Message{
		Name:       event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
		Payload:    payloadOf(event),
	})
}

// Payload is the wire shape of an inventory event.
type Payload struct {
	MedicineID  string `json:"medicineId"`
	Name        string `json:"name,omitempty"`
	Quantity    *int   `json:"quantity,omitempty"`
	Changes     string `json:"changes,omitempty"`
	StockStatus string `json:"stockStatus,omitempty"`
	Generation  int64  `json:"generation,omitempty"`
}

func payloadOf(event domain.Event) Payload {
	switch e := event.(type) {
	case domain.MedicineCreated:
		quantity := e.Quantity
		return Payload{MedicineID: e.MedicineID, Name: e.Name, Quantity: &quantity}
	case domain.MedicineUpdated:
		return Payload{MedicineID: e.MedicineID, Changes: e.Changes, StockStatus: string(e.StockStatus), Generation: e.Generation}
	case domain.MedicineApproved:
		return Payload{MedicineID: e.MedicineID}
	case domain.MedicineDeleted:
		return Payload{MedicineID: e.MedicineID}
	case domain.LedgerConfirmed:
		return Payload{MedicineID: e.MedicineID, Generation: e.Generation}
	default:
		return Payload{}
	}
}
