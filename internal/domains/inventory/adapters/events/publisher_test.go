package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	sharedevents "github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/events"
)

func TestHubPublisherForwardsEvents(t *testing.T) {
	hub := sharedevents.NewHub(4)
	defer hub.Close()
	messages, cancel := hub.Subscribe()
	defer cancel()

	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	NewHubPublisher(hub).Publish(context.Background(), domain.MedicineUpdated{
		BaseEvent:   domain.BaseEvent{Timestamp: at},
		MedicineID:  "mdc-1",
		Changes:     "Quantity changed from 60 to 30",
		StockStatus: domain.StockLowStock,
		Generation:  2,
	})

	select {
	case msg := <-messages:
		want := sharedevents.Message{
			Name:       "inventory.medicine.updated",
			OccurredAt: at,
			Payload: Payload{
				MedicineID:  "mdc-1",
				Changes:     "Quantity changed from 60 to 30",
				StockStatus: "Low Stock",
				Generation:  2,
			},
		}
		if diff := cmp.Diff(want, msg); diff != "" {
			t.Fatalf("unexpected message (-want +got):\n%s", diff)
		}
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubPublisherNilHub(t *testing.T) {
	require.NotPanics(t, func() {
		NewHubPublisher(nil).Publish(context.Background(), domain.MedicineDeleted{MedicineID: "mdc-1"})
	})
}
