package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FanOut(t *testing.T) {
	hub := NewHub(4)
	first, cancelFirst := hub.Subscribe()
	defer cancelFirst()
	second, cancelSecond := hub.Subscribe()
	defer cancelSecond()

	msg := Message{Name: "inventory.medicine.created", OccurredAt: time.Now()}
	hub.Publish(context.Background(), msg)

	require.Equal(t, msg.Name, (<-first).Name)
	require.Equal(t, msg.Name, (<-second).Name)
}

func TestHub_SlowSubscriberDrops(t *testing.T) {
	hub := NewHub(1)
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(context.Background(), Message{Name: "one"})
	hub.Publish(context.Background(), Message{Name: "two"})

	assert.Equal(t, "one", (<-ch).Name)
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message %q", msg.Name)
	default:
	}
}

func TestHub_CancelAndClose(t *testing.T) {
	hub := NewHub(0)
	ch, cancel := hub.Subscribe()
	require.Equal(t, 1, hub.Subscribers())

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers())

	other, _ := hub.Subscribe()
	hub.Close()
	_, open = <-other
	assert.False(t, open)

	late, _ := hub.Subscribe()
	_, open = <-late
	assert.False(t, open)
	hub.Publish(context.Background(), Message{Name: "ignored"})
}
