package ports

import (
	"context"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
)

// EventPublisher forwards inventory domain events to interested adapters.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// NoopEventPublisher discards events.
var NoopEventPublisher EventPublisher = noopPublisher{}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.Event) {}
