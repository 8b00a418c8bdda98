package ports

import (
	"context"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/application/types"
)

// Service exposes the assistant use cases.
type Service interface {
	Chat(ctx context.Context, input types.ChatInput) (*types.ChatReply, error)
	SideEffects(ctx context.Context, input types.SideEffectsInput) (*types.SideEffectsReply, error)
}
