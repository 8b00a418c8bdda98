package types

import "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/domain"

// ChatInput carries the transcript so far, oldest first.
type ChatInput struct {
	History []domain.Message
}

// ChatReply is the assistant's answer to the latest user message.
type ChatReply struct {
	Message domain.Message
}

// SideEffectsInput names the medicine to describe.
type SideEffectsInput struct {
	MedicineName string
}

// SideEffectsReply holds the generated description.
type SideEffectsReply struct {
	MedicineName string
	SideEffects  string
}
