package mapper

import (
	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/domain"
)

// Message is one chat turn on the wire.
type Message struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Chat is the request body of the chat endpoint.
type Chat struct {
	History []Message `json:"history" binding:"required"`
}

// ChatResponse carries the assistant answer.
type ChatResponse struct {
	Response string  `json:"response"`
	Message  Message `json:"message"`
}

// SideEffects is the side-effect lookup request.
type SideEffects struct {
	MedicineName string `json:"medicineName" binding:"required"`
}

// SideEffectsResponse carries the generated description.
type SideEffectsResponse struct {
	MedicineName string `json:"medicineName"`
	SideEffects  string `json:"sideEffects"`
}

func ToChatInput(payload Chat) types.ChatInput {
	history := make([]domain.Message, 0, len(payload.History))
	for _, msg := range payload.History {
		history = append(history, domain.Message{Role: domain.Role(msg.Role), Content: msg.Content})
	}
	return types.ChatInput{History: history}
}

func FromChatReply(reply *types.ChatReply) ChatResponse {
	if reply == nil {
		return ChatResponse{}
	}
	msg := Message{Role: string(reply.Message.Role), Content: reply.Message.Content}
	return ChatResponse{Response: msg.Content, Message: msg}
}

func FromSideEffectsReply(reply *types.SideEffectsReply) SideEffectsResponse {
	if reply == nil {
		return SideEffectsResponse{}
	}
	return SideEffectsResponse{MedicineName: reply.MedicineName, SideEffects: reply.SideEffects}
}
