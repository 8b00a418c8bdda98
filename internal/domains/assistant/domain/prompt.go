package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	ErrEmptyHistory    = errors.New("chat history must contain at least one message")
	ErrInvalidRole     = errors.New("message role must be user or assistant")
	ErrEmptyMessage    = errors.New("message content is required")
	ErrLastMessageRole = errors.New("the last message must come from the user")
	ErrMissingMedicine = errors.New("medicine name is required")
	ErrEmptyCompletion = errors.New("model returned an empty answer")
)

const chatInstructions = `You are a helpful and friendly pharmacy assistant chatbot. Your goal is to answer questions about the user's medicines.
You must ONLY use the information provided in the "Available Medicines" section below. Do not provide any medical advice or information not present in the provided data.
If the user asks a question you cannot answer with the provided data, politely say that you cannot answer that question.`

const sideEffectsInstructions = `You are a helpful AI assistant providing information about medicine side effects.
Provide a description of the potential side effects for the given medicine.`

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, error) {
	switch role := Role(strings.ToLower(strings.TrimSpace(raw))); role {
	case RoleUser, RoleAssistant:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

// CatalogEntry is the slice of a medicine batch the assistant may talk about.
type CatalogEntry struct {
	Name         string
	Manufacturer string
	BatchNo      string
	ExpDate      time.Time
	Description  string
	Quantity     int
	StockStatus  string
}

// ValidateHistory checks roles and content and requires the user to speak last.
func ValidateHistory(history []Message) error {
	if len(history) == 0 {
		return ErrEmptyHistory
	}
	for _, msg := range history {
		if _, err := ParseRole(string(msg.Role)); err != nil {
			return err
		}
		if strings.TrimSpace(msg.Content) == "" {
			return ErrEmptyMessage
		}
	}
	if last := history[len(history)-1]; Role(strings.ToLower(string(last.Role))) != RoleUser {
		return ErrLastMessageRole
	}
	return nil
}

// ChatPrompt renders the grounded assistant prompt.
func ChatPrompt(catalog []CatalogEntry, history []Message) string {
	var b strings.Builder
	b.WriteString(chatInstructions)
	b.WriteString("\n\nAvailable Medicines:\n")
	if len(catalog) == 0 {
		b.WriteString("(none)\n")
	}
	for _, m := range catalog {
		fmt.Fprintf(&b, "- Name: %s\n", m.Name)
		fmt.Fprintf(&b, "  - Manufacturer: %s\n", m.Manufacturer)
		fmt.Fprintf(&b, "  - Batch Number: %s\n", m.BatchNo)
		fmt.Fprintf(&b, "  - Expiry Date: %s\n", m.ExpDate.Format(time.DateOnly))
		fmt.Fprintf(&b, "  - Description: %s\n", m.Description)
		fmt.Fprintf(&b, "  - Stock: %d units, status is %s\n", m.Quantity, m.StockStatus)
	}
	b.WriteString("\nChat History:\n")
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", strings.ToLower(string(msg.Role)), strings.TrimSpace(msg.Content))
	}
	b.WriteString("assistant: ")
	return b.String()
}

// SideEffectsPrompt renders the side-effect lookup prompt.
func SideEffectsPrompt(medicineName string) string {
	return fmt.Sprintf("%s\n\nMedicine Name: %s\n", sideEffectsInstructions, strings.TrimSpace(medicineName))
}
