package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []Message
		wantErr error
	}{
		{name: "empty", history: nil, wantErr: ErrEmptyHistory},
		{name: "bad role", history: []Message{{Role: "system", Content: "hi"}}, wantErr: ErrInvalidRole},
		{name: "blank content", history: []Message{{Role: RoleUser, Content: "  "}}, wantErr: ErrEmptyMessage},
		{name: "assistant last", history: []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}}, wantErr: ErrLastMessageRole},
		{name: "ok", history: []Message{{Role: RoleAssistant, Content: "How can I help?"}, {Role: "User", Content: "Is Paracetamol in stock?"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHistory(tt.history)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestChatPromptListsCatalogAndTranscript(t *testing.T) {
	catalog := []CatalogEntry{{
		Name:         "Paracetamol",
		Manufacturer: "HealthCorp",
		BatchNo:      "PC-001",
		ExpDate:      time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Pain reliever and fever reducer.",
		Quantity:     12,
		StockStatus:  "Low Stock",
	}}
	history := []Message{{Role: RoleUser, Content: "When does Paracetamol expire?"}}

	prompt := ChatPrompt(catalog, history)

	assert.Contains(t, prompt, "You must ONLY use the information provided")
	assert.Contains(t, prompt, "- Name: Paracetamol\n")
	assert.Contains(t, prompt, "  - Batch Number: PC-001\n")
	assert.Contains(t, prompt, "  - Expiry Date: 2027-05-01\n")
	assert.Contains(t, prompt, "  - Stock: 12 units, status is Low Stock\n")
	assert.Contains(t, prompt, "Chat History:\nuser: When does Paracetamol expire?\n")
	assert.True(t, strings.HasSuffix(prompt, "assistant: "))
}

func TestChatPromptEmptyCatalog(t *testing.T) {
	prompt := ChatPrompt(nil, []Message{{Role: RoleUser, Content: "anything?"}})
	assert.Contains(t, prompt, "Available Medicines:\n(none)\n")
}

func TestSideEffectsPrompt(t *testing.T) {
	prompt := SideEffectsPrompt("  Ibuprofen ")
	assert.Contains(t, prompt, "potential side effects")
	assert.True(t, strings.HasSuffix(prompt, "Medicine Name: Ibuprofen\n"))
}
