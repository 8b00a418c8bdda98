package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/ports"
)

// Service grounds model prompts on the current catalog.
type Service struct {
	generator ports.Generator
	catalog   ports.Catalog
}

// NewService builds the assistant. A nil generator leaves every call unavailable.
func NewService(generator ports.Generator, catalog ports.Catalog) *Service {
	return &Service{generator: generator, catalog: catalog}
}

var _ ports.Service = (*Service)(nil)

// Chat answers the last user message using only the catalog snapshot.
func (s *Service) Chat(ctx context.Context, input types.ChatInput) (*types.ChatReply, error) {
	if s.generator == nil {
		return nil, ports.ErrUnavailable
	}
	history := normalizeHistory(input.History)
	if err := domain.ValidateHistory(history); err != nil {
		return nil, mapError(err)
	}
	var catalog []domain.CatalogEntry
	if s.catalog != nil {
		entries, err := s.catalog.Snapshot(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		catalog = entries
	}
	answer, err := s.generate(ctx, domain.ChatPrompt(catalog, history))
	if err != nil {
		return nil, err
	}
	return &types.ChatReply{Message: domain.Message{Role: domain.RoleAssistant, Content: answer}}, nil
}

// SideEffects describes the potential side effects of a named medicine.
func (s *Service) SideEffects(ctx context.Context, input types.SideEffectsInput) (*types.SideEffectsReply, error) {
	if s.generator == nil {
		return nil, ports.ErrUnavailable
	}
	name := strings.TrimSpace(input.MedicineName)
	if name == "" {
		return nil, mapError(domain.ErrMissingMedicine)
	}
	answer, err := s.generate(ctx, domain.SideEffectsPrompt(name))
	if err != nil {
		return nil, err
	}
	return &types.SideEffectsReply{MedicineName: name, SideEffects: answer}, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: %w", ErrGeneration, domain.ErrEmptyCompletion)
	}
	return answer, nil
}

func normalizeHistory(history []domain.Message) []domain.Message {
	out := make([]domain.Message, 0, len(history))
	for _, msg := range history {
		role := domain.Role(strings.ToLower(strings.TrimSpace(string(msg.Role))))
		out = append(out, domain.Message{Role: role, Content: strings.TrimSpace(msg.Content)})
	}
	return out
}
