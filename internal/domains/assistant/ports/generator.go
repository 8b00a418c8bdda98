package ports

import (
	"context"
	"errors"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/domain"
)

// ErrUnavailable is returned when no generative model is configured.
var ErrUnavailable = errors.New("assistant is not configured")

// Generator turns a prompt into a single text completion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Catalog supplies the medicines the assistant is allowed to discuss.
type Catalog interface {
	Snapshot(ctx context.Context) ([]domain.CatalogEntry, error)
}
