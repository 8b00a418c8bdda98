package application

import (
	"errors"
	"fmt"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/domain"
)

var (
	ErrInvalidInput = errors.New("invalid assistant input")
	// ErrGeneration wraps failures reported by the model backend.
	ErrGeneration = errors.New("assistant could not produce an answer")
)

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrEmptyHistory),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrLastMessageRole),
		errors.Is(err, domain.ErrMissingMedicine):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
