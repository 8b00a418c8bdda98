package application

import (
	"errors"
	"fmt"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps credential and token failures.
	ErrAuthentication = errors.New("authentication failed")
	// ErrForbidden is returned when the stored role differs from the requested one.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict wraps uniqueness violations.
	ErrConflict = errors.New("user conflict")
)

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrPasswordLength),
		errors.Is(err, domain.ErrMissingName),
		errors.Is(err, domain.ErrInvalidRole):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrInvalidCredentials), errors.Is(err, ports.ErrInvalidToken):
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	case errors.Is(err, ports.ErrEmailTaken):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
