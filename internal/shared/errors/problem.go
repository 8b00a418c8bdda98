// Package errors renders failures as RFC 7807 problem documents.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions carries problem-specific members such as per-field validation messages.
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with key set in the extension members.
// The map is copied so templates are never mutated.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem type references, relative unless the responder has a base URI.
const (
	TypeValidation   = "/problems/validation-error"
	TypeNotFound     = "/problems/not-found"
	TypeConflict     = "/problems/conflict"
	TypeInternal     = "/problems/internal-error"
	TypeUnauthorized = "/problems/unauthorized"
	TypeForbidden    = "/problems/forbidden"
	TypeBadRequest   = "/problems/bad-request"
	TypeTooMany      = "/problems/too-many-requests"
	TypeUnavailable  = "/problems/service-unavailable"
)

func template(typ, title string, status int) ProblemDetail {
	return ProblemDetail{Type: typ, Title: title, Status: status}
}

var (
	ErrNotFound        = template(TypeNotFound, "Resource Not Found", http.StatusNotFound)
	ErrValidation      = template(TypeValidation, "Validation Error", http.StatusBadRequest)
	ErrBadRequest      = template(TypeBadRequest, "Bad Request", http.StatusBadRequest)
	ErrConflict        = template(TypeConflict, "Conflict", http.StatusConflict)
	ErrInternal        = template(TypeInternal, "Internal Server Error", http.StatusInternalServerError)
	ErrUnauthorized    = template(TypeUnauthorized, "Unauthorized", http.StatusUnauthorized)
	ErrForbidden       = template(TypeForbidden, "Forbidden", http.StatusForbidden)
	ErrTooManyRequests = template(TypeTooMany, "Too Many Requests", http.StatusTooManyRequests)
	// ErrUnavailable covers optional collaborators (ledger, model, invoice renderer) that are unset or unreachable.
	ErrUnavailable = template(TypeUnavailable, "Service Unavailable", http.StatusServiceUnavailable)
)

// NewValidationProblem reports field-level messages under extensions.fields.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}

func NewConflictProblem(detail string) ProblemDetail {
	return ErrConflict.WithDetail(detail)
}
