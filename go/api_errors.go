package pharmatrackserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	assistantapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/application"
	assistantports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/assistant/ports"
	cartapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/application"
	inventorymapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/http/mapper"
	inventoryapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application"
	inventoryports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	ordersapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application"
	ordersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
	usersapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application"
	usersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
	apierrors "github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("",
	notFoundProblems,
	invalidInputProblems,
	conflictProblems,
	authProblems,
	unavailableProblems,
)

func notFoundProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, inventoryports.ErrNotFound),
		errors.Is(err, ordersports.ErrNotFound),
		errors.Is(err, ordersports.ErrUnknownMedicine),
		errors.Is(err, cartapp.ErrNotFound),
		errors.Is(err, usersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func invalidInputProblems(err error) (apierrors.ProblemDetail, bool) {
	var dateErr *inventorymapper.DateError
	if errors.As(err, &dateErr) {
		return apierrors.NewValidationProblem(map[string]string{dateErr.Field: dateErr.Error()}).WithDetail(err.Error()), true
	}
	switch {
	case errors.Is(err, inventoryapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, usersapp.ErrInvalidInput),
		errors.Is(err, assistantapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func conflictProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersports.ErrIdempotencyConflict),
		errors.Is(err, usersapp.ErrConflict),
		errors.Is(err, inventoryports.ErrStaleConfirmation):
		return apierrors.NewConflictProblem(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func authProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, usersapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, usersapp.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(forbiddenDetail(err)), true
	}
	return apierrors.ProblemDetail{}, false
}

// forbiddenDetail drops the sentinel prefix so the sign-in message reads as written.
func forbiddenDetail(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, usersapp.ErrForbidden.Error()+": "); ok {
		return rest
	}
	return msg
}

func unavailableProblems(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, assistantports.ErrUnavailable),
		errors.Is(err, assistantapp.ErrGeneration),
		errors.Is(err, ordersports.ErrInvoicesUnavailable),
		errors.Is(err, inventoryports.ErrLedgerUnavailable):
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondServiceError maps application errors onto problem responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBindError reports a malformed body, with per-field messages when validation failed.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldName(fe)] = fieldMessage(fe)
		}
		respondProblem(c, apierrors.NewValidationProblem(fields).WithDetail("request body failed validation"))
		return
	}
	respondError(c, http.StatusBadRequest, err)
}

// respondError preserves the status-first call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.Namespace()
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

func unavailable(detail string) apierrors.ProblemDetail {
	return apierrors.ErrUnavailable.WithDetail(detail)
}
