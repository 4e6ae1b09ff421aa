package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation         = "https://cinerental.app/errors/validation"
	ErrorTypeNotFound           = "https://cinerental.app/errors/not-found"
	ErrorTypeUnauthorized       = "https://cinerental.app/errors/unauthorized"
	ErrorTypeForbidden          = "https://cinerental.app/errors/forbidden"
	ErrorTypeConflict           = "https://cinerental.app/errors/conflict"
	ErrorTypeInternal           = "https://cinerental.app/errors/internal"
	ErrorTypeAvailability       = "https://cinerental.app/errors/availability"
	ErrorTypeState              = "https://cinerental.app/errors/state-transition"
	ErrorTypeServiceUnavailable = "https://cinerental.app/errors/service-unavailable"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return c.JSON(http.StatusForbidden, ProblemDetails{
		Type:     ErrorTypeForbidden,
		Title:    "Forbidden",
		Status:   http.StatusForbidden,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewServiceUnavailableError creates a service-unavailable error response,
// used when an optional collaborator (e.g. document storage) isn't configured.
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeServiceUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// newDomainStatusError renders a *domain.Error whose kind maps to a status
// other than the fixed-status helpers above already cover.
func newDomainStatusError(c echo.Context, status int, errType, title, detail string, de *domain.Error) error {
	return c.JSON(status, ProblemDetails{
		Type:     errType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   detailsToValidationErrors(de),
	})
}

func detailsToValidationErrors(de *domain.Error) []ValidationError {
	if de == nil || len(de.Details) == 0 {
		return nil
	}
	errs := make([]ValidationError, 0, len(de.Details))
	for field, value := range de.Details {
		errs = append(errs, ValidationError{Field: field, Message: toString(value)})
	}
	return errs
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// WriteDomainError maps a service-layer error to its RFC 7807 response.
// Every engine in internal/service returns a tagged *domain.Error for
// expected failures, so handlers funnel every non-nil error here instead
// of re-deriving the mapping per endpoint.
func WriteDomainError(c echo.Context, err error) error {
	de, ok := domain.AsDomainError(err)
	if !ok {
		return NewInternalError(c, "an unexpected error occurred")
	}

	switch de.Kind {
	case domain.KindValidation:
		return NewValidationError(c, de.Message, nil)
	case domain.KindNotFound:
		return NewNotFoundError(c, de.Message)
	case domain.KindConflict:
		return NewConflictError(c, de.Message)
	case domain.KindAvailability:
		return newDomainStatusError(c, http.StatusConflict, ErrorTypeAvailability, "Availability Conflict", de.Message, de)
	case domain.KindState:
		return newDomainStatusError(c, http.StatusConflict, ErrorTypeState, "Invalid Status Transition", de.Message, de)
	case domain.KindBusiness, domain.KindPayment, domain.KindDocument:
		return NewValidationError(c, de.Message, nil)
	default:
		return NewInternalError(c, de.Message)
	}
}
