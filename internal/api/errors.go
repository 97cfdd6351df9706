package api

import (
	"errors"
	"net/http"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/service/auth"
	"github.com/taskloop/taskloop-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Duplicate username/email maps to 400 rather than 409 to match the
// reference wire behavior, and ownership mismatches arrive here already
// flattened into ErrTaskNotFound so they answer 404 like any other
// missing resource.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErr):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal details never pass through; unknown errors collapse
// into a generic server message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Server Error"
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		return "Access denied. Invalid token."

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username is already taken"

	case store.IsDuplicateError(err):
		return "User already exists with this email or username"

	case errors.Is(err, domain.ErrInvalidQuery):
		return "Invalid query parameters"

	case errors.As(err, &validationErr):
		return validationErr.Error()

	default:
		return "Server Error"
	}
}
