package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/drillhq/drill-api/internal/domain"
	"github.com/drillhq/drill-api/internal/service/auth"
	"github.com/drillhq/drill-api/internal/service/list_curation"
	"github.com/drillhq/drill-api/internal/service/review"
	"github.com/drillhq/drill-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, list_curation.ErrNotOwner):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, review.ErrProblemNotFound),
		errors.Is(err, list_curation.ErrListNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Published lists freeze their name and cannot be deleted.
	case errors.Is(err, list_curation.ErrListPublic):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, review.ErrInvalidMultiplier),
		errors.Is(err, list_curation.ErrInvalidSortKey),
		errors.Is(err, domain.ErrListNameEmpty),
		errors.Is(err, domain.ErrProblemTitleEmpty),
		errors.Is(err, domain.ErrProblemDifficultyRange),
		errors.Is(err, domain.ErrInvalidMultiplier):
		return http.StatusBadRequest

	// Retryable contention: the client should repeat the whole request.
	case errors.Is(err, store.ErrConflict):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, list_curation.ErrNotOwner):
		return "You do not own this list"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrProblemNotFound),
		errors.Is(err, review.ErrProblemNotFound):
		return "Problem not found"

	case errors.Is(err, store.ErrListNotFound),
		errors.Is(err, list_curation.ErrListNotFound):
		return "List not found"

	case errors.Is(err, store.ErrScheduleStateNotFound):
		return "Schedule state not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, list_curation.ErrListPublic):
		return "Published lists cannot be renamed or deleted"

	// Bad request errors
	case errors.Is(err, review.ErrInvalidMultiplier),
		errors.Is(err, domain.ErrInvalidMultiplier):
		return "Multiplier must be positive"

	case errors.Is(err, list_curation.ErrInvalidSortKey):
		return "Invalid sort key"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Retryable contention
	case errors.Is(err, store.ErrConflict):
		return "Temporary conflict, please retry"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation
	// for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt":
		return "must be greater than zero"
	case "url":
		return "invalid URL"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
