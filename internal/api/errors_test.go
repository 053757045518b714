package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/drillhq/drill-api/internal/service/auth"
	"github.com/drillhq/drill-api/internal/service/list_curation"
	"github.com/drillhq/drill-api/internal/service/review"
	"github.com/drillhq/drill-api/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owner", list_curation.ErrNotOwner, http.StatusForbidden},
		{"problem not found", review.ErrProblemNotFound, http.StatusNotFound},
		{"list not found", list_curation.ErrListNotFound, http.StatusNotFound},
		{"store user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"list public freeze", list_curation.ErrListPublic, http.StatusConflict},
		{"invalid multiplier", review.ErrInvalidMultiplier, http.StatusBadRequest},
		{"invalid sort key", list_curation.ErrInvalidSortKey, http.StatusBadRequest},
		{"retryable conflict", store.ErrConflict, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{
			"wrapped sentinel",
			fmt.Errorf("context: %w", store.ErrProblemNotFound),
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Problem not found", GetSafeErrorMessage(review.ErrProblemNotFound))
	assert.Equal(t, "You do not own this list", GetSafeErrorMessage(list_curation.ErrNotOwner))
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	// Raw internal detail never leaks through.
	leaky := errors.New("pq: connection to host db-internal-1.example refused")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
