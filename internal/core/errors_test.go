// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("service: %w", NotFoundError("room"))

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "room not found", appErr.Message)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
		code   string
	}{
		{ValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{MissingFieldError("x"), http.StatusBadRequest, "MISSING_FIELD"},
		{ConflictError("x", "ROOM_OCCUPIED"), http.StatusBadRequest, "ROOM_OCCUPIED"},
		{UnauthorizedError(""), http.StatusUnauthorized, "UNAUTHORIZED"},
		{ForbiddenError(""), http.StatusForbidden, "FORBIDDEN"},
		{TokenExpiredError(), http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{TokenInvalidError(), http.StatusUnauthorized, "TOKEN_INVALID"},
		{InternalError(), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

type sample struct {
	RoomNumber string `validate:"required"`
	Email      string `validate:"omitempty,email"`
	Name       string `validate:"omitempty,max=3"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := v.Struct(sample{Email: "nope", Name: "toolong"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "room_number is required")
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "name must be at most 3 characters")
	assert.True(t, HasMissingField(err))

	err = v.Struct(sample{RoomNumber: "A", Email: "nope"})
	require.Error(t, err)
	assert.False(t, HasMissingField(err))

	assert.Equal(t, "invalid request", FormatValidationError(errors.New("other")))
	assert.False(t, HasMissingField(errors.New("other")))
}
