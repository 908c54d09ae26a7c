package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestErrorKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrBackendWriteFailed, "Failed to create habit", cause)

	assert.ErrorIs(t, err, ErrBackendWriteFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Failed to create habit: connection refused", err.Error())

	wrapped := fmt.Errorf("failed to create habit: %w", err)
	assert.ErrorIs(t, wrapped, ErrBackendWriteFailed)
	assert.Equal(t, "Failed to create habit", Message(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{Validation("displayName is required"), http.StatusBadRequest},
		{NotFound("Habit not found"), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", NotFound("Log not found")), http.StatusNotFound},
		{ErrBackendUnavailable, http.StatusInternalServerError},
		{ErrBackendNotConfigured, http.StatusInternalServerError},
		{Wrap(ErrBackendWriteFailed, "write", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "%v", tt.err)
	}
}

func TestMessage_SentinelFallbacks(t *testing.T) {
	assert.Equal(t, "Google Sheets not configured", Message(ErrBackendNotConfigured))
	assert.Equal(t, "Storage backend is unavailable", Message(fmt.Errorf("read: %w", ErrBackendUnavailable)))
	assert.Equal(t, "Internal server error", Message(errors.New("x")))
}

func TestFromValidator(t *testing.T) {
	type payload struct {
		DisplayName string `validate:"required"`
		GoalValue   int    `validate:"gte=0"`
	}

	err := validator.New().Struct(payload{GoalValue: -1})
	got := FromValidator(err)

	assert.ErrorIs(t, got, ErrValidation)
	assert.Equal(t, "DisplayName is required; GoalValue must not be negative", Message(got))
}
