package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", NewNotFoundError("Episode", 1), fiber.StatusNotFound},
		{"validation", NewValidationError("bad input"), fiber.StatusBadRequest},
		{"conflict", NewConflictError("duplicate"), fiber.StatusConflict},
		{"unauthorized", NewUnauthorizedError("nope"), fiber.StatusUnauthorized},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"upstream status wins", NewUpstreamError("quota", fiber.StatusForbidden), fiber.StatusForbidden},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("ctx: %w", NewNotFoundError("Book", 2)), fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Internal server error")
}
