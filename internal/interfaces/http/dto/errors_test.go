package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"already canceled", ErrCodeAlreadyCanceled, http.StatusConflict},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"insufficient stock", ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{"invalid input", ErrCodeInvalidInput, http.StatusBadRequest},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"unauthorized", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"not configured", ErrCodeNotConfigured, http.StatusServiceUnavailable},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"domain not found", "NOT_FOUND", ErrCodeNotFound},
		{"domain insufficient stock", "INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		{"domain already canceled", "ALREADY_CANCELED", ErrCodeAlreadyCanceled},
		{"domain concurrency conflict", "CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"domain not configured", "NOT_CONFIGURED", ErrCodeNotConfigured},
		{"already normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"unknown passes through", "SOMETHING_CUSTOM", "SOMETHING_CUSTOM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNormalizedDomainCodesHaveStatusMapping(t *testing.T) {
	for legacy, normalized := range LegacyErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[normalized]
		assert.Truef(t, ok, "normalized code %s (from %s) has no HTTP status", normalized, legacy)
	}
}
