package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestParseResponseError_Structured(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"bad request", http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"unprocessable", http.StatusUnprocessableEntity, apperrors.ErrInvalidInput},
		{"conflict", http.StatusConflict, apperrors.ErrConflict},
		{"forbidden", http.StatusForbidden, apperrors.ErrUnauthorized},
		{"unavailable", http.StatusServiceUnavailable, apperrors.ErrServiceUnavail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseResponseError(response(tt.status, `{"error":{"code":"X","message":"boom"}}`), "catalog")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), "catalog: boom")
		})
	}
}

func TestParseResponseError_Unstructured(t *testing.T) {
	err := ParseResponseError(response(http.StatusNotFound, "no such product"), "catalog")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "no such product")
}

func TestParseResponseError_ServerError(t *testing.T) {
	err := ParseResponseError(response(http.StatusInternalServerError, `{"error":{"code":"INTERNAL_ERROR","message":"db"}}`), "catalog")
	require.Error(t, err)

	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
	assert.Contains(t, err.Error(), "500/INTERNAL_ERROR")
}

func TestParseResponseError_OtherStatusKeepsCode(t *testing.T) {
	err := ParseResponseError(response(http.StatusGone, `{"error":{"code":"GONE","message":"retired"}}`), "catalog")

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "GONE", appErr.Code)
	assert.Equal(t, http.StatusGone, appErr.Status)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(404))
	assert.False(t, IsClientError(500))
	assert.False(t, IsClientError(200))
}
