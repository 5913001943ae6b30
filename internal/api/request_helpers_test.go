package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/slidedeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathUUID(t *testing.T) {
	validID := uuid.New()

	tests := []struct {
		name        string
		paramName   string
		paramValue  string
		expectError bool
		expectedErr error
	}{
		{name: "valid UUID", paramName: "id", paramValue: validID.String()},
		{name: "empty parameter", paramName: "id", paramValue: "", expectError: true, expectedErr: domain.ErrValidation},
		{name: "invalid UUID format", paramName: "id", paramValue: "not-a-uuid", expectError: true, expectedErr: domain.ErrInvalidID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), tc.paramName, tc.paramValue)

			id, err := getPathUUID(req, tc.paramName)

			if tc.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, validID, id)
		})
	}
}

func TestHandlePathUUID(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "bogus")
	rec := httptest.NewRecorder()

	id, ok := handlePathUUID(rec, req, "id")

	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid identifier")
}
