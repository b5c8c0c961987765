package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/security"
)

func TestAuthenticate(t *testing.T) {
	tokens := security.NewTokenManager("test-secret-test-secret-test-secret", time.Hour)

	var captured domain.Principal
	handler := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Valid token attaches principal", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(42, "host@test.com", []string{"HOST"})
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/host/cars", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int32(42), captured.UserID)
		assert.True(t, captured.HasRole(domain.RoleHost))
	})

	t.Run("Missing header refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/host/cars", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/host/cars", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Validation", domain.NewValidationError(map[string]string{"start_date": "required"}), http.StatusUnprocessableEntity},
		{"Authorization", domain.NewAuthorizationError("host role required"), http.StatusForbidden},
		{"NotFound", domain.NewNotFoundError("car", 7), http.StatusNotFound},
		{"Conflict", domain.NewConflictError("car is not available for the requested dates"), http.StatusConflict},
		{"Storage", domain.NewStorageError(errors.New("connection reset")), http.StatusInternalServerError},
		{"Untyped", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestRecover(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() { handler.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
