// AngelaMos | 2026
// handler_test.go

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, provider UserProvider) chi.Router {
	t.Helper()

	router := chi.NewRouter()
	NewHandler(newTestService(t, provider)).RegisterRoutes(router)
	return router
}

func postJSON(
	t *testing.T,
	router chi.Router,
	path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint_Success(t *testing.T) {
	provider := newFakeUserProvider()
	provider.add(t, "alice@example.com", "correct-horse", false)
	router := newAuthRouter(t, provider)

	rec := postJSON(t, router, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Success bool          `json:"success"`
		Data    TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.AccessToken)
	assert.Equal(t, "Bearer", envelope.Data.TokenType)
	assert.Equal(t, 60, envelope.Data.ExpiresIn)
}

func TestLoginEndpoint_GenericFailures(t *testing.T) {
	provider := newFakeUserProvider()
	provider.add(t, "alice@example.com", "correct-horse", false)
	provider.add(t, "locked@example.com", "correct-horse", true)
	router := newAuthRouter(t, provider)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "wrong-password"},
		{"unknown email", "nobody@example.com", "correct-horse"},
		{"disabled account", "locked@example.com", "correct-horse"},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, "/auth/login", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	// All three failure modes must be indistinguishable to the caller.
	require.Len(t, bodies, 3)
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}

func TestLoginEndpoint_ValidationError(t *testing.T) {
	router := newAuthRouter(t, newFakeUserProvider())

	rec := postJSON(t, router, "/auth/login", map[string]string{
		"email":    "not-an-email",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpoint_Success(t *testing.T) {
	router := newAuthRouter(t, newFakeUserProvider())

	rec := postJSON(t, router, "/auth/register", map[string]string{
		"email":    "bob@example.com",
		"password": "correct-horse",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool         `json:"success"`
		Data    UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "bob@example.com", envelope.Data.Email)
	assert.Equal(t, "user", envelope.Data.Role)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	provider := newFakeUserProvider()
	provider.add(t, "bob@example.com", "correct-horse", false)
	router := newAuthRouter(t, provider)

	rec := postJSON(t, router, "/auth/register", map[string]string{
		"email":    "bob@example.com",
		"password": "another-pass",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
