package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/infrastructure/service/jwt"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
)

func newTestJWT(t *testing.T) *jwt.JWTService {
	t.Helper()
	svc, err := jwt.NewJWTService(jwt.Config{Secret: "test-secret", AccessTokenTTL: time.Minute})
	require.NoError(t, err)
	return svc
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	svc := newTestJWT(t)
	valid, err := svc.GenerateAccessToken(7)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUser   int64
	}{
		{name: "valid token", header: "Bearer " + valid, expectedStatus: http.StatusOK, expectedUser: 7},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-token", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(svc, logger.NewNopLogger())

			var seen *int64
			h := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
				seen = RequesterID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, tt.expectedUser, *seen)
				return
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.EqualValues(t, http.StatusUnauthorized, body["status"])
			assert.Nil(t, seen)
		})
	}
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	svc := newTestJWT(t)
	m := NewAuthMiddleware(svc, logger.NewNopLogger())

	var seen *int64
	h := m.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		seen = RequesterID(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, seen)

	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Authorization", "Bearer broken")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, seen)

	token, err := svc.GenerateAccessToken(3)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, int64(3), *seen)
}

func TestCorrelationIDMiddleware(t *testing.T) {
	var fromCtx string
	h := CorrelationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = logger.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", fromCtx)
	assert.Equal(t, "abc-123", rr.Header().Get(CorrelationIDHeader))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, fromCtx)
	assert.NotEqual(t, "abc-123", fromCtx)
	assert.Equal(t, fromCtx, rr.Header().Get(CorrelationIDHeader))
}
