package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farehub/internal/http/middleware"
	"farehub/internal/service"
)

func protectedEndpoint(t *testing.T, tokens *service.TokenService) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operator, ok := middleware.OperatorFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Operator", operator)
		w.WriteHeader(http.StatusOK)
	})
	return middleware.Auth(tokens)(next)
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	token, err := tokens.GenerateToken("inspector")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ops/travelling", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedEndpoint(t, tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inspector", rec.Header().Get("X-Operator"))
}

func TestAuth_Rejections(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	foreign, err := service.NewTokenService("other-secret", time.Hour).GenerateToken("inspector")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"foreign secret", "Bearer " + foreign},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ops/travelling", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			protectedEndpoint(t, tokens).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
