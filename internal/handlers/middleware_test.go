package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_Rejections(t *testing.T) {
	env := newTestEnv(t)

	expired, err := env.tokens.IssueWithTTL(1, -time.Minute)
	require.NoError(t, err)

	revoked, err := env.tokens.Issue(1)
	require.NoError(t, err)
	require.NoError(t, env.revocations.Revoke(context.Background(), revoked, time.Now().Add(time.Hour)))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "No token provided"},
		{"wrong scheme", "Token abc", "No token provided"},
		{"bearer with no token", "Bearer ", "No token provided"},
		{"garbage token", "Bearer not-a-jwt", "Failed to authenticate token"},
		{"expired token", "Bearer " + expired, "Token expired"},
		{"revoked token", "Bearer " + revoked, "Token revoked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/entry", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.want, errorMessage(t, rec))
		})
	}
}
