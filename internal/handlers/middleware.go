package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/daybook-app/apiserver/internal/auth"
	"github.com/daybook-app/apiserver/internal/logger"
)

// RequireAuth constructs middleware that enforces bearer-token
// authentication. Verified requests carry the resolved user id and the
// raw token in the request context; everything else is rejected with 401
// before any handler runs.
func RequireAuth(tokens *auth.TokenService, revocations auth.RevocationStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				writeError(w, http.StatusUnauthorized, "Failed to authenticate token")
				return
			}

			revoked, err := revocations.IsRevoked(r.Context(), tokenString)
			if err != nil {
				logger.FromRequest(r).Err(err).Msg("revocation check failed")
				writeError(w, http.StatusInternalServerError, "Failed to authenticate token")
				return
			}
			if revoked {
				writeError(w, http.StatusUnauthorized, "Token revoked")
				return
			}

			ctx := context.WithValue(r.Context(), contextUserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, contextTokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}
