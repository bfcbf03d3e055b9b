// Package auth implements credential hashing and the JWT token lifecycle.
// The issuer and verifier are the same process, so tokens are signed with
// a process-wide symmetric key loaded once at startup.
package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed is returned when a token cannot be parsed or its
	// signature does not verify.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenExpired is returned when a token's signature is valid but
	// its expiration instant has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the decoded payload of an identity token.
type Claims struct {
	UserID    int
	ExpiresAt time.Time
}

// TokenService issues and verifies signed identity tokens. All fields are
// read-only after construction, so the service is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService with the given signing secret
// and default token lifetime.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the default lifetime applied by Issue.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue produces a signed token for the given user id with the default TTL.
func (s *TokenService) Issue(userID int) (string, error) {
	return s.IssueWithTTL(userID, s.ttl)
}

// IssueWithTTL produces a signed token for the given user id that expires
// after ttl.
func (s *TokenService) IssueWithTTL(userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify decodes a token string, checking signature integrity and
// expiration. It returns ErrTokenExpired for a well-signed but expired
// token and ErrTokenMalformed for anything else, including attacker-supplied
// garbage. It never panics.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	registered := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &registered, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenMalformed
	}
	if !token.Valid {
		return Claims{}, ErrTokenMalformed
	}

	userID, err := strconv.Atoi(strings.TrimSpace(registered.Subject))
	if err != nil || userID < 1 {
		return Claims{}, ErrTokenMalformed
	}

	claims := Claims{UserID: userID}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
