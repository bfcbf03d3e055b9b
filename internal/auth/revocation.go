package auth

import (
	"context"
	"time"
)

// RevocationStore records tokens invalidated before their natural expiry.
// The default deployment uses NoopRevocationStore, which makes logout a
// client-side operation only; a durable implementation can be swapped in
// without touching the middleware or handlers.
type RevocationStore interface {
	// Revoke marks a token as invalid until exp, after which the entry
	// may be discarded.
	Revoke(ctx context.Context, token string, exp time.Time) error

	// IsRevoked reports whether the token has been revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// NoopRevocationStore accepts revocations and remembers none of them.
type NoopRevocationStore struct{}

func (NoopRevocationStore) Revoke(ctx context.Context, token string, exp time.Time) error {
	return nil
}

func (NoopRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	return false, nil
}
