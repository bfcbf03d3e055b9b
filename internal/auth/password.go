package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor applied to every stored password.
const bcryptCost = bcrypt.DefaultCost

var (
	// ErrPasswordMismatch is returned when a password does not match the
	// stored hash.
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrInvalidStoredHash is returned when the stored hash cannot be
	// parsed as a bcrypt hash. This indicates data corruption, not a
	// wrong password.
	ErrInvalidStoredHash = errors.New("invalid stored password hash")
)

// HashPassword derives a salted one-way hash safe for storage. The output
// differs between calls for the same input; use CheckPassword to compare.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a stored hash.
// It returns nil on match, ErrPasswordMismatch on a wrong password, and
// ErrInvalidStoredHash when the stored value is not a bcrypt hash.
func CheckPassword(plain, hashed string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return ErrInvalidStoredHash
	}
}
