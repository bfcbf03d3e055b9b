package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	hashed, err := HashPassword("pw12345")
	require.NoError(t, err)
	assert.NotEqual(t, "pw12345", hashed)
	assert.NotContains(t, hashed, "pw12345")
}

func TestHashPassword_SaltedOutputVaries(t *testing.T) {
	first, err := HashPassword("pw12345")
	require.NoError(t, err)
	second, err := HashPassword("pw12345")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCheckPassword_Roundtrip(t *testing.T) {
	hashed, err := HashPassword("pw12345")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword("pw12345", hashed))
	assert.ErrorIs(t, CheckPassword("wrongpass", hashed), ErrPasswordMismatch)
}

func TestCheckPassword_MismatchAcrossSecrets(t *testing.T) {
	hashed, err := HashPassword("other-secret")
	require.NoError(t, err)

	assert.ErrorIs(t, CheckPassword("pw12345", hashed), ErrPasswordMismatch)
}

func TestCheckPassword_MalformedStoredHash(t *testing.T) {
	err := CheckPassword("pw12345", "not-a-bcrypt-hash")
	assert.ErrorIs(t, err, ErrInvalidStoredHash)
}
