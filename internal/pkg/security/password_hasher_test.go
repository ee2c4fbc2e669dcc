package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, CheckPasswordHash("s3cret", hash))
	assert.ErrorIs(t, CheckPasswordHash("wrong", hash), ErrInvalidCredentials)

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestCredentials_VerifyPlain(t *testing.T) {
	c := Credentials{Username: "admin", Password: "password"}

	assert.True(t, c.Verify("admin", "password"))
	assert.False(t, c.Verify("admin", "Password"))
	assert.False(t, c.Verify("root", "password"))
	assert.False(t, c.Verify("", ""))
}

func TestCredentials_VerifyHashTakesPrecedence(t *testing.T) {
	hash, err := HashPassword("from-hash")
	require.NoError(t, err)
	c := Credentials{Username: "admin", Password: "plain", Hash: hash}

	assert.True(t, c.Verify("admin", "from-hash"))
	assert.False(t, c.Verify("admin", "plain"))
}
