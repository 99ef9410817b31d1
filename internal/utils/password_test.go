package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("toto1234!")
	require.NoError(t, err)
	assert.NotEqual(t, "toto1234!", hash)

	assert.True(t, h.Compare(hash, "toto1234!"))
	assert.False(t, h.Compare(hash, "wrong"))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	assert.False(t, h.Compare("not-a-bcrypt-hash", "toto1234!"))
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(64).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}
