package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_GenerateV7(t *testing.T) {
	id := NewUUIDGenerator().Generate()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestNewSessionToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		token := NewSessionToken()
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}

		parsed, err := uuid.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	}
}
