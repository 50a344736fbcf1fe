package notifier

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDTokenGenerator_Generate(t *testing.T) {
	generator := UUIDTokenGenerator{}

	token := generator.Generate()
	assert.NotEmpty(t, token)

	parsed, err := uuid.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestUUIDTokenGenerator_NoCollisions(t *testing.T) {
	generator := UUIDTokenGenerator{}

	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		token := generator.Generate()
		_, dup := seen[token]
		require.False(t, dup, "collision after %d tokens", i)
		seen[token] = struct{}{}
	}
}
