package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRandom_AvoidsReserved(t *testing.T) {
	gen := TimeRandom{}
	reserved := make(map[string]struct{})

	// Generate a batch, reserving each result before the next call.
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := gen.NextID("node", reserved)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, "node_"))
		_, dup := seen[id]
		require.False(t, dup, "generator returned a duplicate within a batch")
		seen[id] = struct{}{}
		reserved[id] = struct{}{}
	}
}

func TestSequence_SkipsReserved(t *testing.T) {
	gen := NewSequence("n")
	reserved := map[string]struct{}{"n-1": {}, "n-2": {}}

	id, err := gen.NextID("node", reserved)
	require.NoError(t, err)
	assert.Equal(t, "n-3", id)

	id, err = gen.NextID("node", reserved)
	require.NoError(t, err)
	assert.Equal(t, "n-4", id)
}
