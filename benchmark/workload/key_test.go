package workload

import (
	"testing"

	"TxnKV-Trace/configuration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashKey(t *testing.T) {
	assert.Equal(t, HashKey(17), HashKey(17))
	assert.Equal(t, [KeySize]byte{0x41, 0xd8, 0xce, 0x48}, HashKey(0))
	assert.Equal(t, [KeySize]byte{0xfc, 0x19, 0x3a, 0x9b}, HashKey(17))
	assert.Equal(t, [KeySize]byte{0xc0, 0x81, 0xa1, 0x5a}, HashKey(1000))

	seen := make(map[[KeySize]byte]bool)
	for id := uint32(0); id < 10000; id++ {
		seen[HashKey(id)] = true
	}
	// sequential ids should not collapse onto a few keys
	assert.Greater(t, len(seen), 9990)
}

func TestNewKeyRange(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 100; i++ {
		k, err := NewKeyRange(r, 1000)
		require.NoError(t, err)
		assert.Equal(t, uint32(1000), k.Count)
		assert.Less(t, k.End(), uint64(configuration.MaxKey))
	}

	_, err := NewKeyRange(r, 0)
	require.Error(t, err)
	_, err = NewKeyRange(r, configuration.MaxKey)
	require.Error(t, err)
}

func TestKeyRange_Pick(t *testing.T) {
	k := KeyRange{Begin: 500, Count: 10}
	r := NewRand(8)
	hit := make(map[uint32]bool)
	for i := 0; i < 1000; i++ {
		id := k.Pick(r)
		require.True(t, k.Contains(id), "id %v", id)
		hit[id] = true
	}
	assert.Len(t, hit, 10)
	assert.False(t, k.Contains(510))
	assert.False(t, k.Contains(499))
}
