package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitruvian-labs/vitruvian/pkg/testutils"
)

// -------------------------------------------------------------------------------------------------
// Model-based fuzzing
//
// Random set/get/remove sequences are applied to both the sparse set and a map, and every result
// is compared.
// -------------------------------------------------------------------------------------------------

func TestSparseSet_ModelBasedFuzz(t *testing.T) {
	t.Parallel()
	prng := testutils.NewRand(t)

	impl := newSparseSet()
	model := make(map[EntityID]int, sparseCapacity)

	const (
		opsMax = 1 << 14
		maxKey = 5_000
	)
	weights := testutils.RandOpWeights(prng, []string{"set", "get", "remove"})

	for range opsMax {
		key := EntityID(prng.IntN(maxKey))

		switch testutils.RandWeightedOp(prng, weights) {
		case "set":
			value := prng.IntN(1 << 20)
			impl.set(key, value)
			model[key] = value

			got, ok := impl.get(key)
			assert.True(t, ok, "set(%d) then get should exist", key)
			assert.Equal(t, value, got, "set(%d) then get value mismatch", key)

		case "get":
			if len(model) > 0 && prng.Float64() < 0.8 {
				key = testutils.RandMapKey(prng, model)
			}
			gotImpl, okImpl := impl.get(key)
			gotModel, okModel := model[key]

			assert.Equal(t, okModel, okImpl, "get(%d) existence mismatch", key)
			if okImpl {
				assert.Equal(t, gotModel, gotImpl, "get(%d) value mismatch", key)
			}
			if !okImpl && int(key) < len(impl) {
				assert.Equal(t, sparseTombstone, impl[key], "get(%d) missing key should be tombstone", key)
			}

		case "remove":
			okImpl := impl.remove(key)
			_, okModel := model[key]
			delete(model, key)

			assert.Equal(t, okModel, okImpl, "remove(%d) existence mismatch", key)
			_, ok := impl.get(key)
			assert.False(t, ok, "remove(%d) then get should not exist", key)
		}
	}

	for key, want := range model {
		got, ok := impl.get(key)
		assert.True(t, ok, "key %d missing after fuzz", key)
		assert.Equal(t, want, got, "key %d value mismatch after fuzz", key)
	}
}

func TestSparseSet_Grow(t *testing.T) {
	t.Parallel()

	s := newSparseSet()
	assert.Len(t, s, sparseCapacity)

	s.set(EntityID(sparseCapacity*3), 7)
	assert.GreaterOrEqual(t, len(s), sparseCapacity*3+1)

	got, ok := s.get(EntityID(sparseCapacity * 3))
	assert.True(t, ok)
	assert.Equal(t, 7, got)

	for i := range sparseCapacity * 3 {
		_, ok := s.get(EntityID(i))
		assert.False(t, ok, "key %d should be empty after grow", i)
	}
}
