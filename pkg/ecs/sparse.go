package ecs

import "github.com/vitruvian-labs/vitruvian/pkg/assert"

// sparseSet maps entity IDs to rows in an archetype. Entity IDs are dense, so a slice indexed by
// ID beats a map here.
type sparseSet []int

const sparseCapacity = 64
const sparseTombstone = -1

func newSparseSet() sparseSet {
	s := make(sparseSet, sparseCapacity)
	for i := range s {
		s[i] = sparseTombstone
	}
	return s
}

// get returns the row for an entity and whether it exists.
func (s *sparseSet) get(key EntityID) (int, bool) {
	if int(key) >= len(*s) {
		return 0, false
	}
	row := (*s)[key]
	if row == sparseTombstone {
		return 0, false
	}
	return row, true
}

// set stores the row for an entity, growing the backing slice if needed.
func (s *sparseSet) set(key EntityID, row int) {
	assert.That(row >= 0, "row must be non-negative, got %d", row)

	if int(key) >= len(*s) {
		oldLen := len(*s)
		grown := make(sparseSet, max(oldLen*2, int(key)+1))
		copy(grown, *s)
		for i := oldLen; i < len(grown); i++ {
			grown[i] = sparseTombstone
		}
		*s = grown
	}
	(*s)[key] = row
}

// remove clears an entity's row. Returns true if the entity was present.
func (s *sparseSet) remove(key EntityID) bool {
	if _, ok := s.get(key); !ok {
		return false
	}
	(*s)[key] = sparseTombstone
	return true
}
