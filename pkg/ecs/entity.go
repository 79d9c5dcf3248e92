package ecs

import (
	"math"
	"sync"

	"github.com/rotisserie/eris"
)

// EntityID identifies an entity within a world. IDs of destroyed entities are reused.
type EntityID uint32

// MaxEntityID is the largest entity ID a world hands out.
const MaxEntityID = math.MaxUint32 - 1

// entityManager allocates entity IDs and indexes each live entity to its archetype so lookups
// don't have to scan every archetype.
type entityManager struct {
	nextID     EntityID
	free       []EntityID
	entityArch map[EntityID]archetypeID
	mu         sync.Mutex
}

func newEntityManager() entityManager {
	return entityManager{
		nextID:     0,
		free:       make([]EntityID, 0),
		entityArch: make(map[EntityID]archetypeID),
	}
}

// new allocates an ID and maps it to the given archetype. Freed IDs are reused in FIFO order.
func (em *entityManager) new(aid archetypeID) (EntityID, error) {
	em.mu.Lock()
	defer em.mu.Unlock()

	var id EntityID
	if len(em.free) > 0 {
		id = em.free[0]
		em.free = em.free[1:]
	} else {
		if em.nextID > MaxEntityID {
			return 0, eris.New("max number of entities exceeded")
		}
		id = em.nextID
		em.nextID++
	}

	em.entityArch[id] = aid
	return id, nil
}

// remove releases an ID for reuse.
func (em *entityManager) remove(id EntityID) error {
	em.mu.Lock()
	defer em.mu.Unlock()

	if _, exists := em.entityArch[id]; !exists {
		return eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	delete(em.entityArch, id)
	em.free = append(em.free, id)
	return nil
}

// setArchetype records that an entity moved to another archetype.
func (em *entityManager) setArchetype(id EntityID, aid archetypeID) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.entityArch[id] = aid
}

// getArchetype returns the archetype an entity lives in.
func (em *entityManager) getArchetype(id EntityID) (archetypeID, error) {
	em.mu.Lock()
	defer em.mu.Unlock()

	aid, exists := em.entityArch[id]
	if !exists {
		return 0, eris.Wrapf(ErrEntityNotFound, "entity %d", id)
	}
	return aid, nil
}

func (em *entityManager) isAlive(id EntityID) bool {
	em.mu.Lock()
	defer em.mu.Unlock()
	_, exists := em.entityArch[id]
	return exists
}

func (em *entityManager) count() int {
	em.mu.Lock()
	defer em.mu.Unlock()
	return len(em.entityArch)
}
