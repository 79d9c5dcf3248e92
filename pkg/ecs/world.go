package ecs

import (
	"reflect"

	"github.com/kelindar/bitmap"
	"github.com/rs/zerolog"

	"github.com/vitruvian-labs/vitruvian/pkg/assert"
)

// World owns every entity and its components. Entities with the same component set share an
// archetype, so adding or removing a component moves the entity to another archetype.
//
// A World is not safe for concurrent use.
type World struct {
	components componentManager
	entities   entityManager
	archetypes []*archetype // index is the archetype ID
	logger     zerolog.Logger
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		components: newComponentManager(),
		entities:   newEntityManager(),
		archetypes: make([]*archetype, 0),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	// Archetype 0 is always the empty archetype so new entities have somewhere to live.
	w.findOrCreateArchetype(bitmap.Bitmap{})
	return w
}

// ComponentTypes returns the registered component names mapped to their Go types.
func (w *World) ComponentTypes() map[string]reflect.Type {
	out := make(map[string]reflect.Type, len(w.components.names))
	for cid, name := range w.components.names {
		out[name] = w.components.types[cid]
	}
	return out
}

// ComponentNames returns the registered component names in registration order.
func (w *World) ComponentNames() []string {
	out := make([]string, len(w.components.names))
	copy(out, w.components.names)
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.count()
}

// findOrCreateArchetype returns the archetype with exactly the given component set, creating it
// if it doesn't exist yet.
func (w *World) findOrCreateArchetype(components bitmap.Bitmap) *archetype {
	for _, arch := range w.archetypes {
		if arch.exact(components) {
			return arch
		}
	}

	arch := w.components.createArchetype(len(w.archetypes), components)
	w.archetypes = append(w.archetypes, arch)
	w.logger.Debug().
		Int("archetype_id", arch.id).
		Int("total_components", arch.compCount).
		Msg("archetype created")
	return arch
}

// archetypeOf returns the archetype of a live entity.
func (w *World) archetypeOf(eid EntityID) (*archetype, error) {
	aid, err := w.entities.getArchetype(eid)
	if err != nil {
		return nil, err
	}
	assert.That(aid < len(w.archetypes), "entity %d maps to unknown archetype %d", eid, aid)
	return w.archetypes[aid], nil
}

// newEntity creates an entity holding the given components, which must all be registered.
func (w *World) newEntity(components []Component) (EntityID, error) {
	bm, err := w.components.componentsToBitmap(components)
	if err != nil {
		return 0, err
	}

	arch := w.findOrCreateArchetype(bm)
	eid, err := w.entities.new(arch.id)
	if err != nil {
		return 0, err
	}
	arch.newEntityWith(eid, components)

	logEntity(&w.logger, zerolog.DebugLevel, "entity created", eid, arch)
	return eid, nil
}

// removeEntity deletes an entity and all of its components.
func (w *World) removeEntity(eid EntityID) bool {
	arch, err := w.archetypeOf(eid)
	if err != nil {
		return false
	}
	arch.removeEntity(eid)
	err = w.entities.remove(eid)
	assert.That(err == nil, "failed to release entity %d: %v", eid, err)

	w.logger.Debug().Uint32("entity_id", uint32(eid)).Msg("entity destroyed")
	return true
}

// moveEntity moves an entity from its archetype to the one with the given component set and
// returns the destination archetype and the entity's row in it.
func (w *World) moveEntity(eid EntityID, from *archetype, components bitmap.Bitmap) (*archetype, int) {
	to := w.findOrCreateArchetype(components)
	row := from.moveEntity(to, eid)
	w.entities.setArchetype(eid, to.id)
	return to, row
}
