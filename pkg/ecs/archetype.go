package ecs

import (
	"github.com/kelindar/bitmap"

	"github.com/vitruvian-labs/vitruvian/pkg/assert"
)

// archetypeID is the index of an archetype in the world's archetype list.
type archetypeID = int

// archetype groups the entities that have exactly the same set of component types. Component data
// is stored column-wise, one column per component type ordered by component ID, and row i of every
// column belongs to entities[i].
// NOTE: compCount caches components.Count(), which is O(n) on the bitmap.
type archetype struct {
	id         archetypeID
	components bitmap.Bitmap
	rows       sparseSet
	entities   []EntityID
	columns    []abstractColumn
	compCount  int
}

func newArchetype(aid archetypeID, components bitmap.Bitmap, columns []abstractColumn) *archetype {
	assert.That(components.Count() == len(columns), "mismatched number of columns and components")
	return &archetype{
		id:         aid,
		components: components,
		rows:       newSparseSet(),
		entities:   make([]EntityID, 0),
		columns:    columns,
		compCount:  len(columns),
	}
}

// exact returns true if the archetype has exactly the given component set.
func (a *archetype) exact(components bitmap.Bitmap) bool {
	if a.compCount != components.Count() {
		return false
	}
	return a.contains(components)
}

// contains returns true if the archetype has every component in the given set.
func (a *archetype) contains(components bitmap.Bitmap) bool {
	intersect := components.Clone(nil)
	intersect.And(a.components)
	return intersect.Count() == components.Count()
}

// intersects returns true if the archetype has any component in the given set.
func (a *archetype) intersects(components bitmap.Bitmap) bool {
	intersect := components.Clone(nil)
	intersect.And(a.components)
	return intersect.Count() > 0
}

func (a *archetype) hasComponent(cid componentID) bool {
	return a.components.Contains(cid)
}

func (a *archetype) hasEntity(eid EntityID) bool {
	_, ok := a.rows.get(eid)
	return ok
}

// -------------------------------------------------------------------------------------------------
// Entity operations
// -------------------------------------------------------------------------------------------------

// newEntity appends an entity with zero valued components and returns its row.
func (a *archetype) newEntity(eid EntityID) int {
	assert.That(!a.hasEntity(eid), "entity %d already in archetype %d", eid, a.id)

	a.entities = append(a.entities, eid)
	for _, col := range a.columns {
		col.extend()
		assert.That(col.len() == len(a.entities), "column %s length doesn't match entities", col.name())
	}

	row := len(a.entities) - 1
	a.rows.set(eid, row)
	return row
}

// newEntityWith appends an entity and fills its row with the given components. The components must
// match the archetype's component set.
func (a *archetype) newEntityWith(eid EntityID, components []Component) {
	assert.That(len(components) == a.compCount, "got %d components for archetype of %d",
		len(components), a.compCount)

	row := a.newEntity(eid)
	for _, c := range components {
		col := a.column(c.Name())
		assert.That(col != nil, "archetype %d has no column for %s", a.id, c.Name())
		col.setAbstract(row, c)
	}
}

// removeEntity removes an entity by swapping the last entity into its row.
func (a *archetype) removeEntity(eid EntityID) {
	row, exists := a.rows.get(eid)
	assert.That(exists, "entity %d is not in archetype %d", eid, a.id)

	last := len(a.entities) - 1
	a.entities[row] = a.entities[last]
	a.entities = a.entities[:last]

	for _, col := range a.columns {
		col.remove(row)
		assert.That(col.len() == len(a.entities), "column %s length doesn't match entities", col.name())
	}

	ok := a.rows.remove(eid)
	assert.That(ok, "entity %d isn't removed from rows", eid)

	// Nothing was swapped when the removed entity was the last one.
	if row == last {
		return
	}
	a.rows.set(a.entities[row], row)
}

// moveEntity moves an entity to the destination archetype, copying the components both archetypes
// share. Components only present in the destination are left at their zero value for the caller
// to set. Returns the entity's row in the destination.
func (a *archetype) moveEntity(destination *archetype, eid EntityID) int {
	assert.That(a != destination, "entity %d moved into its own archetype", eid)

	row, exists := a.rows.get(eid)
	assert.That(exists, "entity %d is not in archetype %d", eid, a.id)

	newRow := destination.newEntity(eid)
	for _, dst := range destination.columns {
		if src := a.column(dst.name()); src != nil {
			dst.setAbstract(newRow, src.getAbstract(row))
		}
	}

	a.removeEntity(eid)
	return newRow
}

// componentsOf returns the components of an entity in column order.
func (a *archetype) componentsOf(eid EntityID) []Component {
	row, exists := a.rows.get(eid)
	assert.That(exists, "entity %d is not in archetype %d", eid, a.id)

	out := make([]Component, 0, len(a.columns))
	for _, col := range a.columns {
		out = append(out, col.getAbstract(row))
	}
	return out
}

// column returns the column with the given component name, or nil.
func (a *archetype) column(name string) abstractColumn {
	for _, col := range a.columns {
		if col.name() == name {
			return col
		}
	}
	return nil
}
