package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/vitruvian-labs/vitruvian/pkg/assert"
)

// Register registers the component type T with the world. Registering the same type again is a
// no-op. Add and Set register their component type on first use, so explicit registration is only
// needed before Create, FromRecord, Search or Deserialize refer to the type by name.
func Register[T Component](w *World) error {
	_, err := register[T](w)
	return err
}

// ComponentType returns the reflected type of T, or ErrInvalidComponentType if T is a pointer or
// an interface. Callers must check it before calling Name on a zero T.
func ComponentType[T Component]() (reflect.Type, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if kind := typ.Kind(); kind == reflect.Pointer || kind == reflect.Interface {
		return nil, eris.Wrapf(ErrInvalidComponentType, "%s", typ)
	}
	return typ, nil
}

func register[T Component](w *World) (componentID, error) {
	typ, err := ComponentType[T]()
	if err != nil {
		return 0, eris.Wrap(err, "failed to register component")
	}
	var zero T
	cid, err := w.components.register(zero.Name(), typ, newColumnFactory[T](), newComponentDecoder[T]())
	if err != nil {
		return 0, eris.Wrap(err, "failed to register component")
	}
	return cid, nil
}

// lookup returns the ID of the registered component type T.
func lookup[T Component](w *World) (componentID, error) {
	typ, err := ComponentType[T]()
	if err != nil {
		return 0, err
	}
	var zero T
	cid, err := w.components.getID(zero.Name())
	if err != nil {
		return 0, err
	}
	if w.components.types[cid] != typ {
		return 0, eris.Wrapf(ErrComponentNotRegistered, "component %q is registered as %s, not %s",
			zero.Name(), w.components.types[cid], typ)
	}
	return cid, nil
}

// Create creates an entity holding the given components, or an empty entity when none are given.
// Every component type must already be registered and appear at most once.
func Create(w *World, components ...Component) (EntityID, error) {
	eid, err := w.newEntity(components)
	if err != nil {
		return 0, eris.Wrap(err, "failed to create entity")
	}
	return eid, nil
}

// Destroy deletes an entity and all its components. Returns true if the entity existed.
func Destroy(w *World, eid EntityID) bool {
	return w.removeEntity(eid)
}

// Alive reports whether an entity exists in the world.
func Alive(w *World, eid EntityID) bool {
	return w.entities.isAlive(eid)
}

// Add attaches a component to an entity. An entity holds at most one component of each type: if it
// already has a T, ErrComponentExists is returned and the entity is left unchanged. Use Set to
// replace an existing value.
func Add[T Component](w *World, eid EntityID, component T) error {
	cid, err := register[T](w)
	if err != nil {
		return err
	}
	arch, err := w.archetypeOf(eid)
	if err != nil {
		return err
	}
	if arch.hasComponent(cid) {
		return eris.Wrapf(ErrComponentExists, "entity %d already has %s", eid, component.Name())
	}
	attach(w, eid, arch, cid, component)
	return nil
}

// Set sets a component on an entity, replacing the current value if the entity already has one
// and attaching it otherwise.
func Set[T Component](w *World, eid EntityID, component T) error {
	cid, err := register[T](w)
	if err != nil {
		return err
	}
	arch, err := w.archetypeOf(eid)
	if err != nil {
		return err
	}

	if !arch.hasComponent(cid) {
		attach(w, eid, arch, cid, component)
		return nil
	}

	col, ok := getColumn[T](arch)
	assert.That(ok, "archetype %d is missing column %s", arch.id, component.Name())
	row, _ := arch.rows.get(eid)
	col.set(row, component)

	w.logger.Debug().
		Uint32("entity_id", uint32(eid)).
		Str("component_name", component.Name()).
		Msg("component updated")
	return nil
}

// Get returns an entity's component of type T.
func Get[T Component](w *World, eid EntityID) (T, error) {
	var zero T
	cid, err := lookup[T](w)
	if err != nil {
		return zero, err
	}
	arch, err := w.archetypeOf(eid)
	if err != nil {
		return zero, err
	}
	if !arch.hasComponent(cid) {
		return zero, eris.Wrapf(ErrComponentNotFound, "entity %d, component %s", eid, zero.Name())
	}

	col, ok := getColumn[T](arch)
	assert.That(ok, "archetype %d is missing column %s", arch.id, zero.Name())
	row, _ := arch.rows.get(eid)
	return col.get(row), nil
}

// Has reports whether an entity has a component of type T. Returns false if the entity doesn't
// exist.
func Has[T Component](w *World, eid EntityID) bool {
	_, err := Get[T](w, eid)
	return err == nil
}

// Remove detaches the component of type T from an entity.
func Remove[T Component](w *World, eid EntityID) error {
	var zero T
	cid, err := lookup[T](w)
	if err != nil {
		return err
	}
	arch, err := w.archetypeOf(eid)
	if err != nil {
		return err
	}
	if !arch.hasComponent(cid) {
		return eris.Wrapf(ErrComponentNotFound, "entity %d, component %s", eid, zero.Name())
	}

	components := arch.components.Clone(nil)
	components.Remove(cid)
	to, _ := w.moveEntity(eid, arch, components)

	logEntity(&w.logger, zerolog.DebugLevel, "component removed", eid, to)
	return nil
}

// Components returns all components of an entity ordered by registration.
func Components(w *World, eid EntityID) ([]Component, error) {
	arch, err := w.archetypeOf(eid)
	if err != nil {
		return nil, err
	}
	return arch.componentsOf(eid), nil
}

// attach moves an entity to the archetype that additionally holds cid and stores the component.
func attach[T Component](w *World, eid EntityID, from *archetype, cid componentID, component T) {
	components := from.components.Clone(nil)
	components.Set(cid)
	to, row := w.moveEntity(eid, from, components)

	col, ok := getColumn[T](to)
	assert.That(ok, "archetype %d is missing column %s", to.id, component.Name())
	col.set(row, component)

	logEntity(&w.logger, zerolog.DebugLevel, "component attached", eid, to)
}
