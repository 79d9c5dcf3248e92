package ecs

import (
	"reflect"

	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"

	"github.com/vitruvian-labs/vitruvian/pkg/assert"
	"github.com/vitruvian-labs/vitruvian/pkg/codec"
)

// Component is implemented by every value that can be attached to an entity. Components are plain
// data; Name is the stable identifier used for registration, records, search, and schemas.
type Component interface { //nolint:iface // marker for attachable types
	// Name returns a unique, non-empty identifier for the component type. It must be the same for
	// every value of the type and across program executions.
	Name() string
}

// componentID is the dense index of a registered component type. It doubles as the bit position in
// archetype bitmaps.
type componentID = uint32

// componentDecoder decodes the JSON form of a registered component.
type componentDecoder func([]byte) (Component, error)

// componentManager tracks registered component types. Slices are indexed by componentID.
type componentManager struct {
	catalog   map[string]componentID
	names     []string
	types     []reflect.Type
	factories []columnFactory
	decoders  []componentDecoder
}

func newComponentManager() componentManager {
	return componentManager{
		catalog:   make(map[string]componentID),
		names:     make([]string, 0),
		types:     make([]reflect.Type, 0),
		factories: make([]columnFactory, 0),
		decoders:  make([]componentDecoder, 0),
	}
}

// register adds a component type and returns its ID. Registering the same type twice returns the
// existing ID; a different type reusing a registered name is an error.
func (cm *componentManager) register(
	name string, typ reflect.Type, factory columnFactory, decoder componentDecoder,
) (componentID, error) {
	if name == "" {
		return 0, eris.Errorf("component name of %s cannot be empty", typ)
	}
	if cid, exists := cm.catalog[name]; exists {
		if cm.types[cid] != typ {
			return 0, eris.Errorf("component name %q is already used by %s, cannot register %s",
				name, cm.types[cid], typ)
		}
		return cid, nil
	}

	cid := componentID(len(cm.names)) //nolint:gosec // bounded by the number of component types
	cm.catalog[name] = cid
	cm.names = append(cm.names, name)
	cm.types = append(cm.types, typ)
	cm.factories = append(cm.factories, factory)
	cm.decoders = append(cm.decoders, decoder)
	assert.That(len(cm.names) == len(cm.factories), "component catalog out of sync")

	return cid, nil
}

// getID returns a component's ID given its name.
func (cm *componentManager) getID(name string) (componentID, error) {
	cid, exists := cm.catalog[name]
	if !exists {
		return 0, eris.Wrapf(ErrComponentNotRegistered, "component %q", name)
	}
	return cid, nil
}

// toBitmap returns the component set for the given names. Unknown names are an error.
func (cm *componentManager) toBitmap(names []string) (bitmap.Bitmap, error) {
	var bm bitmap.Bitmap
	for _, name := range names {
		cid, err := cm.getID(name)
		if err != nil {
			return nil, err
		}
		bm.Set(cid)
	}
	return bm, nil
}

// componentsToBitmap returns the component set of a list of component values. Listing the same
// type twice is an error since an entity holds at most one of each.
func (cm *componentManager) componentsToBitmap(components []Component) (bitmap.Bitmap, error) {
	var bm bitmap.Bitmap
	for _, c := range components {
		if c == nil || reflect.TypeOf(c).Kind() == reflect.Pointer {
			return nil, eris.Wrapf(ErrInvalidComponentType, "%T", c)
		}
		cid, err := cm.getID(c.Name())
		if err != nil {
			return nil, err
		}
		if typ := reflect.TypeOf(c); typ != cm.types[cid] {
			return nil, eris.Wrapf(ErrComponentNotRegistered, "component %q is registered as %s, not %s",
				c.Name(), cm.types[cid], typ)
		}
		if bm.Contains(cid) {
			return nil, eris.Wrapf(ErrComponentExists, "component %q listed more than once", c.Name())
		}
		bm.Set(cid)
	}
	return bm, nil
}

// decode decodes the JSON form of the named component.
func (cm *componentManager) decode(name string, bz []byte) (Component, error) {
	cid, err := cm.getID(name)
	if err != nil {
		return nil, err
	}
	return cm.decoders[cid](bz)
}

// createArchetype builds an empty archetype with one column per component in the set, ordered by
// component ID.
func (cm *componentManager) createArchetype(aid archetypeID, components bitmap.Bitmap) *archetype {
	columns := make([]abstractColumn, 0, components.Count())
	components.Range(func(cid uint32) {
		assert.That(int(cid) < len(cm.factories), "archetype references unregistered component %d", cid)
		columns = append(columns, cm.factories[cid]())
	})
	return newArchetype(aid, components, columns)
}

func newComponentDecoder[T Component]() componentDecoder {
	return func(bz []byte) (Component, error) {
		c, err := codec.Decode[T](bz)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
