package ecs

import (
	"github.com/rotisserie/eris"

	"github.com/vitruvian-labs/vitruvian/pkg/assert"
	"github.com/vitruvian-labs/vitruvian/pkg/codec"
)

// columnFactory creates an empty column for one component type.
type columnFactory func() abstractColumn

// abstractColumn is the type-erased view of a column used when the concrete component type isn't
// known, e.g. while moving an entity between archetypes.
type abstractColumn interface {
	len() int
	name() string
	extend()
	remove(row int)

	setAbstract(row int, component Component)
	getAbstract(row int) Component

	encode() ([][]byte, error)
	decode(data [][]byte) error
}

var _ abstractColumn = &column[Component]{}

// column stores the values of one component type for every entity of an archetype. Its length
// always matches the archetype's entity slice.
type column[T Component] struct {
	compName   string
	components []T
}

func newColumn[T Component]() *column[T] {
	var zero T
	const initialCapacity = 16
	return &column[T]{
		compName:   zero.Name(),
		components: make([]T, 0, initialCapacity),
	}
}

func newColumnFactory[T Component]() columnFactory {
	return func() abstractColumn {
		return newColumn[T]()
	}
}

func (c *column[T]) len() int {
	return len(c.components)
}

func (c *column[T]) name() string {
	return c.compName
}

// extend appends a zero value row for a new entity.
func (c *column[T]) extend() {
	var zero T
	c.components = append(c.components, zero)
}

// set stores a component in a row. Prefer it over setAbstract, which boxes the value.
func (c *column[T]) set(row int, component T) {
	assert.That(row < len(c.components), "column isn't extended for row %d", row)
	c.components[row] = component
}

func (c *column[T]) setAbstract(row int, component Component) {
	concrete, ok := component.(T)
	assert.That(ok, "column %s cannot hold component %s", c.compName, component.Name())
	c.set(row, concrete)
}

func (c *column[T]) get(row int) T {
	assert.That(row < len(c.components), "row %d out of range in column %s", row, c.compName)
	return c.components[row]
}

func (c *column[T]) getAbstract(row int) Component {
	return c.get(row)
}

// remove deletes a row by swapping the last row into its place, mirroring archetype.removeEntity.
func (c *column[T]) remove(row int) {
	assert.That(row < len(c.components), "row %d out of range in column %s", row, c.compName)

	last := len(c.components) - 1
	c.components[row] = c.components[last]
	var zero T
	c.components[last] = zero
	c.components = c.components[:last]
}

// encode returns the JSON form of every row.
func (c *column[T]) encode() ([][]byte, error) {
	data := make([][]byte, len(c.components))
	for i, component := range c.components {
		bz, err := codec.Encode(component)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to encode %s at row %d", c.compName, i)
		}
		data[i] = bz
	}
	return data, nil
}

// decode replaces the column's rows with the decoded data.
func (c *column[T]) decode(data [][]byte) error {
	components := make([]T, len(data))
	for i, bz := range data {
		component, err := codec.Decode[T](bz)
		if err != nil {
			return eris.Wrapf(err, "failed to decode %s at row %d", c.compName, i)
		}
		components[i] = component
	}
	c.components = components
	return nil
}

// getColumn returns the typed column for T in an archetype.
func getColumn[T Component](arch *archetype) (*column[T], bool) {
	var zero T
	name := zero.Name()
	for _, col := range arch.columns {
		if col.name() != name {
			continue
		}
		typed, ok := col.(*column[T])
		return typed, ok
	}
	return nil, false
}
