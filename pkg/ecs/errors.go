package ecs

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotFound is returned when operating on an entity that was never created or has
	// been destroyed.
	ErrEntityNotFound = eris.New("entity does not exist")

	// ErrComponentNotRegistered is returned when a component name is not known to the world.
	ErrComponentNotRegistered = eris.New("component not registered")

	// ErrInvalidComponentType is returned for a component type parameter that is a pointer or
	// an interface. Components are stored by value, and such a type has no usable zero value.
	ErrInvalidComponentType = eris.New("component type must not be a pointer or an interface")

	// ErrComponentNotFound is returned when an entity doesn't have the requested component.
	ErrComponentNotFound = eris.New("entity doesn't contain component")

	// ErrComponentExists is returned by Add when the entity already holds a component of the
	// same type.
	ErrComponentExists = eris.New("entity already contains component")
)
