package types

import (
	"github.com/rotisserie/eris"

	"github.com/vitruvian-labs/vitruvian/pkg/ecs"
	"github.com/vitruvian-labs/vitruvian/pkg/schema"
)

// RegisterComponents registers every core component with the world.
func RegisterComponents(w *ecs.World) error {
	if err := ecs.Register[Name](w); err != nil {
		return eris.Wrap(err, "failed to register name")
	}
	if err := ecs.Register[Damage](w); err != nil {
		return eris.Wrap(err, "failed to register damage")
	}
	return nil
}

// Register adds the schema of every core component to the registry.
func Register(reg *schema.Registry) error {
	if err := schema.Register[Name](reg); err != nil {
		return eris.Wrap(err, "failed to register name schema")
	}
	if err := schema.Register[Damage](reg); err != nil {
		return eris.Wrap(err, "failed to register damage schema")
	}
	return nil
}
