// Package types declares the components an entity can hold. Each component wraps a single value
// and encodes as that bare value: a Name as a JSON string, a Damage as the die name. Malformed
// input, including null, is rejected with a *codec.DeserializationError naming the component.
package types

import (
	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/vitruvian-labs/vitruvian/pkg/codec"
	"github.com/vitruvian-labs/vitruvian/pkg/ecs"
)

var (
	_ ecs.Component = Name{}
	_ ecs.Component = Damage{}
)

// Name is a display name. Any text is accepted, including the empty string.
type Name struct {
	Value string
}

func NewName(text string) Name {
	return Name{Value: text}
}

func (Name) Name() string {
	return "name"
}

func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func (n *Name) UnmarshalJSON(bz []byte) error {
	var value string
	if err := codec.DecodeValue(n.Name(), bz, &value); err != nil {
		return err
	}
	n.Value = value
	return nil
}

func (Name) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Display name of an entity.",
	}
}

// Damage is the die rolled for damage.
type Damage struct {
	Dice Dice
}

func NewDamage(dice Dice) Damage {
	return Damage{Dice: dice}
}

func (Damage) Name() string {
	return "damage"
}

func (d Damage) MarshalJSON() ([]byte, error) {
	return d.Dice.MarshalJSON()
}

func (d *Damage) UnmarshalJSON(bz []byte) error {
	var dice Dice
	if err := codec.DecodeValue(d.Name(), bz, &dice); err != nil {
		return err
	}
	d.Dice = dice
	return nil
}

// JSONSchema reuses the Dice enumeration since a Damage encodes as its die.
func (Damage) JSONSchema() *jsonschema.Schema {
	s := Dice("").JSONSchema()
	s.Description = "Die rolled for damage."
	return s
}
