package types

import (
	"slices"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
)

// Dice is the kind of die used to roll damage. It is a classification only; nothing here rolls.
// The zero value is not a valid die.
type Dice string

const (
	D4   Dice = "D4"
	D6   Dice = "D6"
	D8   Dice = "D8"
	D10  Dice = "D10"
	D12  Dice = "D12"
	D20  Dice = "D20"
	D100 Dice = "D100"
)

var allDice = []Dice{D4, D6, D8, D10, D12, D20, D100} //nolint:gochecknoglobals // closed set

// ErrInvalidDice is returned when a value is not one of the seven dice.
var ErrInvalidDice = eris.New("invalid dice")

// AllDice returns every die in ascending order of sides.
func AllDice() []Dice {
	return slices.Clone(allDice)
}

// ParseDice returns the die with the given name, e.g. "D20".
func ParseDice(s string) (Dice, error) {
	d := Dice(s)
	if !d.Valid() {
		return "", eris.Wrapf(ErrInvalidDice, "%q", s)
	}
	return d, nil
}

// DiceFromSides returns the die with the given number of faces.
func DiceFromSides(sides int) (Dice, error) {
	for _, d := range allDice {
		if d.Sides() == sides {
			return d, nil
		}
	}
	return "", eris.Wrapf(ErrInvalidDice, "no die has %d sides", sides)
}

// Valid reports whether d is one of the seven dice.
func (d Dice) Valid() bool {
	return slices.Contains(allDice, d)
}

// Sides returns the number of faces of the die, or 0 if d is invalid.
func (d Dice) Sides() int {
	switch d {
	case D4:
		return 4
	case D6:
		return 6
	case D8:
		return 8
	case D10:
		return 10
	case D12:
		return 12
	case D20:
		return 20
	case D100:
		return 100
	default:
		return 0
	}
}

func (d Dice) String() string {
	return string(d)
}

func (d Dice) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, eris.Wrapf(ErrInvalidDice, "%q", string(d))
	}
	return json.Marshal(string(d))
}

func (d *Dice) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return eris.Wrap(err, "dice must be a string")
	}
	parsed, err := ParseDice(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// JSONSchema describes Dice as a string enumeration.
func (Dice) JSONSchema() *jsonschema.Schema {
	enum := make([]any, len(allDice))
	for i, d := range allDice {
		enum[i] = string(d)
	}
	return &jsonschema.Schema{
		Type:        "string",
		Title:       "Dice",
		Description: "Kind of die used to roll damage.",
		Enum:        enum,
	}
}
