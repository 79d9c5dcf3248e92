package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitruvian-labs/vitruvian/pkg/codec"
	"github.com/vitruvian-labs/vitruvian/pkg/types"
)

func TestDice_Sides(t *testing.T) {
	t.Parallel()

	want := map[types.Dice]int{
		types.D4:   4,
		types.D6:   6,
		types.D8:   8,
		types.D10:  10,
		types.D12:  12,
		types.D20:  20,
		types.D100: 100,
	}
	require.Len(t, types.AllDice(), len(want))

	for _, d := range types.AllDice() {
		assert.True(t, d.Valid(), "%s", d)
		assert.Equal(t, want[d], d.Sides(), "%s", d)

		fromSides, err := types.DiceFromSides(d.Sides())
		require.NoError(t, err)
		assert.Equal(t, d, fromSides)

		parsed, err := types.ParseDice(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}

func TestDice_AllDiceIsACopy(t *testing.T) {
	t.Parallel()

	all := types.AllDice()
	all[0] = "D7"
	assert.Equal(t, types.D4, types.AllDice()[0])
}

func TestDice_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dice types.Dice
	}{
		{name: "zero value", dice: ""},
		{name: "unlisted", dice: "D7"},
		{name: "lowercase", dice: "d6"},
		{name: "sides only", dice: "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.False(t, tt.dice.Valid())
			assert.Equal(t, 0, tt.dice.Sides())

			_, err := types.ParseDice(string(tt.dice))
			require.ErrorIs(t, err, types.ErrInvalidDice)

			_, err = codec.Encode(tt.dice)
			require.Error(t, err)
		})
	}

	_, err := types.DiceFromSides(7)
	require.ErrorIs(t, err, types.ErrInvalidDice)
}

func TestDice_JSON(t *testing.T) {
	t.Parallel()

	for _, d := range types.AllDice() {
		bz, err := codec.Encode(d)
		require.NoError(t, err)
		assert.JSONEq(t, `"`+string(d)+`"`, string(bz))

		got, err := codec.Decode[types.Dice](bz)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	for _, input := range []string{`"D3"`, `"D7"`, `"D1000"`, `6`, `{}`, `"d20"`, `null`} {
		got, err := codec.Decode[types.Dice]([]byte(input))
		var de *codec.DeserializationError
		require.ErrorAs(t, err, &de, "input %s", input)
		assert.Equal(t, types.Dice(""), got, "input %s", input)
	}
}

func TestDice_JSONSchema(t *testing.T) {
	t.Parallel()

	s := types.Dice("").JSONSchema()
	assert.Equal(t, "string", s.Type)
	assert.Equal(t, []any{"D4", "D6", "D8", "D10", "D12", "D20", "D100"}, s.Enum)
}
