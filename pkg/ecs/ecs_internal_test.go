package ecs

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitruvian-labs/vitruvian/pkg/testutils"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()

	w := NewWorld()
	require.NoError(t, Register[testutils.ComponentA](w))
	require.NoError(t, Register[testutils.ComponentB](w))
	require.NoError(t, Register[testutils.ComponentC](w))
	return w
}

func TestECS_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		components []Component
		wantErr    error
	}{
		{
			name: "empty entity",
		},
		{
			name:       "single component",
			components: []Component{testutils.ComponentA{X: 1}},
		},
		{
			name: "multiple components",
			components: []Component{
				testutils.ComponentC{Counter: 3},
				testutils.ComponentA{X: 1, Y: 2},
			},
		},
		{
			name: "duplicate component",
			components: []Component{
				testutils.ComponentA{X: 1},
				testutils.ComponentA{X: 2},
			},
			wantErr: ErrComponentExists,
		},
		{
			name:       "unregistered component",
			components: []Component{testutils.ComponentMixed{}},
			wantErr:    ErrComponentNotRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := newTestWorld(t)
			eid, err := Create(w, tt.components...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, w.Len())
				return
			}
			require.NoError(t, err)
			assert.True(t, Alive(w, eid))

			got, err := Components(w, eid)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.components, got)
		})
	}
}

func TestECS_AddRejectsDuplicate(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	eid, err := Create(w)
	require.NoError(t, err)

	require.NoError(t, Add(w, eid, testutils.ComponentA{X: 1}))
	err = Add(w, eid, testutils.ComponentA{X: 2})
	require.ErrorIs(t, err, ErrComponentExists)

	got, err := Get[testutils.ComponentA](w, eid)
	require.NoError(t, err)
	assert.Equal(t, testutils.ComponentA{X: 1}, got, "failed add must leave the entity unchanged")

	components, err := Components(w, eid)
	require.NoError(t, err)
	assert.Len(t, components, 1)
}

func TestECS_SetUpserts(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	eid, err := Create(w, testutils.ComponentB{Label: "keep"})
	require.NoError(t, err)

	require.NoError(t, Set(w, eid, testutils.ComponentA{X: 1}))
	archAfterAttach, err := w.archetypeOf(eid)
	require.NoError(t, err)

	require.NoError(t, Set(w, eid, testutils.ComponentA{X: 9}))
	archAfterUpdate, err := w.archetypeOf(eid)
	require.NoError(t, err)
	assert.Same(t, archAfterAttach, archAfterUpdate, "updating in place must not move the entity")

	a, err := Get[testutils.ComponentA](w, eid)
	require.NoError(t, err)
	assert.Equal(t, testutils.ComponentA{X: 9}, a)

	b, err := Get[testutils.ComponentB](w, eid)
	require.NoError(t, err)
	assert.Equal(t, testutils.ComponentB{Label: "keep"}, b)
}

func TestECS_AddAutoRegisters(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	eid, err := Create(w)
	require.NoError(t, err)

	require.NoError(t, Add(w, eid, testutils.ComponentMixed{StringVal: "x"}))
	assert.Equal(t, []string{"component_mixed"}, w.ComponentNames())
	assert.True(t, Has[testutils.ComponentMixed](w, eid))
}

func TestECS_MissingEntity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		run  func(w *World, eid EntityID) error
	}{
		{
			name: "add",
			run: func(w *World, eid EntityID) error {
				return Add(w, eid, testutils.ComponentA{})
			},
		},
		{
			name: "set",
			run: func(w *World, eid EntityID) error {
				return Set(w, eid, testutils.ComponentA{})
			},
		},
		{
			name: "get",
			run: func(w *World, eid EntityID) error {
				_, err := Get[testutils.ComponentA](w, eid)
				return err
			},
		},
		{
			name: "remove",
			run: func(w *World, eid EntityID) error {
				return Remove[testutils.ComponentA](w, eid)
			},
		},
		{
			name: "components",
			run: func(w *World, eid EntityID) error {
				_, err := Components(w, eid)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := newTestWorld(t)
			eid, err := Create(w, testutils.ComponentA{})
			require.NoError(t, err)
			require.True(t, Destroy(w, eid))

			assert.ErrorIs(t, tt.run(w, eid), ErrEntityNotFound)
			assert.ErrorIs(t, tt.run(w, 999), ErrEntityNotFound)
		})
	}
}

func TestECS_GetAndRemove(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	eid, err := Create(w, testutils.ComponentA{X: 1}, testutils.ComponentB{ID: 2})
	require.NoError(t, err)

	_, err = Get[testutils.ComponentC](w, eid)
	require.ErrorIs(t, err, ErrComponentNotFound)
	assert.False(t, Has[testutils.ComponentC](w, eid))

	require.NoError(t, Remove[testutils.ComponentA](w, eid))
	assert.False(t, Has[testutils.ComponentA](w, eid))
	require.ErrorIs(t, Remove[testutils.ComponentA](w, eid), ErrComponentNotFound)

	b, err := Get[testutils.ComponentB](w, eid)
	require.NoError(t, err)
	assert.Equal(t, testutils.ComponentB{ID: 2}, b)

	require.NoError(t, Remove[testutils.ComponentB](w, eid))
	components, err := Components(w, eid)
	require.NoError(t, err)
	assert.Empty(t, components)
	assert.True(t, Alive(w, eid), "removing every component keeps the entity")

	// Types that were never registered can't be on any entity.
	_, err = Get[testutils.ComponentMixed](w, eid)
	require.ErrorIs(t, err, ErrComponentNotRegistered)
}

func TestECS_GetRejectsTypeWithTakenName(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	eid, err := Create(w, testutils.ComponentA{X: 1})
	require.NoError(t, err)

	_, err = Get[renamedA](w, eid)
	require.ErrorIs(t, err, ErrComponentNotRegistered)
	require.Error(t, Add(w, eid, renamedA{Value: 1}))
}

func TestECS_ComponentsInRegistrationOrder(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	eid, err := Create(w)
	require.NoError(t, err)

	require.NoError(t, Add(w, eid, testutils.ComponentC{Counter: 1}))
	require.NoError(t, Add(w, eid, testutils.ComponentA{X: 1}))
	require.NoError(t, Add(w, eid, testutils.ComponentB{ID: 1}))

	components, err := Components(w, eid)
	require.NoError(t, err)
	assert.Equal(t, []Component{
		testutils.ComponentA{X: 1},
		testutils.ComponentB{ID: 1},
		testutils.ComponentC{Counter: 1},
	}, components)
}

func TestECS_DestroyRecyclesIDs(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	ids := make([]EntityID, 3)
	for i := range ids {
		eid, err := Create(w, testutils.ComponentA{X: float64(i)})
		require.NoError(t, err)
		ids[i] = eid
	}

	assert.True(t, Destroy(w, ids[1]))
	assert.False(t, Destroy(w, ids[1]))
	assert.False(t, Alive(w, ids[1]))
	assert.Equal(t, 2, w.Len())

	// The entity swapped into the destroyed row keeps its value.
	a, err := Get[testutils.ComponentA](w, ids[2])
	require.NoError(t, err)
	assert.Equal(t, testutils.ComponentA{X: 2}, a)

	reused, err := Create(w)
	require.NoError(t, err)
	assert.Equal(t, ids[1], reused)
	assert.False(t, Has[testutils.ComponentA](w, reused), "recycled IDs start empty")
}

// The final component set doesn't depend on the order components are attached in.
func TestECS_AttachOrderIndependent(t *testing.T) {
	t.Parallel()

	all := []Component{
		testutils.ComponentA{X: 1},
		testutils.ComponentB{Label: "b"},
		testutils.ComponentC{Counter: 3},
	}

	for g := testutils.NewGen(); !g.Done(); {
		order := slices.Clone(all)
		testutils.Shuffle(g, order)
		useSet := g.Bool()

		w := newTestWorld(t)
		eid, err := Create(w)
		require.NoError(t, err)
		for _, c := range order {
			switch c := c.(type) {
			case testutils.ComponentA:
				err = attachWith(w, eid, c, useSet)
			case testutils.ComponentB:
				err = attachWith(w, eid, c, useSet)
			case testutils.ComponentC:
				err = attachWith(w, eid, c, useSet)
			}
			require.NoError(t, err)
		}

		got, err := Components(w, eid)
		require.NoError(t, err)
		assert.Equal(t, all, got, "order %v", order)
		assert.Len(t, w.archetypes, 1+len(all), "order %v", order)
	}
}

func attachWith[T Component](w *World, eid EntityID, c T, useSet bool) error {
	if useSet {
		return Set(w, eid, c)
	}
	return Add(w, eid, c)
}

// -------------------------------------------------------------------------------------------------
// Model-based fuzzing
//
// Random operations are applied to a world and to a map of maps, and the two are compared after
// every step.
// -------------------------------------------------------------------------------------------------

type entityModel map[EntityID]map[string]Component

func TestECS_ModelBasedFuzz(t *testing.T) {
	t.Parallel()
	prng := testutils.NewRand(t)

	w := newTestWorld(t)
	model := make(entityModel)

	const opsMax = 1 << 12
	ops := []string{"create", "destroy", "add", "set", "remove", "get"}
	weights := testutils.RandOpWeights(prng, ops)

	randEntity := func() EntityID {
		if len(model) > 0 && prng.Float64() < 0.9 {
			return testutils.RandMapKey(prng, model)
		}
		return EntityID(prng.IntN(1_000))
	}
	randComponent := func() Component {
		switch prng.IntN(3) {
		case 0:
			return testutils.ComponentA{X: prng.Float64(), Y: float64(prng.IntN(10))}
		case 1:
			return testutils.ComponentB{ID: prng.Uint64(), Label: testutils.RandString(prng, 4)}
		default:
			return testutils.ComponentC{Counter: uint16(prng.IntN(1 << 16))}
		}
	}

	for range opsMax {
		switch testutils.RandWeightedOp(prng, weights) {
		case "create":
			eid, err := Create(w)
			require.NoError(t, err)
			_, exists := model[eid]
			require.False(t, exists, "create returned live entity %d", eid)
			model[eid] = make(map[string]Component)

		case "destroy":
			eid := randEntity()
			_, exists := model[eid]
			assert.Equal(t, exists, Destroy(w, eid))
			delete(model, eid)

		case "add":
			eid, c := randEntity(), randComponent()
			err := addAbstract(w, eid, c)
			components, alive := model[eid]
			switch {
			case !alive:
				require.ErrorIs(t, err, ErrEntityNotFound)
			case components[c.Name()] != nil:
				require.ErrorIs(t, err, ErrComponentExists)
			default:
				require.NoError(t, err)
				components[c.Name()] = c
			}

		case "set":
			eid, c := randEntity(), randComponent()
			err := setAbstract(w, eid, c)
			components, alive := model[eid]
			if !alive {
				require.ErrorIs(t, err, ErrEntityNotFound)
				continue
			}
			require.NoError(t, err)
			components[c.Name()] = c

		case "remove":
			eid, c := randEntity(), randComponent()
			err := removeAbstract(w, eid, c)
			components, alive := model[eid]
			switch {
			case !alive:
				require.ErrorIs(t, err, ErrEntityNotFound)
			case components[c.Name()] == nil:
				require.ErrorIs(t, err, ErrComponentNotFound)
			default:
				require.NoError(t, err)
				delete(components, c.Name())
			}

		case "get":
			eid := randEntity()
			got, err := Components(w, eid)
			components, alive := model[eid]
			if !alive {
				require.ErrorIs(t, err, ErrEntityNotFound)
				continue
			}
			require.NoError(t, err)
			want := make([]Component, 0, len(components))
			for _, c := range components {
				want = append(want, c)
			}
			assert.ElementsMatch(t, want, got, "entity %d", eid)
		}

		require.Equal(t, len(model), w.Len())
	}

	for eid, components := range model {
		got, err := Components(w, eid)
		require.NoError(t, err)
		assert.Len(t, got, len(components), "entity %d", eid)
	}
}

func addAbstract(w *World, eid EntityID, c Component) error {
	switch c := c.(type) {
	case testutils.ComponentA:
		return Add(w, eid, c)
	case testutils.ComponentB:
		return Add(w, eid, c)
	case testutils.ComponentC:
		return Add(w, eid, c)
	}
	panic("unknown component")
}

func setAbstract(w *World, eid EntityID, c Component) error {
	switch c := c.(type) {
	case testutils.ComponentA:
		return Set(w, eid, c)
	case testutils.ComponentB:
		return Set(w, eid, c)
	case testutils.ComponentC:
		return Set(w, eid, c)
	}
	panic("unknown component")
}

func removeAbstract(w *World, eid EntityID, c Component) error {
	switch c.(type) {
	case testutils.ComponentA:
		return Remove[testutils.ComponentA](w, eid)
	case testutils.ComponentB:
		return Remove[testutils.ComponentB](w, eid)
	case testutils.ComponentC:
		return Remove[testutils.ComponentC](w, eid)
	}
	panic("unknown component")
}
