package testutils

import "github.com/vitruvian-labs/vitruvian/pkg/assert"

const genMaxDepth = 32

// Gen enumerates every combination of the bounded choices a test makes. Each pass of
//
//	for g := NewGen(); !g.Done(); {
//		a := g.Intn(2)
//		b := Pick(g, items)
//	}
//
// sees the next combination in lexicographic order until all have been produced. Choices are
// recorded as (value, bound) pairs; Done advances the rightmost choice that is still below its
// bound and resets every choice after it.
// See https://matklad.github.io/2021/11/07/generate-all-the-things.html.
type Gen struct {
	started bool
	choices [genMaxDepth]genChoice
	pos     int // index of the next choice within the current pass
	depth   int // number of choices recorded so far
}

type genChoice struct {
	value, bound uint32
}

// NewGen creates a new exhaustive generator.
func NewGen() *Gen {
	return &Gen{}
}

// Done reports whether every combination has been produced, and otherwise prepares the next one.
func (g *Gen) Done() bool {
	if !g.started {
		g.started = true
		return false
	}
	for i := g.depth - 1; i >= 0; i-- {
		if g.choices[i].value < g.choices[i].bound {
			g.choices[i].value++
			g.depth = i + 1
			g.pos = 0
			return false
		}
	}
	return true
}

func (g *Gen) next(bound uint32) uint32 {
	assert.That(g.pos < genMaxDepth, "exhaustigen: more than %d choices in one pass", genMaxDepth)
	if g.pos == g.depth {
		g.choices[g.pos] = genChoice{}
		g.depth++
	}
	g.choices[g.pos].bound = bound
	g.pos++
	return g.choices[g.pos-1].value
}

// Intn returns an int in [0, bound], both ends included.
func (g *Gen) Intn(bound int) int {
	return int(g.next(uint32(bound))) //nolint:gosec // bound is expected to be small in tests
}

// Index returns every valid index into a slice of the given length.
func (g *Gen) Index(length int) int {
	assert.That(length > 0, "exhaustigen: empty slice")
	return g.Intn(length - 1)
}

// Bool returns both booleans.
func (g *Gen) Bool() bool {
	return g.Intn(1) == 1
}

// Pick returns every element of the slice.
func Pick[T any](g *Gen, slice []T) T {
	return slice[g.Index(len(slice))]
}

// Shuffle permutes the slice in place, producing every permutation across passes.
func Shuffle[T any](g *Gen, slice []T) {
	for i := 0; i+1 < len(slice); i++ {
		j := i + g.Intn(len(slice)-1-i)
		slice[i], slice[j] = slice[j], slice[i]
	}
}
