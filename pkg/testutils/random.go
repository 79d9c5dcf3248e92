// Package testutils holds helpers shared by the package tests: a seeded PRNG that can be replayed
// with TEST_SEED, an exhaustive generator, and a few components that are not part of the domain.
package testutils

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"testing"
	"time"
)

var Seed uint64 //nolint:gochecknoglobals // intentionally global for test reproducibility

func init() { //nolint:gochecknoinits // intentionally using init to set seed
	Seed = uint64(time.Now().UnixNano()) //nolint:gosec // it's ok
	if envSeed := os.Getenv("TEST_SEED"); envSeed != "" {
		parsed, err := strconv.ParseUint(envSeed, 0, 64)
		if err == nil {
			Seed = parsed
		}
	}
}

// NewRand returns a PRNG seeded with Seed. The seed is logged so a failing run can be replayed.
func NewRand(t *testing.T) *rand.Rand {
	t.Helper()
	t.Logf("to reproduce: TEST_SEED=0x%x", Seed)
	return rand.New(rand.NewPCG(Seed, Seed)) //nolint:gosec // weak RNG is fine for tests
}

// RandMapKey returns a random key from a map. Panics if the map is empty.
func RandMapKey[K comparable, V any](r *rand.Rand, m map[K]V) K {
	idx := r.IntN(len(m))
	for k := range m {
		if idx == 0 {
			return k
		}
		idx--
	}
	panic("unreachable")
}

// RandOpWeights assigns a random weight in [1, 100] to every operation.
func RandOpWeights(r *rand.Rand, ops []string) map[string]int {
	weights := make(map[string]int, len(ops))
	for _, op := range ops {
		weights[op] = 1 + r.IntN(100)
	}
	return weights
}

// RandWeightedOp picks an operation with probability proportional to its weight.
func RandWeightedOp(r *rand.Rand, weights map[string]int) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic(fmt.Sprintf("invalid total weight %d", total))
	}

	pick := r.IntN(total)
	for op, w := range weights {
		if pick < w {
			return op
		}
		pick -= w
	}
	panic("unreachable")
}

// RandString generates a random alphanumeric string of the given length.
func RandString(r *rand.Rand, length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = chars[r.IntN(len(chars))]
	}
	return string(b)
}

// RandText generates a random string of arbitrary runes, including multi-byte and control
// characters that JSON has to escape.
func RandText(r *rand.Rand, length int) string {
	alphabet := []rune("aZ09 \t\n\"\\/é世\U0001f3b2\u0000")
	out := make([]rune, length)
	for i := range out {
		out[i] = alphabet[r.IntN(len(alphabet))]
	}
	return string(out)
}
