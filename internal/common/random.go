package common

import (
	"math"
	"math/rand/v2"
)

// RandomSource yields uniform values in [0, 1). Simulations draw from it so
// tests can inject deterministic values.
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG-backed source. A zero seed picks a random one.
// The returned source is not safe for concurrent use.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FloorInt draws floor(r*span + base)
func FloorInt(r RandomSource, span, base float64) int {
	return int(math.Floor(r.Float64()*span + base))
}
