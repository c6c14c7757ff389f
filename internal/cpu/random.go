package cpu

import "math/rand/v2"

// MathRandom is a RandomSource backed by a seeded PCG generator.
type MathRandom struct {
	rng *rand.Rand
}

// NewMathRandom returns a random source. A zero seed selects a random seed.
func NewMathRandom(seed uint64) *MathRandom {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &MathRandom{
		rng: rand.New(rand.NewPCG(seed, seed>>32|seed<<32)),
	}
}

// NextByte returns a uniformly distributed random byte.
func (r *MathRandom) NextByte() uint8 {
	return uint8(r.rng.UintN(256))
}
