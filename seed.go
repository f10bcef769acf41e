package ts

import (
	"math/bits"
	"math/rand/v2"
)

//////
// Splittable random seed.
//////

// Seed is an explicit, splittable source of randomness. It is threaded by
// value through the builder and the sample-path constructor instead of
// relying on implicit global random state, which is what makes the
// determinism and independence guarantees of this package possible.
//
// Guarantees:
// - Two draws started from the same Seed value are identical
// - Split derives two new seeds, deterministic in the parent but mutually
//   independent for all practical purposes
//
// Usage example:
//
//	seed := ts.NewSeed(42)
//	buildSeed, nextSeed := seed.Split()
//
//	utility, err := builder.BuildUtilityFunction(posteriors, datasets, buildSeed)
//
// Important notes:
// - Seed is a value type; copying it is cheap and never aliases state
// - Never reuse one Seed across concurrent builds; split it instead.
type Seed struct {
	hi, lo uint64
}

// NewSeed derives a Seed from a single integer value. Equal values always
// yield equal seeds.
func NewSeed(value uint64) Seed {
	state := value

	return Seed{
		hi: splitmix64(&state),
		lo: splitmix64(&state),
	}
}

// Split derives two child seeds from s. The derivation is deterministic:
// splitting the same seed twice yields the same pair. The children are
// statistically independent of each other and of the parent.
//
// Returns:
// - Seed: The first child
// - Seed: The second child
//
// Usage example:
//
//	sampleSeed, rest := seed.Split()
func (s Seed) Split() (Seed, Seed) {
	state := s.hi ^ bits.RotateLeft64(s.lo, 32)

	first := Seed{hi: splitmix64(&state), lo: splitmix64(&state)}
	second := Seed{hi: splitmix64(&state), lo: splitmix64(&state)}

	return first, second
}

// source returns a fresh PCG stream positioned at the start of the seed's
// sequence. Every call returns an independent copy, so consuming one stream
// never disturbs another.
func (s Seed) source() rand.Source {
	return rand.NewPCG(s.hi, s.lo)
}

// splitmix64 advances state and returns the next output of the SplitMix64
// sequence (Steele, Lea & Flood 2014). Used only for seed derivation; the
// draws themselves come from PCG streams.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15

	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}
