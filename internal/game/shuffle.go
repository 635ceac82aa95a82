package game

import "math/rand"

// Shuffle returns a uniformly random permutation of in as a new slice.
// The input is never mutated. Implementation is an unbiased Fisher-Yates
// over a working copy: for i from len-1 down to 1, swap i with a uniform
// j in [0, i].
func Shuffle[T any](rng *rand.Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
