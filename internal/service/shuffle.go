package service

import "math/rand/v2"

// Shuffle returns a uniformly random permutation of items using Fisher-Yates.
// The input slice is left untouched.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
