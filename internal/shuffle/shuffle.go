package shuffle

import "math/rand/v2"

// Source supplies uniform random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default returns a Source backed by the process-wide generator.
func Default() Source {
	return globalSource{}
}

// Indices returns a random permutation of [0, n). Each index appears exactly
// once; n <= 0 yields an empty slice. A nil r uses Default.
func Indices(n int, r Source) []int {
	if n <= 0 {
		return []int{}
	}
	if r == nil {
		r = Default()
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Fisher-Yates shuffle
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// IsPermutation reports whether order contains every index in [0, n) exactly once.
func IsPermutation(order []int, n int) bool {
	if n < 0 || len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
