package tensor

import "math/rand"

// Shuffle permutes s in place using the Fisher–Yates algorithm.
//
// The random source is explicit so that training runs are reproducible from a
// recorded seed. A nil rng falls back to the process-wide source, which is
// fine for callers that do not care about determinism.
func Shuffle[S ~[]E, E any](s S, rng *rand.Rand) {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for i := len(s) - 1; i > 0; i-- {
		j := intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
