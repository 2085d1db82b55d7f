package simulation

import (
	"math/rand"

	"github.com/anggasct/crossway"
	"github.com/samber/lo"
)

// RandomMovements returns n movements drawn uniformly from the twelve valid ones
func RandomMovements(n int, seed int64) []crossway.Movement {
	all := crossway.AllMovements()
	rng := rand.New(rand.NewSource(seed))
	return lo.Times(n, func(int) crossway.Movement {
		return all[rng.Intn(len(all))]
	})
}

// ExhaustiveMovements returns n movements cycling through every valid movement,
// so any n >= 12 covers each of them
func ExhaustiveMovements(n int) []crossway.Movement {
	all := crossway.AllMovements()
	return lo.Times(n, func(i int) crossway.Movement {
		return all[i%len(all)]
	})
}

// ShuffledMovements returns ExhaustiveMovements(n) in a seeded random order
func ShuffledMovements(n int, seed int64) []crossway.Movement {
	movements := ExhaustiveMovements(n)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(movements), func(i, j int) {
		movements[i], movements[j] = movements[j], movements[i]
	})
	return movements
}
