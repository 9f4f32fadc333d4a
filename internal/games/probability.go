package games

import "math/rand"

// Two win-decision policies exist side by side: ChanceWin drives the
// "prefer good card" bias in Blackjack off the per-user winning-chance
// percentage; LimboWinProbability prices a Limbo round off bet size and
// target multiplier. They are deliberately kept as separate strategies.

// ChanceWin draws uniformly from [0,100) and reports a win when the draw is
// at or under chance.
func ChanceWin(rng *rand.Rand, chance int) bool {
	return rng.Float64()*100 <= float64(chance)
}

// LimboWinProbability starts from an even coin and shaves it down for larger
// bets and for targets above 2x, never dropping below 5%.
func LimboWinProbability(target float64, bet int) float64 {
	p := 0.5

	switch {
	case bet > 60:
		p -= 0.15
	case bet > 50:
		p -= 0.10
	case bet > 20:
		p -= 0.08
	case bet > 10:
		p -= 0.05
	}

	if target > 2 {
		p -= (target - 2) * 0.1
	}

	if p < 0.05 {
		p = 0.05
	}
	return p
}
