package games

import (
	"math"
	"math/rand"

	"crazypaisa-backend/internal/models"
)

// LimboRound decides win or lose up front and then only animates. Tick
// produces the presentation ramp; it cannot change the outcome, so the ramp
// can be cancelled at any point and the round settled with the same result.
type LimboRound struct {
	Bet     int
	Target  float64
	Won     bool
	Current float64

	stopAt  float64
	rng     *rand.Rand
	done    bool
	settled bool
}

func NewLimboRound(bet int, target float64, rng *rand.Rand) (*LimboRound, error) {
	if bet < 1 {
		return nil, ErrInvalidBet
	}
	if target <= 1 {
		return nil, ErrInvalidTarget
	}

	p := LimboWinProbability(target, bet)
	won := rng.Float64() < p

	// On a win the displayed multiplier overshoots the target a little; on a
	// loss it stalls just short of it.
	stopAt := target + rng.Float64()*2
	if !won {
		stopAt = target - rng.Float64()
		if stopAt < 1 {
			stopAt = 1
		}
	}

	return &LimboRound{
		Bet:     bet,
		Target:  target,
		Won:     won,
		Current: 1.0,
		stopAt:  stopAt,
		rng:     rng,
	}, nil
}

// Tick advances the displayed multiplier one animation step and reports
// whether the ramp has finished. Small bets occasionally spike.
func (r *LimboRound) Tick() (float64, bool) {
	if r.done {
		return r.Current, true
	}

	increment := 0.05
	if r.rng.Float64() < 0.05 && r.Bet < 50 {
		increment = r.rng.Float64() * 5
	}

	r.Current = math.Min(r.Current+increment, r.stopAt)
	if r.Current >= r.stopAt {
		r.done = true
	}

	return r.Current, r.done
}

func (r *LimboRound) Outcome() models.Outcome {
	if r.Won {
		return models.OutcomeWin
	}
	return models.OutcomeLose
}

// Delta is the signed point change: floor(bet × target) − bet on a win, −bet
// on a loss.
func (r *LimboRound) Delta() int {
	if r.Won {
		return int(math.Floor(float64(r.Bet)*r.Target)) - r.Bet
	}
	return -r.Bet
}

// Settle consumes the round. Unlike Tick it does not require the ramp to have
// finished: a cancelled ramp settles with the pre-decided outcome.
func (r *LimboRound) Settle() (int, error) {
	if r.settled {
		return 0, ErrRoundSettled
	}
	r.settled = true
	r.done = true
	return r.Delta(), nil
}
