package games

import (
	"errors"
	"math"
	"math/rand"

	"crazypaisa-backend/internal/models"
)

const MinesGridSize = 25

// multiplierProgression maps total safe tiles to the cumulative multiplier
// per revealed safe cell. Reveals past the last entry stay at the final
// multiplier. Grids outside the table fall back to 1 + 0.2 per reveal.
var multiplierProgression = map[int][]float64{
	24: {1, 1.04, 1.08, 1.12, 1.18, 1.25},
	22: {1, 1.12, 1.25, 1.39, 1.58, 1.80},
	20: {1, 1.20, 1.42, 1.68, 2.04, 2.55},
	15: {1, 1.33, 1.78, 2.47, 3.47, 5.00},
	10: {1, 1.50, 2.25, 3.75, 6.25, 12.50},
	5:  {1, 2.00, 5.00, 15.00, 50.00, 250.00},
}

// bonusMineChance is the per-mine probability of a "bonus" mine, which costs
// double the bet when triggered.
var bonusMineChance = map[models.RiskLevel]float64{
	models.RiskEasy:    0.05,
	models.RiskMedium:  0.10,
	models.RiskHard:    0.15,
	models.RiskExtreme: 0.20,
}

var (
	ErrInvalidMineCount = errors.New("games: mine count must be 3, 5 or 7")
	ErrInvalidRisk      = errors.New("games: unknown risk level")
	ErrCellOutOfRange   = errors.New("games: cell index out of range")
	ErrCellRevealed     = errors.New("games: cell already revealed")
)

type MineCell struct {
	Revealed bool `json:"revealed"`
	Mine     bool `json:"-"`
	Bonus    bool `json:"-"`
}

// MinesRound is one game on the 25-cell grid: reveal safe cells to climb the
// multiplier table, withdraw at any time, bust on a mine.
type MinesRound struct {
	Bet        int
	Mines      int
	Risk       models.RiskLevel
	Cells      [MinesGridSize]MineCell
	Multiplier float64
	Revealed   int
	Outcome    models.Outcome

	bustedBonus bool
	over        bool
	settled     bool
}

func NewMinesRound(bet, mineCount int, risk models.RiskLevel, rng *rand.Rand) (*MinesRound, error) {
	if bet < 1 {
		return nil, ErrInvalidBet
	}
	switch mineCount {
	case 3, 5, 7:
	default:
		return nil, ErrInvalidMineCount
	}
	bonusChance, ok := bonusMineChance[risk]
	if !ok {
		return nil, ErrInvalidRisk
	}

	r := &MinesRound{
		Bet:        bet,
		Mines:      mineCount,
		Risk:       risk,
		Multiplier: 1,
	}

	placed := 0
	for placed < mineCount {
		idx := rng.Intn(MinesGridSize)
		if r.Cells[idx].Mine {
			continue
		}
		r.Cells[idx].Mine = true
		r.Cells[idx].Bonus = rng.Float64() < bonusChance
		placed++
	}

	return r, nil
}

func (r *MinesRound) safeTiles() int {
	return MinesGridSize - r.Mines
}

func multiplierFor(safeTiles, revealedSafe int) float64 {
	progression, ok := multiplierProgression[safeTiles]
	if !ok {
		return 1 + float64(revealedSafe)*0.2
	}
	idx := revealedSafe
	if idx > len(progression)-1 {
		idx = len(progression) - 1
	}
	return progression[idx]
}

type MinesReveal struct {
	Cell       int            `json:"cell"`
	Mine       bool           `json:"mine"`
	Bonus      bool           `json:"bonus"`
	Multiplier float64        `json:"multiplier"`
	Over       bool           `json:"over"`
	Outcome    models.Outcome `json:"outcome,omitempty"`
}

// Reveal uncovers one cell. A mine ends the round as a loss (double the bet
// for a bonus mine); revealing the last safe cell ends it as a win.
func (r *MinesRound) Reveal(cell int) (*MinesReveal, error) {
	if r.over {
		return nil, ErrRoundSettled
	}
	if cell < 0 || cell >= MinesGridSize {
		return nil, ErrCellOutOfRange
	}
	if r.Cells[cell].Revealed {
		return nil, ErrCellRevealed
	}

	r.Cells[cell].Revealed = true

	reveal := &MinesReveal{
		Cell:  cell,
		Mine:  r.Cells[cell].Mine,
		Bonus: r.Cells[cell].Bonus,
	}

	if r.Cells[cell].Mine {
		r.Outcome = models.OutcomeLose
		r.bustedBonus = r.Cells[cell].Bonus
		r.over = true
	} else {
		r.Revealed++
		r.Multiplier = multiplierFor(r.safeTiles(), r.Revealed)
		if r.Revealed == r.safeTiles() {
			r.Outcome = models.OutcomeWin
			r.over = true
		}
	}

	reveal.Multiplier = r.Multiplier
	reveal.Over = r.over
	reveal.Outcome = r.Outcome
	return reveal, nil
}

// Withdraw cashes the round out at the current multiplier.
func (r *MinesRound) Withdraw() error {
	if r.over {
		return ErrRoundSettled
	}
	r.Outcome = models.OutcomeWithdraw
	r.over = true
	return nil
}

func (r *MinesRound) Over() bool {
	return r.over
}

// Delta is the signed point change for the terminal transition: the full
// floor(bet × multiplier) on clearing the board, the net winnings on a
// withdraw, and the bet (doubled for a bonus mine) on a bust.
func (r *MinesRound) Delta() int {
	switch r.Outcome {
	case models.OutcomeWin:
		return int(math.Floor(float64(r.Bet) * r.Multiplier))
	case models.OutcomeWithdraw:
		return int(math.Floor(float64(r.Bet)*r.Multiplier)) - r.Bet
	case models.OutcomeLose:
		if r.bustedBonus {
			return -2 * r.Bet
		}
		return -r.Bet
	}
	return 0
}

// Settle consumes the round exactly once after a terminal transition.
func (r *MinesRound) Settle() (int, error) {
	if r.settled {
		return 0, ErrRoundSettled
	}
	if !r.over {
		return 0, ErrRoundActive
	}
	r.settled = true
	return r.Delta(), nil
}
