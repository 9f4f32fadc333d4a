package games

import (
	"math/rand"

	"crazypaisa-backend/internal/models"
)

type BlackjackState string

const (
	BlackjackPlayerTurn BlackjackState = "playerTurn"
	BlackjackDealerTurn BlackjackState = "dealerTurn"
	BlackjackSettled    BlackjackState = "settled"
)

// BlackjackRound is one hand of blackjack from deal to settlement. The deck
// is depleted as cards are drawn; no card is ever dealt twice.
type BlackjackRound struct {
	Bet     int
	Player  []Card
	Dealer  []Card
	State   BlackjackState
	Outcome models.Outcome

	deck    []Card
	chances int
	rng     *rand.Rand
	settled bool
}

// NewBlackjackRound shuffles a fresh deck and deals two player cards and one
// dealer card. Player cards are drawn with the "prefer good card" bias keyed
// on the user's winning-chance percentage; the dealer draws unbiased.
func NewBlackjackRound(bet, winningChances int, rng *rand.Rand) (*BlackjackRound, error) {
	if bet < 1 {
		return nil, ErrInvalidBet
	}

	r := &BlackjackRound{
		Bet:     bet,
		State:   BlackjackPlayerTurn,
		deck:    NewDeck(rng),
		chances: winningChances,
		rng:     rng,
	}

	for i := 0; i < 2; i++ {
		card, err := r.draw(true)
		if err != nil {
			return nil, err
		}
		r.Player = append(r.Player, card)
	}

	card, err := r.draw(false)
	if err != nil {
		return nil, err
	}
	r.Dealer = append(r.Dealer, card)

	return r, nil
}

// draw takes the top card of the remaining deck. When preferGood is set and
// the chance policy fires, it instead picks a random card valued 8 or higher
// from whatever qualifying cards remain.
func (r *BlackjackRound) draw(preferGood bool) (Card, error) {
	if len(r.deck) == 0 {
		return Card{}, ErrDeckExhausted
	}

	if preferGood && ChanceWin(r.rng, r.chances) {
		good := make([]int, 0, len(r.deck))
		for i, card := range r.deck {
			if card.Numeric >= 8 {
				good = append(good, i)
			}
		}
		if len(good) > 0 {
			idx := good[r.rng.Intn(len(good))]
			card := r.deck[idx]
			r.deck = append(r.deck[:idx], r.deck[idx+1:]...)
			return card, nil
		}
	}

	card := r.deck[len(r.deck)-1]
	r.deck = r.deck[:len(r.deck)-1]
	return card, nil
}

// Hit deals one more card to the player. Going over 21 ends the round as a
// loss on the spot.
func (r *BlackjackRound) Hit() (Card, error) {
	if r.State != BlackjackPlayerTurn {
		return Card{}, ErrRoundSettled
	}

	card, err := r.draw(true)
	if err != nil {
		return Card{}, err
	}
	r.Player = append(r.Player, card)

	if HandValue(r.Player) > 21 {
		r.State = BlackjackSettled
		r.Outcome = models.OutcomeLose
	}

	return card, nil
}

// Stand plays out the dealer hand (draw to 17, no bias) and compares totals.
func (r *BlackjackRound) Stand() (models.Outcome, error) {
	if r.State != BlackjackPlayerTurn {
		return "", ErrRoundSettled
	}
	r.State = BlackjackDealerTurn

	for HandValue(r.Dealer) < 17 && len(r.deck) > 0 {
		card, err := r.draw(false)
		if err != nil {
			return "", err
		}
		r.Dealer = append(r.Dealer, card)
	}

	playerValue := HandValue(r.Player)
	dealerValue := HandValue(r.Dealer)

	switch {
	case dealerValue > 21 || playerValue > dealerValue:
		r.Outcome = models.OutcomeWin
	case dealerValue > playerValue:
		r.Outcome = models.OutcomeLose
	default:
		r.Outcome = models.OutcomePush
	}

	r.State = BlackjackSettled
	return r.Outcome, nil
}

func (r *BlackjackRound) Over() bool {
	return r.State == BlackjackSettled
}

// Delta is the signed point change for the resolved outcome.
func (r *BlackjackRound) Delta() int {
	switch r.Outcome {
	case models.OutcomeWin:
		return r.Bet
	case models.OutcomeLose:
		return -r.Bet
	}
	return 0
}

// Settle marks the round consumed. It succeeds exactly once, after the round
// has reached an outcome, and returns the point delta to apply.
func (r *BlackjackRound) Settle() (int, error) {
	if r.settled {
		return 0, ErrRoundSettled
	}
	if r.State != BlackjackSettled {
		return 0, ErrRoundActive
	}
	r.settled = true
	return r.Delta(), nil
}
