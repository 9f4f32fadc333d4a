package games

import (
	"errors"
	"math/rand"
	"testing"

	"crazypaisa-backend/internal/models"
)

func card(value string) Card {
	return Card{Suit: "♠", Value: value, Numeric: cardNumeric(value)}
}

// fixedRound builds a round mid-play with a known hand and deck. The deck is
// drawn from the back, so the last card listed is the next one dealt.
func fixedRound(bet int, player, dealer []Card, deck []Card) *BlackjackRound {
	return &BlackjackRound{
		Bet:    bet,
		Player: player,
		Dealer: dealer,
		State:  BlackjackPlayerTurn,
		deck:   deck,
		rng:    rand.New(rand.NewSource(1)),
	}
}

func TestNewBlackjackRound(t *testing.T) {
	if _, err := NewBlackjackRound(0, 45, rand.New(rand.NewSource(1))); !errors.Is(err, ErrInvalidBet) {
		t.Errorf("Expected ErrInvalidBet, got %v", err)
	}

	round, err := NewBlackjackRound(10, 45, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("Failed to deal: %v", err)
	}

	if len(round.Player) != 2 {
		t.Errorf("Expected 2 player cards, got %d", len(round.Player))
	}
	if len(round.Dealer) != 1 {
		t.Errorf("Expected 1 dealer card, got %d", len(round.Dealer))
	}
	if len(round.deck) != 49 {
		t.Errorf("Expected 49 cards left, got %d", len(round.deck))
	}
	if round.State != BlackjackPlayerTurn {
		t.Errorf("Expected playerTurn, got %s", round.State)
	}

	// No card appears twice across the hands and the remaining deck.
	seen := make(map[string]bool, 52)
	for _, c := range append(append(append([]Card{}, round.Player...), round.Dealer...), round.deck...) {
		key := c.Suit + c.Value
		if seen[key] {
			t.Errorf("Card dealt twice: %s", key)
		}
		seen[key] = true
	}
}

func TestBlackjackHitBust(t *testing.T) {
	round := fixedRound(10,
		[]Card{card("K"), card("Q")},
		[]Card{card("7")},
		[]Card{card("5")})

	drawn, err := round.Hit()
	if err != nil {
		t.Fatalf("Hit failed: %v", err)
	}
	if drawn.Value != "5" {
		t.Errorf("Expected to draw 5, got %s", drawn.Value)
	}

	if !round.Over() {
		t.Fatal("Bust should end the round")
	}
	if round.Outcome != models.OutcomeLose {
		t.Errorf("Expected lose, got %s", round.Outcome)
	}

	delta, err := round.Settle()
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if delta != -10 {
		t.Errorf("Expected delta -10, got %d", delta)
	}

	if _, err := round.Hit(); !errors.Is(err, ErrRoundSettled) {
		t.Errorf("Hit after settle: expected ErrRoundSettled, got %v", err)
	}
	if _, err := round.Settle(); !errors.Is(err, ErrRoundSettled) {
		t.Errorf("Second settle: expected ErrRoundSettled, got %v", err)
	}
}

func TestBlackjackStand(t *testing.T) {
	tests := []struct {
		name    string
		player  []Card
		dealer  []Card
		deck    []Card
		outcome models.Outcome
		delta   int
	}{
		{
			name:    "player wins",
			player:  []Card{card("K"), card("A")},
			dealer:  []Card{card("K"), card("7")},
			outcome: models.OutcomeWin,
			delta:   10,
		},
		{
			name:    "dealer wins",
			player:  []Card{card("K"), card("8")},
			dealer:  []Card{card("K"), card("9")},
			outcome: models.OutcomeLose,
			delta:   -10,
		},
		{
			name:    "push",
			player:  []Card{card("K"), card("Q")},
			dealer:  []Card{card("K"), card("Q")},
			outcome: models.OutcomePush,
			delta:   0,
		},
		{
			name:    "dealer draws to 17",
			player:  []Card{card("K"), card("9")},
			dealer:  []Card{card("K"), card("6")},
			deck:    []Card{card("2")},
			outcome: models.OutcomeWin,
			delta:   10,
		},
		{
			name:    "dealer busts",
			player:  []Card{card("K"), card("2")},
			dealer:  []Card{card("K"), card("6")},
			deck:    []Card{card("K")},
			outcome: models.OutcomeWin,
			delta:   10,
		},
	}

	for _, tt := range tests {
		round := fixedRound(10, tt.player, tt.dealer, tt.deck)

		outcome, err := round.Stand()
		if err != nil {
			t.Fatalf("%s: Stand failed: %v", tt.name, err)
		}
		if outcome != tt.outcome {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.outcome, outcome)
		}

		delta, err := round.Settle()
		if err != nil {
			t.Fatalf("%s: Settle failed: %v", tt.name, err)
		}
		if delta != tt.delta {
			t.Errorf("%s: expected delta %d, got %d", tt.name, tt.delta, delta)
		}
	}
}

func TestBlackjackSettleRequiresOutcome(t *testing.T) {
	round := fixedRound(10,
		[]Card{card("K"), card("5")},
		[]Card{card("7")},
		nil)

	if _, err := round.Settle(); !errors.Is(err, ErrRoundActive) {
		t.Errorf("Expected ErrRoundActive, got %v", err)
	}
}

func TestBlackjackDrawDepletesDeck(t *testing.T) {
	round := fixedRound(10,
		[]Card{card("2"), card("3")},
		[]Card{card("7")},
		nil)

	if _, err := round.Hit(); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("Expected ErrDeckExhausted, got %v", err)
	}
}
