package games

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))

	if len(deck) != 52 {
		t.Fatalf("Expected 52 cards, got %d", len(deck))
	}

	seen := make(map[string]bool, 52)
	for _, card := range deck {
		key := card.Suit + card.Value
		if seen[key] {
			t.Errorf("Duplicate card in deck: %s", key)
		}
		seen[key] = true

		if card.Numeric < 2 || card.Numeric > 11 {
			t.Errorf("Card %s has numeric value %d", key, card.Numeric)
		}
	}
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name string
		hand []Card
		want int
	}{
		{"empty", nil, 0},
		{"simple", []Card{{Value: "7", Numeric: 7}, {Value: "9", Numeric: 9}}, 16},
		{"blackjack", []Card{{Value: "A", Numeric: 11}, {Value: "K", Numeric: 10}}, 21},
		{"soft ace stays high", []Card{{Value: "A", Numeric: 11}, {Value: "9", Numeric: 9}}, 20},
		{"one ace drops", []Card{{Value: "A", Numeric: 11}, {Value: "9", Numeric: 9}, {Value: "5", Numeric: 5}}, 15},
		{"two aces one drops", []Card{{Value: "A", Numeric: 11}, {Value: "A", Numeric: 11}, {Value: "9", Numeric: 9}}, 21},
		{"all aces drop", []Card{{Value: "A", Numeric: 11}, {Value: "A", Numeric: 11}, {Value: "A", Numeric: 11}, {Value: "K", Numeric: 10}}, 13},
		{"bust", []Card{{Value: "K", Numeric: 10}, {Value: "Q", Numeric: 10}, {Value: "5", Numeric: 5}}, 25},
	}

	for _, tt := range tests {
		if got := HandValue(tt.hand); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}
