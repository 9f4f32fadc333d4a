package games

import "math/rand"

type Card struct {
	Suit    string `json:"suit"`
	Value   string `json:"value"`
	Numeric int    `json:"numeric_value"`
}

var (
	suits  = []string{"♠", "♣", "♥", "♦"}
	values = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

func cardNumeric(value string) int {
	switch value {
	case "A":
		return 11
	case "J", "Q", "K":
		return 10
	case "10":
		return 10
	case "2", "3", "4", "5", "6", "7", "8", "9":
		return int(value[0] - '0')
	}
	return 0
}

// NewDeck returns a freshly shuffled 52-card deck.
func NewDeck(rng *rand.Rand) []Card {
	deck := make([]Card, 0, 52)
	for _, suit := range suits {
		for _, value := range values {
			deck = append(deck, Card{Suit: suit, Value: value, Numeric: cardNumeric(value)})
		}
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	return deck
}

// HandValue sums a blackjack hand, counting aces as 11 and dropping them to 1
// one at a time while the total is over 21.
func HandValue(hand []Card) int {
	if len(hand) == 0 {
		return 0
	}

	value := 0
	aces := 0
	for _, card := range hand {
		if card.Value == "A" {
			aces++
		}
		value += card.Numeric
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	return value
}
