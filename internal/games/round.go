package games

import "errors"

var (
	// ErrDeckExhausted means a draw was attempted with no cards left. With a
	// 52-card deck and realistic round lengths this is a programming error,
	// not a player-visible condition.
	ErrDeckExhausted = errors.New("games: deck exhausted")

	// ErrRoundSettled guards settle-exactly-once: any play or settle call on
	// an already settled round is rejected.
	ErrRoundSettled = errors.New("games: round already settled")

	// ErrRoundActive is returned when a terminal action is attempted before
	// the round has reached an outcome, or vice versa.
	ErrRoundActive = errors.New("games: round still in progress")

	ErrInvalidBet    = errors.New("games: bet must be a positive number of points")
	ErrInvalidTarget = errors.New("games: target multiplier must be greater than 1")
)
