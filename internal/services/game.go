package services

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"crazypaisa-backend/internal/games"
	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/monitoring"
)

var ErrNoActiveRound = errors.New("no active round")

// Broadcaster pushes live round events to a connected client. Implemented by
// the websocket handler; nil when nobody is listening.
type Broadcaster interface {
	LimboTick(userID string, multiplier float64)
	RoundResult(userID string, result *models.GameResult)
	BalanceUpdate(userID string, points int)
}

const limboTickInterval = 50 * time.Millisecond

type limboRun struct {
	round   *games.LimboRound
	stop    chan struct{}
	stopped bool
}

// GameService owns the live rounds: one per game per user. Every terminal
// transition goes through settle(), which calls the balance mutator exactly
// once per round and then fans out to metrics, the notifier and the
// broadcaster.
type GameService struct {
	balance     *BalanceService
	notifier    Notifier
	broadcaster Broadcaster

	mu        sync.Mutex
	blackjack map[string]*games.BlackjackRound
	mines     map[string]*games.MinesRound
	limbo     map[string]*limboRun
}

func NewGameService(balance *BalanceService, notifier Notifier) *GameService {
	return &GameService{
		balance:   balance,
		notifier:  notifier,
		blackjack: make(map[string]*games.BlackjackRound),
		mines:     make(map[string]*games.MinesRound),
		limbo:     make(map[string]*limboRun),
	}
}

// SetBroadcaster is called once the websocket hub exists.
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	s.broadcaster = b
	s.mu.Unlock()
}

func newRoundRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// checkBet enforces bet ≤ points at round start and returns the user.
func (s *GameService) checkBet(ctx context.Context, userID string, bet int) (*models.User, error) {
	user, err := s.balance.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bet > user.Points {
		return nil, ErrInsufficientBalance
	}
	return user, nil
}

// settle applies a resolved round's delta through the balance mutator, then
// notifies. The notification must never block or fail the settlement.
func (s *GameService) settle(ctx context.Context, user *models.User, game models.GameKind, outcome models.Outcome, bet, delta int, multiplier float64) (*models.GameResult, error) {
	updated, err := s.balance.UpdatePoints(ctx, user.ID, user.Points+delta)
	if err != nil {
		return nil, err
	}

	monitoring.RoundsSettled.WithLabelValues(string(game), string(outcome)).Inc()
	monitoring.PointsWagered.Add(float64(bet))

	result := &models.GameResult{
		Game:         game,
		Result:       outcome,
		BetAmount:    bet,
		PointsChange: delta,
		FinalPoints:  updated.Points,
		Multiplier:   multiplier,
	}

	if s.notifier != nil {
		go s.notifier.SendGameLog(GameLog{
			UserID:       user.ID,
			Username:     user.Username,
			Game:         game,
			Result:       outcome,
			BetAmount:    bet,
			PointsChange: delta,
			FinalPoints:  updated.Points,
			Multiplier:   multiplier,
		})
	}

	s.mu.Lock()
	b := s.broadcaster
	s.mu.Unlock()
	if b != nil {
		b.BalanceUpdate(user.ID, updated.Points)
		b.RoundResult(user.ID, result)
	}

	return result, nil
}

// --- Blackjack ---

// StartBlackjack deals a fresh round, discarding any unsettled one.
func (s *GameService) StartBlackjack(ctx context.Context, userID string, bet int) (*games.BlackjackRound, error) {
	user, err := s.checkBet(ctx, userID, bet)
	if err != nil {
		return nil, err
	}

	round, err := games.NewBlackjackRound(bet, user.WinningChances, newRoundRNG())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.blackjack[userID] = round
	s.mu.Unlock()

	return round, nil
}

func (s *GameService) HitBlackjack(ctx context.Context, userID string) (*games.BlackjackRound, *models.GameResult, error) {
	s.mu.Lock()
	round, ok := s.blackjack[userID]
	s.mu.Unlock()
	if !ok {
		return nil, nil, ErrNoActiveRound
	}

	if _, err := round.Hit(); err != nil {
		if errors.Is(err, games.ErrDeckExhausted) {
			// Invariant violation: reset the round rather than play on.
			s.dropBlackjack(userID)
		}
		return nil, nil, err
	}

	if !round.Over() {
		return round, nil, nil
	}

	result, err := s.settleBlackjack(ctx, userID, round)
	return round, result, err
}

func (s *GameService) StandBlackjack(ctx context.Context, userID string) (*games.BlackjackRound, *models.GameResult, error) {
	s.mu.Lock()
	round, ok := s.blackjack[userID]
	s.mu.Unlock()
	if !ok {
		return nil, nil, ErrNoActiveRound
	}

	if _, err := round.Stand(); err != nil {
		if errors.Is(err, games.ErrDeckExhausted) {
			s.dropBlackjack(userID)
		}
		return nil, nil, err
	}

	result, err := s.settleBlackjack(ctx, userID, round)
	return round, result, err
}

func (s *GameService) settleBlackjack(ctx context.Context, userID string, round *games.BlackjackRound) (*models.GameResult, error) {
	delta, err := round.Settle()
	if err != nil {
		return nil, err
	}
	s.dropBlackjack(userID)

	user, err := s.balance.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.settle(ctx, user, models.GameBlackjack, round.Outcome, round.Bet, delta, 0)
}

func (s *GameService) dropBlackjack(userID string) {
	s.mu.Lock()
	delete(s.blackjack, userID)
	s.mu.Unlock()
}

// --- Limbo ---

// PlayLimbo decides the round up front and runs the presentation ramp on a
// ticker, streaming each step to the broadcaster. Settlement happens exactly
// once, whether the ramp finishes or is cancelled.
func (s *GameService) PlayLimbo(ctx context.Context, userID string, bet int, target float64) error {
	user, err := s.checkBet(ctx, userID, bet)
	if err != nil {
		return err
	}

	round, err := games.NewLimboRound(bet, target, newRoundRNG())
	if err != nil {
		return err
	}

	run := &limboRun{round: round, stop: make(chan struct{})}

	s.mu.Lock()
	if prev, ok := s.limbo[userID]; ok && !prev.stopped {
		prev.stopped = true
		close(prev.stop)
	}
	s.limbo[userID] = run
	s.mu.Unlock()

	go s.runLimbo(user.ID, run)
	return nil
}

func (s *GameService) runLimbo(userID string, run *limboRun) {
	ticker := time.NewTicker(limboTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			multiplier, done := run.round.Tick()

			s.mu.Lock()
			b := s.broadcaster
			s.mu.Unlock()
			if b != nil {
				b.LimboTick(userID, multiplier)
			}

			if done {
				s.settleLimbo(userID, run)
				return
			}
		case <-run.stop:
			// Ramp cancelled (teardown or a new round): settle with the
			// pre-decided outcome, never a second time.
			s.settleLimbo(userID, run)
			return
		}
	}
}

func (s *GameService) settleLimbo(userID string, run *limboRun) {
	delta, err := run.round.Settle()
	if errors.Is(err, games.ErrRoundSettled) {
		return
	}

	s.mu.Lock()
	if s.limbo[userID] == run {
		delete(s.limbo, userID)
	}
	s.mu.Unlock()

	// The runner outlives the request; settlement gets its own context.
	// The balance is re-read here: other rounds can settle while the ramp
	// runs, and the delta must apply to the balance as it stands now, not
	// as it was when the round started.
	ctx := context.Background()
	user, err := s.balance.GetUser(ctx, userID)
	if err != nil {
		log.Printf("Failed to load user for limbo settlement: %v", err)
		return
	}
	if _, err := s.settle(ctx, user, models.GameLimbo, run.round.Outcome(), run.round.Bet, delta, run.round.Target); err != nil {
		log.Printf("Failed to settle limbo round: %v", err)
	}
}

// StopLimbo cancels the ramp for a user, typically on disconnect or logout.
func (s *GameService) StopLimbo(userID string) {
	s.mu.Lock()
	run, ok := s.limbo[userID]
	if ok && !run.stopped {
		run.stopped = true
		close(run.stop)
	}
	s.mu.Unlock()
}

// --- Mines ---

func (s *GameService) StartMines(ctx context.Context, userID string, bet, mineCount int, risk models.RiskLevel) (*games.MinesRound, error) {
	if _, err := s.checkBet(ctx, userID, bet); err != nil {
		return nil, err
	}

	round, err := games.NewMinesRound(bet, mineCount, risk, newRoundRNG())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.mines[userID] = round
	s.mu.Unlock()

	return round, nil
}

func (s *GameService) RevealMines(ctx context.Context, userID string, cell int) (*games.MinesReveal, *models.GameResult, error) {
	s.mu.Lock()
	round, ok := s.mines[userID]
	s.mu.Unlock()
	if !ok {
		return nil, nil, ErrNoActiveRound
	}

	reveal, err := round.Reveal(cell)
	if err != nil {
		return nil, nil, err
	}

	if !round.Over() {
		return reveal, nil, nil
	}

	result, err := s.settleMines(ctx, userID, round)
	return reveal, result, err
}

func (s *GameService) WithdrawMines(ctx context.Context, userID string) (*models.GameResult, error) {
	s.mu.Lock()
	round, ok := s.mines[userID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoActiveRound
	}

	if err := round.Withdraw(); err != nil {
		return nil, err
	}

	return s.settleMines(ctx, userID, round)
}

func (s *GameService) settleMines(ctx context.Context, userID string, round *games.MinesRound) (*models.GameResult, error) {
	delta, err := round.Settle()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.mines, userID)
	s.mu.Unlock()

	user, err := s.balance.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.settle(ctx, user, models.GameMines, round.Outcome, round.Bet, delta, round.Multiplier)
}

// Teardown drops a user's live rounds, cancelling any running ramp.
func (s *GameService) Teardown(userID string) {
	s.StopLimbo(userID)

	s.mu.Lock()
	delete(s.blackjack, userID)
	delete(s.mines, userID)
	s.mu.Unlock()
}
