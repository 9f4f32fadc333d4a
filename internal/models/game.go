package models

type GameKind string

const (
	GameLimbo     GameKind = "Limbo"
	GameMines     GameKind = "Mines"
	GameBlackjack GameKind = "Blackjack"
)

type Outcome string

const (
	OutcomeWin      Outcome = "win"
	OutcomeLose     Outcome = "lose"
	OutcomePush     Outcome = "push"
	OutcomeWithdraw Outcome = "withdraw"
)

type RiskLevel string

const (
	RiskEasy    RiskLevel = "easy"
	RiskMedium  RiskLevel = "medium"
	RiskHard    RiskLevel = "hard"
	RiskExtreme RiskLevel = "extreme"
)

// GameResult is what a settled round reports back to the caller and to the
// notification sink.
type GameResult struct {
	Game         GameKind `json:"game"`
	Result       Outcome  `json:"result"`
	BetAmount    int      `json:"bet_amount"`
	PointsChange int      `json:"points_change"`
	FinalPoints  int      `json:"final_points"`
	Multiplier   float64  `json:"multiplier,omitempty"`
}
