package models

import "fmt"

type SignupRequest struct {
	Name         string `json:"name" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type BlackjackStartRequest struct {
	Bet int `json:"bet"`
}

type LimboPlayRequest struct {
	Bet        int     `json:"bet"`
	Multiplier float64 `json:"multiplier"`
}

type MinesStartRequest struct {
	Bet   int       `json:"bet"`
	Mines int       `json:"mines"`
	Risk  RiskLevel `json:"risk"`
}

type MinesRevealRequest struct {
	Cell int `json:"cell"`
}

type DepositRequest struct {
	Amount        int    `json:"amount"`
	TransactionID string `json:"transaction_id" binding:"required"`
}

type WinningChancesRequest struct {
	WinningChances int `json:"winning_chances"`
}

func (r *LimboPlayRequest) Validate() error {
	if r.Bet < 1 {
		return fmt.Errorf("bet must be at least 1 point")
	}
	if r.Multiplier <= 1 {
		return fmt.Errorf("target multiplier must be greater than 1")
	}
	return nil
}

func (r *MinesStartRequest) Validate() error {
	if r.Bet < 1 {
		return fmt.Errorf("bet must be at least 1 point")
	}
	switch r.Mines {
	case 3, 5, 7:
	default:
		return fmt.Errorf("mine count must be 3, 5 or 7")
	}
	switch r.Risk {
	case RiskEasy, RiskMedium, RiskHard, RiskExtreme:
	case "":
		r.Risk = RiskMedium
	default:
		return fmt.Errorf("invalid risk level: %s", r.Risk)
	}
	return nil
}

func (r *MinesRevealRequest) Validate() error {
	if r.Cell < 0 || r.Cell > 24 {
		return fmt.Errorf("cell must be between 0 and 24")
	}
	return nil
}

func (r *DepositRequest) Validate() error {
	if r.Amount < 1 {
		return fmt.Errorf("deposit amount must be at least 1")
	}
	if r.TransactionID == "" {
		return fmt.Errorf("transaction reference is required")
	}
	return nil
}

func (r *WinningChancesRequest) Validate() error {
	if r.WinningChances < 0 || r.WinningChances > 100 {
		return fmt.Errorf("winning chances must be between 0 and 100")
	}
	return nil
}
