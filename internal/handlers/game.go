package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"crazypaisa-backend/internal/games"
	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/services"
	"crazypaisa-backend/internal/store"
)

type GameHandler struct {
	engine *services.GameService
}

func NewGameHandler(engine *services.GameService) *GameHandler {
	return &GameHandler{engine: engine}
}

func respondGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, services.ErrNoActiveRound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No active round"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, games.ErrInvalidBet),
		errors.Is(err, games.ErrInvalidTarget),
		errors.Is(err, games.ErrInvalidMineCount),
		errors.Is(err, games.ErrInvalidRisk),
		errors.Is(err, games.ErrCellOutOfRange),
		errors.Is(err, games.ErrCellRevealed),
		errors.Is(err, games.ErrRoundSettled),
		errors.Is(err, games.ErrRoundActive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrWriteConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Balance update conflicted, please retry"})
	case errors.Is(err, games.ErrDeckExhausted):
		// Should be impossible with a 52-card deck; the round was reset.
		log.Printf("Deck exhausted mid-round: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Round aborted, please start again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Game operation failed", "details": err.Error()})
	}
}

func blackjackView(round *games.BlackjackRound, result *models.GameResult) gin.H {
	view := gin.H{
		"bet":          round.Bet,
		"player":       round.Player,
		"dealer":       round.Dealer,
		"player_value": games.HandValue(round.Player),
		"dealer_value": games.HandValue(round.Dealer),
		"state":        round.State,
	}
	if round.Outcome != "" {
		view["outcome"] = round.Outcome
	}
	if result != nil {
		view["result"] = result
	}
	return view
}

func (h *GameHandler) StartBlackjack(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.BlackjackStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	round, err := h.engine.StartBlackjack(c.Request.Context(), userID, req.Bet)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "round": blackjackView(round, nil)})
}

func (h *GameHandler) HitBlackjack(c *gin.Context) {
	userID := c.GetString("user_id")

	round, result, err := h.engine.HitBlackjack(c.Request.Context(), userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "round": blackjackView(round, result)})
}

func (h *GameHandler) StandBlackjack(c *gin.Context) {
	userID := c.GetString("user_id")

	round, result, err := h.engine.StandBlackjack(c.Request.Context(), userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "round": blackjackView(round, result)})
}

func (h *GameHandler) PlayLimbo(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.LimboPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.engine.PlayLimbo(c.Request.Context(), userID, req.Bet, req.Multiplier); err != nil {
		respondGameError(c, err)
		return
	}

	// The ramp streams over the websocket; the outcome is not disclosed here.
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bet":        req.Bet,
		"multiplier": req.Multiplier,
		"status":     "running",
	})
}

func (h *GameHandler) StopLimbo(c *gin.Context) {
	userID := c.GetString("user_id")
	h.engine.StopLimbo(userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GameHandler) StartMines(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.MinesStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := h.engine.StartMines(c.Request.Context(), userID, req.Bet, req.Mines, req.Risk)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bet":        round.Bet,
		"mines":      round.Mines,
		"risk":       round.Risk,
		"grid_size":  games.MinesGridSize,
		"multiplier": round.Multiplier,
	})
}

func (h *GameHandler) RevealMines(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.MinesRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reveal, result, err := h.engine.RevealMines(c.Request.Context(), userID, req.Cell)
	if err != nil {
		respondGameError(c, err)
		return
	}

	resp := gin.H{"success": true, "reveal": reveal}
	if result != nil {
		resp["result"] = result
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) WithdrawMines(c *gin.Context) {
	userID := c.GetString("user_id")

	result, err := h.engine.WithdrawMines(c.Request.Context(), userID)
	if err != nil {
		respondGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
