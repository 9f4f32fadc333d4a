package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/services"
)

type UserHandler struct {
	balance    *services.BalanceService
	accounts   *services.AccountService
	referrals  *services.ReferralService
	deposits   *services.DepositService
	sessions   *services.SessionService
	gameEngine *services.GameService
}

func NewUserHandler(balance *services.BalanceService, accounts *services.AccountService, referrals *services.ReferralService, deposits *services.DepositService, sessions *services.SessionService, gameEngine *services.GameService) *UserHandler {
	return &UserHandler{
		balance:    balance,
		accounts:   accounts,
		referrals:  referrals,
		deposits:   deposits,
		sessions:   sessions,
		gameEngine: gameEngine,
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID := c.GetString("user_id")
	sessionID := c.GetString("session_id")

	session, err := h.sessions.Load(userID, sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
		return
	}

	// The store document is authoritative for points; the session copy can
	// be stale after settlements.
	user, err := h.balance.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": sanitize(user),
		"session": gin.H{
			"session_id":    session.SessionID,
			"created_at":    session.CreatedAt,
			"last_accessed": session.LastAccessed,
		},
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	sessionID := c.GetString("session_id")

	// Drop live rounds first so a running Limbo ramp settles before the
	// session disappears.
	h.gameEngine.Teardown(userID)

	if err := h.sessions.Clear(userID, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *UserHandler) UpdateWinningChances(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.WinningChancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.UpdateWinningChances(c.Request.Context(), userID, req.WinningChances)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update winning chances"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": sanitize(user)})
}

func (h *UserHandler) GetReferralStats(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.balance.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	stats, err := h.referrals.Stats(c.Request.Context(), user.PeopleReferKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load referral stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"referral_key": user.PeopleReferKey,
		"stats":        stats,
	})
}

func (h *UserHandler) CreateDeposit(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.deposits.Create(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit deposit request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transaction": tx})
}
