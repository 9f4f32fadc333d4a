package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/monitoring"
	"crazypaisa-backend/internal/services"
)

type AuthHandler struct {
	accounts   *services.AccountService
	sessions   *services.SessionService
	jwtService *services.JWTService
}

func NewAuthHandler(accounts *services.AccountService, sessions *services.SessionService, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		sessions:   sessions,
		jwtService: jwtService,
	}
}

// sanitize strips the credential before a user leaves the API.
func sanitize(user *models.User) models.User {
	u := *user
	u.Password = ""
	return u
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	monitoring.UsersRegistered.Inc()

	h.issueSession(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	h.issueSession(c, user)
}

func (h *AuthHandler) issueSession(c *gin.Context, user *models.User) {
	session := &models.UserSession{
		SessionID:    uuid.NewString(),
		User:         sanitize(user),
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}

	if err := h.sessions.Save(session); err != nil {
		log.Printf("Failed to save session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, session.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    session.User,
	})
}
