package services_test

import (
	"os"
	"testing"
	"time"

	"crazypaisa-backend/internal/config"
	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/services"
)

func setupTestSessions(t *testing.T) *services.SessionService {
	t.Helper()

	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	sessions, err := services.NewSessionService(&config.Config{RedisURL: addr})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return sessions
}

func TestSessionLifecycle(t *testing.T) {
	sessions := setupTestSessions(t)
	defer sessions.Close()

	session := &models.UserSession{
		SessionID:    "test-session",
		User:         models.User{ID: "test-user", Username: "alice", Points: 50},
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}

	if err := sessions.Save(session); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := sessions.Load("test-user", "test-session")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded.User.Username != "alice" {
		t.Errorf("Expected alice, got %s", loaded.User.Username)
	}

	if err := sessions.Clear("test-user", "test-session"); err != nil {
		t.Fatalf("Failed to clear session: %v", err)
	}
	if _, err := sessions.Load("test-user", "test-session"); err == nil {
		t.Error("Cleared session should not load")
	}
}

func TestCheckRateLimit(t *testing.T) {
	sessions := setupTestSessions(t)
	defer sessions.Close()

	userID := "test-ratelimit-user"
	for i := 0; i < 3; i++ {
		allowed, err := sessions.CheckRateLimit(userID, "test-action", 3, time.Second)
		if err != nil {
			t.Fatalf("Failed to check rate limit: %v", err)
		}
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	allowed, err := sessions.CheckRateLimit(userID, "test-action", 3, time.Second)
	if err != nil {
		t.Fatalf("Failed to check rate limit: %v", err)
	}
	if allowed {
		t.Error("Fourth request should be rejected")
	}
}
