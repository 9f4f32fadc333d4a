package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crazypaisa-backend/internal/config"
	"crazypaisa-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keySession   = "user:%s:session:%s"
	keyRateLimit = "ratelimit:%s:%s"

	sessionTTL = 7 * 24 * time.Hour
)

// SessionService holds the logged-in user's identity between requests. The
// store document stays authoritative for points; the session is a cache.
type SessionService struct {
	client *redis.Client
	ctx    context.Context
}

func NewSessionService(cfg *config.Config) (*SessionService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &SessionService{client: client, ctx: ctx}, nil
}

func (s *SessionService) Save(session *models.UserSession) error {
	key := fmt.Sprintf(keySession, session.User.ID, session.SessionID)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(s.ctx, key, data, sessionTTL).Err()
}

func (s *SessionService) Load(userID, sessionID string) (*models.UserSession, error) {
	key := fmt.Sprintf(keySession, userID, sessionID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var session models.UserSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}

	session.LastAccessed = time.Now()
	if updated, err := json.Marshal(session); err == nil {
		s.client.Set(s.ctx, key, updated, sessionTTL)
	}

	return &session, nil
}

func (s *SessionService) Clear(userID, sessionID string) error {
	key := fmt.Sprintf(keySession, userID, sessionID)
	return s.client.Del(s.ctx, key).Err()
}

func (s *SessionService) CheckRateLimit(userID, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(keyRateLimit, userID, action)

	count, err := s.client.Incr(s.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(s.ctx, key, window)
	}

	return count <= int64(limit), nil
}

func (s *SessionService) Close() error {
	return s.client.Close()
}
