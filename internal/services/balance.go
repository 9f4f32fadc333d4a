package services

import (
	"context"
	"errors"
	"fmt"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/store"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// BalanceService is the only path that mutates user points. Callers hand it
// the final absolute balance; it does not recompute deltas. That keeps the
// client-trusted settlement of the source behind one seam, so a
// server-authoritative mutator could replace this without touching the
// engines.
type BalanceService struct {
	store store.Store
}

func NewBalanceService(st store.Store) *BalanceService {
	return &BalanceService{store: st}
}

func (s *BalanceService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	doc, _, err := s.store.ReadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %v", err)
	}
	for i := range doc.Users {
		if doc.Users[i].ID == userID {
			user := doc.Users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdatePoints persists a new absolute balance for the user and applies the
// referral bonus rule as part of the same write. A write conflict is retried
// once against a fresh read before being surfaced.
func (s *BalanceService) UpdatePoints(ctx context.Context, userID string, newPoints int) (*models.User, error) {
	if newPoints < 0 {
		return nil, ErrInsufficientBalance
	}

	user, err := s.updatePointsOnce(ctx, userID, newPoints)
	if errors.Is(err, store.ErrWriteConflict) {
		user, err = s.updatePointsOnce(ctx, userID, newPoints)
	}
	return user, err
}

func (s *BalanceService) updatePointsOnce(ctx context.Context, userID string, newPoints int) (*models.User, error) {
	doc, token, err := s.store.ReadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %v", err)
	}

	idx := -1
	for i := range doc.Users {
		if doc.Users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrUserNotFound
	}

	doc.Users[idx].Points = newPoints
	s.applyReferralBonus(doc, idx)

	if err := s.store.WriteUsers(ctx, doc, token); err != nil {
		return nil, err
	}

	user := doc.Users[idx]
	return &user, nil
}

// applyReferralBonus pays the referrer 5 points the first time a referred
// user's balance reaches 100, marking the referral paid in the same document
// so it can never fire twice.
func (s *BalanceService) applyReferralBonus(doc *store.UsersDocument, idx int) {
	user := &doc.Users[idx]
	if user.ReferredBy == "" || user.ReferralPaid || user.Points < models.ReferralThresholdPoints {
		return
	}

	for i := range doc.Users {
		if doc.Users[i].ID == user.ReferredBy {
			doc.Users[i].Points += models.ReferralBonusPoints
			user.ReferralPaid = true
			return
		}
	}
}
