package services

import (
	"context"
	"fmt"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/store"
)

// ReferralService is the read model for a user's referral dashboard.
type ReferralService struct {
	store store.Store
}

func NewReferralService(st store.Store) *ReferralService {
	return &ReferralService{store: st}
}

// Stats resolves the referral key to its owner and lists everyone that owner
// referred. (The web client filtered referredBy against the key itself, which
// never matched anything; referredBy holds the referrer's id.)
func (s *ReferralService) Stats(ctx context.Context, referralKey string) (*models.ReferralStats, error) {
	doc, _, err := s.store.ReadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %v", err)
	}

	ownerID := ""
	for i := range doc.Users {
		if doc.Users[i].PeopleReferKey == referralKey {
			ownerID = doc.Users[i].ID
			break
		}
	}
	if ownerID == "" {
		return nil, ErrUserNotFound
	}

	stats := &models.ReferralStats{ReferredUsers: []models.ReferredUser{}}
	for i := range doc.Users {
		if doc.Users[i].ReferredBy != ownerID {
			continue
		}
		stats.TotalReferrals++
		if doc.Users[i].ReferralPaid {
			stats.PaidReferrals++
		} else {
			stats.PendingReferrals++
		}
		stats.ReferredUsers = append(stats.ReferredUsers, models.ReferredUser{
			Username: doc.Users[i].Username,
			Points:   doc.Users[i].Points,
			Paid:     doc.Users[i].ReferralPaid,
		})
	}

	return stats, nil
}
