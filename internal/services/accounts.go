package services

import (
	"context"
	"errors"
	"fmt"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/store"

	"github.com/google/uuid"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	// ErrInvalidCredentials is deliberately the same for a wrong password
	// and an unknown username, so logins can't be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// CredentialVerifier compares a stored credential with a supplied one. The
// store holds plaintext passwords today; swapping in a hashing verifier does
// not touch the account flow.
type CredentialVerifier interface {
	Verify(stored, supplied string) bool
}

type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, supplied string) bool {
	return stored == supplied
}

type AccountService struct {
	store    store.Store
	verifier CredentialVerifier
}

func NewAccountService(st store.Store, verifier CredentialVerifier) *AccountService {
	if verifier == nil {
		verifier = PlaintextVerifier{}
	}
	return &AccountService{store: st, verifier: verifier}
}

// Register creates a new account with the signup grant of 5 points and a
// fresh referral key. A valid referral code links the new user to its owner.
func (s *AccountService) Register(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	user, err := s.registerOnce(ctx, req)
	if errors.Is(err, store.ErrWriteConflict) {
		user, err = s.registerOnce(ctx, req)
	}
	return user, err
}

func (s *AccountService) registerOnce(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	doc, token, err := s.store.ReadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %v", err)
	}

	for i := range doc.Users {
		if doc.Users[i].Username == req.Username {
			return nil, ErrUsernameTaken
		}
		if doc.Users[i].Email == req.Email {
			return nil, ErrEmailTaken
		}
	}

	user := models.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		Points:         models.InitialPoints,
		WinningChances: models.DefaultWinningChances,
		PeopleReferKey: uuid.NewString(),
	}

	if req.ReferralCode != "" {
		for i := range doc.Users {
			if doc.Users[i].PeopleReferKey == req.ReferralCode {
				user.ReferredBy = doc.Users[i].ID
				break
			}
		}
	}

	doc.Users = append(doc.Users, user)
	if err := s.store.WriteUsers(ctx, doc, token); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login finds the user whose username and credential both match.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.User, error) {
	doc, _, err := s.store.ReadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %v", err)
	}

	for i := range doc.Users {
		if doc.Users[i].Username == username && s.verifier.Verify(doc.Users[i].Password, password) {
			user := doc.Users[i]
			return &user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// UpdateWinningChances tunes the per-user draw bias.
func (s *AccountService) UpdateWinningChances(ctx context.Context, userID string, chances int) (*models.User, error) {
	user, err := s.updateChancesOnce(ctx, userID, chances)
	if errors.Is(err, store.ErrWriteConflict) {
		user, err = s.updateChancesOnce(ctx, userID, chances)
	}
	return user, err
}

func (s *AccountService) updateChancesOnce(ctx context.Context, userID string, chances int) (*models.User, error) {
	doc, token, err := s.store.ReadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %v", err)
	}

	for i := range doc.Users {
		if doc.Users[i].ID == userID {
			doc.Users[i].WinningChances = chances
			if err := s.store.WriteUsers(ctx, doc, token); err != nil {
				return nil, err
			}
			user := doc.Users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}
