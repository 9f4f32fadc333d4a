package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/store"

	"github.com/google/uuid"
)

// DepositService records deposit requests. Crediting the balance once the
// payment is verified is an operator concern outside this service.
type DepositService struct {
	store store.Store
}

func NewDepositService(st store.Store) *DepositService {
	return &DepositService{store: st}
}

func (s *DepositService) Create(ctx context.Context, userID string, req *models.DepositRequest) (*models.Transaction, error) {
	tx, err := s.createOnce(ctx, userID, req)
	if errors.Is(err, store.ErrWriteConflict) {
		tx, err = s.createOnce(ctx, userID, req)
	}
	return tx, err
}

func (s *DepositService) createOnce(ctx context.Context, userID string, req *models.DepositRequest) (*models.Transaction, error) {
	doc, token, err := s.store.ReadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %v", err)
	}

	tx := models.Transaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Status:        models.TransactionStatusPending,
	}

	doc.Transactions = append(doc.Transactions, tx)
	if err := s.store.WriteTransactions(ctx, doc, token); err != nil {
		return nil, err
	}

	return &tx, nil
}
