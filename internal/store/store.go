package store

import (
	"context"
	"errors"

	"crazypaisa-backend/internal/models"
)

// The persistence layer is a pair of JSON documents on a remote file host.
// Reads return the document plus an opaque concurrency token; writes must
// present the token they read and fail with ErrWriteConflict if someone else
// wrote in between. Read-modify-write is NOT atomic beyond that token, so
// two sessions for the same user can still race; callers retry once and then
// give up.

var ErrWriteConflict = errors.New("store: write conflict")

type UsersDocument struct {
	Users []models.User `json:"users"`
}

type TransactionsDocument struct {
	Transactions []models.Transaction `json:"transactions"`
}

type Store interface {
	ReadUsers(ctx context.Context) (*UsersDocument, string, error)
	WriteUsers(ctx context.Context, doc *UsersDocument, token string) error

	ReadTransactions(ctx context.Context) (*TransactionsDocument, string, error)
	WriteTransactions(ctx context.Context, doc *TransactionsDocument, token string) error
}
