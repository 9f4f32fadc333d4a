package services_test

import (
	"context"
	"strconv"
	"sync"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/store"
)

// memStore is an in-memory store.Store with the same token semantics as the
// real file host: reads hand out a version token, writes with a stale token
// fail with ErrWriteConflict. failUserWrites injects conflicts to exercise
// retry paths.
type memStore struct {
	mu sync.Mutex

	users     []models.User
	usersVer  int
	userFails int

	transactions []models.Transaction
	txVer        int
}

func newMemStore(users ...models.User) *memStore {
	return &memStore{users: users}
}

func (m *memStore) ReadUsers(ctx context.Context) (*store.UsersDocument, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := &store.UsersDocument{Users: append([]models.User{}, m.users...)}
	return doc, strconv.Itoa(m.usersVer), nil
}

func (m *memStore) WriteUsers(ctx context.Context, doc *store.UsersDocument, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userFails > 0 {
		m.userFails--
		return store.ErrWriteConflict
	}
	if token != strconv.Itoa(m.usersVer) {
		return store.ErrWriteConflict
	}
	m.users = append([]models.User{}, doc.Users...)
	m.usersVer++
	return nil
}

func (m *memStore) ReadTransactions(ctx context.Context) (*store.TransactionsDocument, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := &store.TransactionsDocument{Transactions: append([]models.Transaction{}, m.transactions...)}
	return doc, strconv.Itoa(m.txVer), nil
}

func (m *memStore) WriteTransactions(ctx context.Context, doc *store.TransactionsDocument, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token != strconv.Itoa(m.txVer) {
		return store.ErrWriteConflict
	}
	m.transactions = append([]models.Transaction{}, doc.Transactions...)
	m.txVer++
	return nil
}

// failNextUserWrites makes the next n user writes conflict regardless of
// token.
func (m *memStore) failNextUserWrites(n int) {
	m.mu.Lock()
	m.userFails = n
	m.mu.Unlock()
}

func (m *memStore) user(id string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
