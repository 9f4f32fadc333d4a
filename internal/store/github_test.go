package store_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/store"
)

// fileHost fakes the contents API for a single file: GET returns the current
// content and sha, PUT rejects stale shas with 409.
type fileHost struct {
	content []byte
	sha     string
	version int
}

func (h *fileHost) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if h.sha == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{
				"content": base64.StdEncoding.EncodeToString(h.content),
				"sha":     h.sha,
			})
		case http.MethodPut:
			var update struct {
				Message string `json:"message"`
				Content string `json:"content"`
				SHA     string `json:"sha"`
			}
			if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
				t.Errorf("Bad update body: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if update.SHA != h.sha {
				w.WriteHeader(http.StatusConflict)
				return
			}
			raw, err := base64.StdEncoding.DecodeString(update.Content)
			if err != nil {
				t.Errorf("Update content is not base64: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			h.content = raw
			h.version++
			h.sha = string(rune('a' + h.version))
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func TestGitHubStoreRoundTrip(t *testing.T) {
	host := &fileHost{}
	srv := httptest.NewServer(host.handler(t))
	defer srv.Close()

	st := store.NewGitHubStore("test-token", srv.URL, srv.URL)
	ctx := context.Background()

	// A missing file reads as an empty document.
	doc, token, err := st.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("Failed to read missing file: %v", err)
	}
	if len(doc.Users) != 0 || token != "" {
		t.Errorf("Missing file should be empty, got %d users, token %q", len(doc.Users), token)
	}

	doc.Users = append(doc.Users, models.User{ID: "u1", Username: "alice", Points: 50})
	if err := st.WriteUsers(ctx, doc, token); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	doc, token, err = st.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if token == "" {
		t.Error("Existing file should carry a token")
	}
	if len(doc.Users) != 1 || doc.Users[0].Username != "alice" {
		t.Fatalf("Unexpected document: %+v", doc)
	}
}

func TestGitHubStoreWrappedBase64(t *testing.T) {
	users, _ := json.Marshal(store.UsersDocument{Users: []models.User{{ID: "u1", Username: "alice"}}})

	// The API wraps base64 payloads at 60 columns.
	encoded := base64.StdEncoding.EncodeToString(users)
	wrapped := ""
	for len(encoded) > 60 {
		wrapped += encoded[:60] + "\n"
		encoded = encoded[60:]
	}
	wrapped += encoded + "\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "sha": "abc"})
	}))
	defer srv.Close()

	st := store.NewGitHubStore("test-token", srv.URL, srv.URL)
	doc, token, err := st.ReadUsers(context.Background())
	if err != nil {
		t.Fatalf("Failed to read wrapped content: %v", err)
	}
	if token != "abc" {
		t.Errorf("Expected sha abc, got %q", token)
	}
	if len(doc.Users) != 1 || doc.Users[0].Username != "alice" {
		t.Errorf("Unexpected document: %+v", doc)
	}
}

func TestGitHubStoreWriteConflict(t *testing.T) {
	host := &fileHost{content: []byte(`{"users":[]}`), sha: "a"}
	srv := httptest.NewServer(host.handler(t))
	defer srv.Close()

	st := store.NewGitHubStore("test-token", srv.URL, srv.URL)
	ctx := context.Background()

	doc, token, err := st.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}

	// Someone else writes in between.
	host.sha = "b"

	err = st.WriteUsers(ctx, doc, token)
	if !errors.Is(err, store.ErrWriteConflict) {
		t.Errorf("Expected ErrWriteConflict, got %v", err)
	}
}

func TestGitHubStoreTransactions(t *testing.T) {
	host := &fileHost{}
	srv := httptest.NewServer(host.handler(t))
	defer srv.Close()

	st := store.NewGitHubStore("test-token", srv.URL, srv.URL)
	ctx := context.Background()

	doc, token, err := st.ReadTransactions(ctx)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}

	doc.Transactions = append(doc.Transactions, models.Transaction{
		ID: "t1", UserID: "u1", Amount: 100, Status: models.TransactionStatusPending,
	})
	if err := st.WriteTransactions(ctx, doc, token); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	doc, _, err = st.ReadTransactions(ctx)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if len(doc.Transactions) != 1 || doc.Transactions[0].Status != models.TransactionStatusPending {
		t.Fatalf("Unexpected document: %+v", doc)
	}
}
