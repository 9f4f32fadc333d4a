package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GitHubStore keeps the user and transaction documents as JSON files behind
// the GitHub contents API. The file's blob sha doubles as the optimistic
// concurrency token: a PUT with a stale sha is rejected by the host.
type GitHubStore struct {
	token           string
	usersURL        string
	transactionsURL string
	client          *http.Client
}

func NewGitHubStore(token, usersURL, transactionsURL string) *GitHubStore {
	return &GitHubStore{
		token:           token,
		usersURL:        usersURL,
		transactionsURL: transactionsURL,
		client:          &http.Client{Timeout: 15 * time.Second},
	}
}

type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

type contentsUpdate struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

func (s *GitHubStore) getFile(ctx context.Context, url string, out interface{}) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "token "+s.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch file: %v", err)
	}
	defer resp.Body.Close()

	// A missing file reads as an empty document with no token; the first
	// write creates it.
	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch file: status %d", resp.StatusCode)
	}

	var contents contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		return "", fmt.Errorf("failed to decode contents response: %v", err)
	}

	// The API wraps base64 at 60 columns.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(contents.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %v", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return "", fmt.Errorf("failed to parse document: %v", err)
		}
	}

	return contents.SHA, nil
}

func (s *GitHubStore) putFile(ctx context.Context, url string, doc interface{}, token string) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	body, err := json.Marshal(contentsUpdate{
		Message: "Update file content",
		Content: base64.StdEncoding.EncodeToString(raw),
		SHA:     token,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "token "+s.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update file: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// Stale sha: someone wrote between our read and this write.
		return ErrWriteConflict
	default:
		return fmt.Errorf("failed to update file: status %d", resp.StatusCode)
	}
}

func (s *GitHubStore) ReadUsers(ctx context.Context) (*UsersDocument, string, error) {
	doc := &UsersDocument{}
	token, err := s.getFile(ctx, s.usersURL, doc)
	if err != nil {
		return nil, "", err
	}
	return doc, token, nil
}

func (s *GitHubStore) WriteUsers(ctx context.Context, doc *UsersDocument, token string) error {
	return s.putFile(ctx, s.usersURL, doc, token)
}

func (s *GitHubStore) ReadTransactions(ctx context.Context) (*TransactionsDocument, string, error) {
	doc := &TransactionsDocument{}
	token, err := s.getFile(ctx, s.transactionsURL, doc)
	if err != nil {
		return nil, "", err
	}
	return doc, token, nil
}

func (s *GitHubStore) WriteTransactions(ctx context.Context, doc *TransactionsDocument, token string) error {
	return s.putFile(ctx, s.transactionsURL, doc, token)
}
