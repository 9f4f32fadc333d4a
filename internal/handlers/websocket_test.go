package handlers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"crazypaisa-backend/internal/handlers"
	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/services"
	"crazypaisa-backend/internal/store"
)

// wsTestStore is a fixed users document behind the store.Store interface.
type wsTestStore struct {
	users []models.User
}

func (s *wsTestStore) ReadUsers(ctx context.Context) (*store.UsersDocument, string, error) {
	return &store.UsersDocument{Users: append([]models.User{}, s.users...)}, "v1", nil
}

func (s *wsTestStore) WriteUsers(ctx context.Context, doc *store.UsersDocument, token string) error {
	s.users = append([]models.User{}, doc.Users...)
	return nil
}

func (s *wsTestStore) ReadTransactions(ctx context.Context) (*store.TransactionsDocument, string, error) {
	return &store.TransactionsDocument{}, "v1", nil
}

func (s *wsTestStore) WriteTransactions(ctx context.Context, doc *store.TransactionsDocument, token string) error {
	return nil
}

func TestWebSocketBalanceAndPong(t *testing.T) {
	gin.SetMode(gin.TestMode)

	st := &wsTestStore{users: []models.User{{ID: "u1", Username: "alice", Points: 50, WinningChances: 45}}}
	balance := services.NewBalanceService(st)
	engine := services.NewGameService(balance, nil)
	wsHandler := handlers.NewWebSocketHandler(engine, balance)

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set("user_id", "u1")
		wsHandler.HandleWebSocket(c)
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// The hub delivers the initial balance on connect.
	var msg handlers.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read initial message: %v", err)
	}
	if msg.Type != "BALANCE_UPDATE" {
		t.Errorf("Expected BALANCE_UPDATE, got %s", msg.Type)
	}
	data, ok := msg.Data.(map[string]interface{})
	if !ok || data["points"] != float64(50) {
		t.Errorf("Unexpected balance payload: %+v", msg.Data)
	}

	// PING is answered through the same hub path.
	if err := conn.WriteJSON(handlers.Message{Type: "PING"}); err != nil {
		t.Fatalf("Failed to send ping: %v", err)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read pong: %v", err)
	}
	if msg.Type != "PONG" {
		t.Errorf("Expected PONG, got %s", msg.Type)
	}
}
