package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"crazypaisa-backend/internal/models"
	"crazypaisa-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams live round events to connected clients and is the
// GameService's Broadcaster.
type WebSocketHandler struct {
	gameEngine *services.GameService
	balance    *services.BalanceService
	hub        *WebSocketHub
}

type WebSocketHub struct {
	clients    map[string]*websocket.Conn
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
}

type Message struct {
	Type   string      `json:"type"`
	UserID string      `json:"user_id,omitempty"`
	Data   interface{} `json:"data"`
}

func NewWebSocketHandler(gameEngine *services.GameService, balance *services.BalanceService) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		gameEngine: gameEngine,
		balance:    balance,
		hub:        hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
	}

	h.hub.register <- client

	defer func() {
		// A dropped connection cancels any running ramp for this user.
		h.gameEngine.StopLimbo(userID)
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendBalance(c, client)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.sendPong(client)
	case "STOP_LIMBO":
		h.gameEngine.StopLimbo(client.UserID)
	}
}

// sendBalance and sendPong go through the hub like every other message: the
// hub goroutine is the connection's only writer.

func (h *WebSocketHandler) sendBalance(c *gin.Context, client *Client) {
	user, err := h.balance.GetUser(c.Request.Context(), client.UserID)
	if err != nil {
		log.Printf("Failed to get user for WS: %v", err)
		return
	}

	h.hub.broadcast <- &Message{
		Type:   "BALANCE_UPDATE",
		UserID: client.UserID,
		Data: gin.H{
			"points":          user.Points,
			"winning_chances": user.WinningChances,
		},
	}
}

func (h *WebSocketHandler) sendPong(client *Client) {
	h.hub.broadcast <- &Message{
		Type:   "PONG",
		UserID: client.UserID,
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.UserID] = client.Conn
			log.Printf("Client connected: %s", client.UserID)

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.UserID]; ok {
				delete(hub.clients, client.UserID)
				log.Printf("Client disconnected: %s", client.UserID)
			}

		case message := <-hub.broadcast:
			hub.send(message)
		}
	}
}

func (hub *WebSocketHub) send(message *Message) {
	if conn, ok := hub.clients[message.UserID]; ok {
		conn.WriteJSON(message)
	}
}

// LimboTick streams one step of the multiplier ramp.
func (h *WebSocketHandler) LimboTick(userID string, multiplier float64) {
	h.hub.broadcast <- &Message{
		Type:   "LIMBO_TICK",
		UserID: userID,
		Data: gin.H{
			"multiplier": multiplier,
			"timestamp":  time.Now().Unix(),
		},
	}
}

// RoundResult announces a settled round.
func (h *WebSocketHandler) RoundResult(userID string, result *models.GameResult) {
	h.hub.broadcast <- &Message{
		Type:   "ROUND_RESULT",
		UserID: userID,
		Data:   result,
	}
}

// BalanceUpdate pushes the post-settlement balance.
func (h *WebSocketHandler) BalanceUpdate(userID string, points int) {
	h.hub.broadcast <- &Message{
		Type:   "BALANCE_UPDATE",
		UserID: userID,
		Data: gin.H{
			"points": points,
		},
	}
}
