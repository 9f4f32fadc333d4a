package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"crazypaisa-backend/internal/models"
)

// Notifier delivers a human-readable game-result record to an external
// channel. Delivery is fire-and-forget: failures are logged and never reach
// game logic.
type Notifier interface {
	SendGameLog(entry GameLog)
}

type GameLog struct {
	UserID       string
	Username     string
	Game         models.GameKind
	Result       models.Outcome
	BetAmount    int
	PointsChange int
	FinalPoints  int
	Multiplier   float64
}

// DiscordNotifier posts game results as webhook embeds, colored by outcome.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
}

func (n *DiscordNotifier) SendGameLog(entry GameLog) {
	if n.webhookURL == "" {
		return
	}

	color := 0xffff00
	switch entry.Result {
	case models.OutcomeWin, models.OutcomeWithdraw:
		color = 0x00ff00
	case models.OutcomeLose:
		color = 0xff0000
	}

	change := fmt.Sprintf("+%d points", entry.PointsChange)
	if entry.PointsChange < 0 {
		change = fmt.Sprintf("-%d points", -entry.PointsChange)
	}

	e := embed{
		Title: fmt.Sprintf("%s Game Result", entry.Game),
		Color: color,
		Fields: []embedField{
			{Name: "Player", Value: entry.Username, Inline: true},
			{Name: "Result", Value: string(entry.Result), Inline: true},
			{Name: "Bet Amount", Value: fmt.Sprintf("%d points", entry.BetAmount), Inline: true},
			{Name: "Points Change", Value: change, Inline: true},
			{Name: "Final Balance", Value: fmt.Sprintf("%d points", entry.FinalPoints), Inline: true},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if entry.Multiplier > 0 {
		e.Fields = append(e.Fields, embedField{
			Name:   "Multiplier",
			Value:  fmt.Sprintf("%.2fx", entry.Multiplier),
			Inline: true,
		})
	}

	body, err := json.Marshal(map[string]interface{}{"embeds": []embed{e}})
	if err != nil {
		log.Printf("Failed to encode game log: %v", err)
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("Failed to send game log: %v", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("Game log webhook returned status %d", resp.StatusCode)
	}
}
