package comm

import (
	"time"

	"github.com/avvvet/games-crud/internal/gamesvc/models"
)

const (
	EventGameCreated = "games.created"
	EventGameUpdated = "games.updated"
	EventGameDeleted = "games.deleted"
)

// GameEvent is published on the subject named by Type after a successful mutation.
type GameEvent struct {
	Type      string       `json:"type"` // e.g. "games.created"
	GameID    int64        `json:"game_id"`
	Game      *models.Game `json:"game,omitempty"` // nil for deletes
	Timestamp time.Time    `json:"timestamp"`
}
