package broker

import (
	"encoding/json"
	"time"

	"github.com/avvvet/games-crud/internal/comm"
	"github.com/avvvet/games-crud/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subj string, data []byte) error
}

// Broker publishes game lifecycle events. A Broker with a nil connection drops
// every event, which is what the service runs with when NATS is not configured.
type Broker struct {
	Conn Publisher
	now  func() time.Time
}

func NewBroker(conn Publisher) *Broker {
	return &Broker{Conn: conn, now: time.Now}
}

func (b *Broker) GameCreated(game *models.Game) {
	b.publishEvent(comm.EventGameCreated, game.ID, game)
}

func (b *Broker) GameUpdated(game *models.Game) {
	b.publishEvent(comm.EventGameUpdated, game.ID, game)
}

func (b *Broker) GameDeleted(gameID int64) {
	b.publishEvent(comm.EventGameDeleted, gameID, nil)
}

func (b *Broker) publishEvent(topic string, gameID int64, game *models.Game) {
	if b == nil || b.Conn == nil {
		return
	}

	payload, err := json.Marshal(comm.GameEvent{
		Type:      topic,
		GameID:    gameID,
		Game:      game,
		Timestamp: b.now().UTC(),
	})
	if err != nil {
		log.Errorf("[broker] unable to marshal %s event for game %d: %s", topic, gameID, err)
		return
	}

	// the database is the source of truth, a lost event never fails the request
	_ = b.Publish(topic, payload)
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}
