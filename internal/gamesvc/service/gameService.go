package service

import (
	"context"
	"time"

	"github.com/avvvet/games-crud/internal/gamesvc/models"
)

const DefaultQueryTimeout = 5 * time.Second

// GameStore is implemented by *store.GameStore.
type GameStore interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	CreateGame(ctx context.Context, in models.GameInput) (*models.Game, error)
	UpdateGame(ctx context.Context, gameID int64, in models.GameInput) (*models.Game, error)
	DeleteGame(ctx context.Context, gameID int64) error
}

// Events receives successful mutations. *broker.Broker implements it.
type Events interface {
	GameCreated(game *models.Game)
	GameUpdated(game *models.Game)
	GameDeleted(gameID int64)
}

type GameService struct {
	gameStore    GameStore
	events       Events
	queryTimeout time.Duration
}

// NewGameService wires the store and event sink. events may be nil.
// Every store call is bounded by queryTimeout so that waiting on an exhausted
// pool surfaces as a storage error rather than hanging the request.
func NewGameService(gameStore GameStore, events Events, queryTimeout time.Duration) *GameService {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &GameService{gameStore: gameStore, events: events, queryTimeout: queryTimeout}
}

func (s *GameService) ListGames(ctx context.Context) ([]models.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	return s.gameStore.ListGames(ctx)
}

func (s *GameService) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	if err := checkID(gameID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	return s.gameStore.GetGameByID(ctx, gameID)
}

// CreateGame validates before touching the database so bad input is a 4xx, not a constraint error.
func (s *GameService) CreateGame(ctx context.Context, in models.GameInput) (*models.Game, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	game, err := s.gameStore.CreateGame(ctx, in.Normalize())
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.GameCreated(game)
	}
	return game, nil
}

// UpdateGame replaces all mutable fields and returns the full updated game.
func (s *GameService) UpdateGame(ctx context.Context, gameID int64, in models.GameInput) (*models.Game, error) {
	if err := checkID(gameID); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	game, err := s.gameStore.UpdateGame(ctx, gameID, in.Normalize())
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.GameUpdated(game)
	}
	return game, nil
}

func (s *GameService) DeleteGame(ctx context.Context, gameID int64) error {
	if err := checkID(gameID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.gameStore.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	if s.events != nil {
		s.events.GameDeleted(gameID)
	}
	return nil
}

func checkID(gameID int64) error {
	if gameID <= 0 {
		return models.NewValidationError("game id must be a positive integer")
	}
	return nil
}
