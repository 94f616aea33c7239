package store

import (
	"context"
	"errors"

	"github.com/avvvet/games-crud/internal/gamesvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the store needs. Every call acquires one
// pooled connection and releases it when the call (or its rows) completes.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const gameColumns = `id, title, genre, platform, release_year, price, created_at, updated_at`

type GameStore struct {
	db DBTX
}

func NewGameStore(db DBTX) *GameStore {
	return &GameStore{db: db}
}

func scanGame(row pgx.Row, game *models.Game) error {
	return row.Scan(
		&game.ID,
		&game.Title,
		&game.Genre,
		&game.Platform,
		&game.ReleaseYear,
		&game.Price,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
}

// ListGames returns every game ordered by id. An empty table yields an empty slice.
func (s *GameStore) ListGames(ctx context.Context) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY id ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, storageErr("list games", err)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var game models.Game
		if err := scanGame(rows, &game); err != nil {
			return nil, storageErr("list games", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("list games", err)
	}

	return games, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE id = $1
	`

	game := &models.Game{}
	err := scanGame(s.db.QueryRow(ctx, query, gameID), game)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get game", err)
	}

	return game, nil
}

// CreateGame inserts a row and returns it with the id and timestamps the database assigned.
func (s *GameStore) CreateGame(ctx context.Context, in models.GameInput) (*models.Game, error) {
	in = in.Normalize()

	query := `
		INSERT INTO games (title, genre, platform, release_year, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + gameColumns

	game := &models.Game{}
	err := scanGame(s.db.QueryRow(ctx, query, in.Title, in.Genre, in.Platform, in.ReleaseYear, *in.Price), game)
	if err != nil {
		return nil, storageErr("create game", err)
	}

	return game, nil
}

// UpdateGame replaces every mutable column of the row matching gameID.
func (s *GameStore) UpdateGame(ctx context.Context, gameID int64, in models.GameInput) (*models.Game, error) {
	in = in.Normalize()

	query := `
		UPDATE games
		SET title = $2, genre = $3, platform = $4, release_year = $5, price = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + gameColumns

	game := &models.Game{}
	err := scanGame(s.db.QueryRow(ctx, query, gameID, in.Title, in.Genre, in.Platform, in.ReleaseYear, *in.Price), game)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("update game", err)
	}

	return game, nil
}

func (s *GameStore) DeleteGame(ctx context.Context, gameID int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, gameID)
	if err != nil {
		return storageErr("delete game", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
