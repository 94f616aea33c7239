package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avvvet/games-crud/internal/gamesvc/models"
	"github.com/avvvet/games-crud/internal/gamesvc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore mimics the postgres store: sequential ids, ErrNotFound on misses.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	games  map[int64]models.Game
	calls  int
	err    error
	ctxDL  bool
}

func newMemStore() *memStore {
	return &memStore{games: map[int64]models.Game{}}
}

func (m *memStore) enter(ctx context.Context) error {
	m.calls++
	_, m.ctxDL = ctx.Deadline()
	return m.err
}

func (m *memStore) ListGames(ctx context.Context) ([]models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx); err != nil {
		return nil, err
	}
	games := []models.Game{}
	for id := int64(1); id <= m.nextID; id++ {
		if g, ok := m.games[id]; ok {
			games = append(games, g)
		}
	}
	return games, nil
}

func (m *memStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx); err != nil {
		return nil, err
	}
	g, ok := m.games[gameID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &g, nil
}

func (m *memStore) CreateGame(ctx context.Context, in models.GameInput) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx); err != nil {
		return nil, err
	}
	m.nextID++
	g := models.Game{ID: m.nextID, Title: in.Title, Genre: in.Genre, Platform: in.Platform, ReleaseYear: in.ReleaseYear, Price: *in.Price}
	m.games[g.ID] = g
	return &g, nil
}

func (m *memStore) UpdateGame(ctx context.Context, gameID int64, in models.GameInput) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx); err != nil {
		return nil, err
	}
	if _, ok := m.games[gameID]; !ok {
		return nil, store.ErrNotFound
	}
	g := models.Game{ID: gameID, Title: in.Title, Genre: in.Genre, Platform: in.Platform, ReleaseYear: in.ReleaseYear, Price: *in.Price}
	m.games[gameID] = g
	return &g, nil
}

func (m *memStore) DeleteGame(ctx context.Context, gameID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx); err != nil {
		return err
	}
	if _, ok := m.games[gameID]; !ok {
		return store.ErrNotFound
	}
	delete(m.games, gameID)
	return nil
}

type recordedEvents struct {
	created, updated, deleted []int64
}

func (r *recordedEvents) GameCreated(g *models.Game) { r.created = append(r.created, g.ID) }
func (r *recordedEvents) GameUpdated(g *models.Game) { r.updated = append(r.updated, g.ID) }
func (r *recordedEvents) GameDeleted(id int64)       { r.deleted = append(r.deleted, id) }

func TestCreateThenGetReturnsSameGame(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(newMemStore(), nil, time.Second)

	created, err := svc.CreateGame(ctx, models.GameInput{Title: "  Chess  ", Genre: "board"})
	require.NoError(t, err)
	assert.Equal(t, "Chess", created.Title)

	got, err := svc.GetGameByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateValidatesBeforeStore(t *testing.T) {
	st := newMemStore()
	svc := NewGameService(st, nil, time.Second)

	_, err := svc.CreateGame(context.Background(), models.GameInput{Genre: "board"})

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
	assert.Zero(t, st.calls)
}

func TestUpdateValidatesBeforeStore(t *testing.T) {
	st := newMemStore()
	svc := NewGameService(st, nil, time.Second)

	_, err := svc.UpdateGame(context.Background(), 1, models.GameInput{Title: ""})

	var verr *models.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Zero(t, st.calls)
}

func TestMissingIDsAreNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(newMemStore(), nil, time.Second)

	_, err := svc.GetGameByID(ctx, 404)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.UpdateGame(ctx, 404, models.GameInput{Title: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteGame(ctx, 404), store.ErrNotFound)
}

func TestNonPositiveIDIsValidationError(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	svc := NewGameService(st, nil, time.Second)

	for _, id := range []int64{0, -3} {
		_, err := svc.GetGameByID(ctx, id)
		var verr *models.ValidationError
		assert.True(t, errors.As(err, &verr), "id %d", id)
		assert.True(t, errors.As(svc.DeleteGame(ctx, id), &verr), "id %d", id)
	}
	assert.Zero(t, st.calls)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(newMemStore(), nil, time.Second)

	g, err := svc.CreateGame(ctx, models.GameInput{Title: "Pong"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGame(ctx, g.ID))

	_, err = svc.GetGameByID(ctx, g.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.GetGameByID(ctx, g.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListReflectsCreatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	svc := NewGameService(newMemStore(), nil, time.Second)

	const n, m = 6, 4
	var ids []int64
	for i := 0; i < n; i++ {
		g, err := svc.CreateGame(ctx, models.GameInput{Title: "game"})
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}
	for _, id := range ids[:m] {
		require.NoError(t, svc.DeleteGame(ctx, id))
	}

	games, err := svc.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, n-m)
}

func TestEventsFollowSuccessfulMutations(t *testing.T) {
	ctx := context.Background()
	ev := &recordedEvents{}
	svc := NewGameService(newMemStore(), ev, time.Second)

	g, err := svc.CreateGame(ctx, models.GameInput{Title: "Go"})
	require.NoError(t, err)
	_, err = svc.UpdateGame(ctx, g.ID, models.GameInput{Title: "Go 2"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGame(ctx, g.ID))
	assert.Error(t, svc.DeleteGame(ctx, g.ID))

	assert.Equal(t, []int64{g.ID}, ev.created)
	assert.Equal(t, []int64{g.ID}, ev.updated)
	assert.Equal(t, []int64{g.ID}, ev.deleted)
}

func TestStorageErrorsPassThrough(t *testing.T) {
	st := newMemStore()
	st.err = &store.StorageError{Op: "list games", Err: context.DeadlineExceeded}
	svc := NewGameService(st, nil, 0)

	_, err := svc.ListGames(context.Background())

	var serr *store.StorageError
	assert.True(t, errors.As(err, &serr))
	assert.True(t, st.ctxDL, "store call should carry a deadline")
}
