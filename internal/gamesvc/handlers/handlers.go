package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avvvet/games-crud/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

const healthMessage = "build simple crud"

// GameRepository is implemented by *service.GameService.
type GameRepository interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	CreateGame(ctx context.Context, in models.GameInput) (*models.Game, error)
	UpdateGame(ctx context.Context, gameID int64, in models.GameInput) (*models.Game, error)
	DeleteGame(ctx context.Context, gameID int64) error
}

type Handler struct {
	games GameRepository
}

func NewHandler(games GameRepository) *Handler {
	return &Handler{games: games}
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warnf("unable to write response body: %s", err)
	}
}

// HealthHandler never touches the database.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusOK, StatusResponse{
		Status:  "success",
		Message: healthMessage,
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusNotFound, ErrorResponse{
		Status:  "error",
		Message: "route not found",
	})
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusMethodNotAllowed, ErrorResponse{
		Status:  "error",
		Message: "method not allowed",
	})
}
