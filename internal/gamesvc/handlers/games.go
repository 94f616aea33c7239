package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/avvvet/games-crud/internal/gamesvc/models"
	"github.com/go-chi/chi"
)

const maxBodyBytes = 1 << 20

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListGames(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.CreateResponse(w, http.StatusOK, games)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	game, err := h.games.GetGameByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.CreateResponse(w, http.StatusOK, game)
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var in models.GameInput
	if err := decodeBody(w, r, &in); err != nil {
		h.respondError(w, r, err)
		return
	}

	game, err := h.games.CreateGame(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/games/%d", APIPrefix, game.ID))
	h.CreateResponse(w, http.StatusCreated, game)
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var in models.GameInput
	if err := decodeBody(w, r, &in); err != nil {
		h.respondError(w, r, err)
		return
	}

	game, err := h.games.UpdateGame(r.Context(), id, in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.CreateResponse(w, http.StatusOK, game)
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.games.DeleteGame(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func gameID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("game id must be a positive integer")
	}
	return id, nil
}

// decodeBody reads exactly one JSON object with no unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return models.NewValidationError("request body must not be empty")
		case errors.As(err, &maxErr):
			return models.NewValidationError("request body must not be larger than 1MB")
		default:
			return models.NewValidationError("request body is not valid JSON: " + err.Error())
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return models.NewValidationError("request body must contain a single JSON object")
	}

	return nil
}
