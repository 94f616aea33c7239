package handlers

import (
	"errors"
	"net/http"

	"github.com/avvvet/games-crud/internal/gamesvc/models"
	"github.com/avvvet/games-crud/internal/gamesvc/store"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
)

// StatusFor is the single mapping from the error taxonomy to an HTTP status.
func StatusFor(err error) int {
	var verr *models.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body. Storage details stay in the server log.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := ErrorResponse{Status: "error"}

	var verr *models.ValidationError
	switch {
	case status == http.StatusNotFound:
		body.Message = "game not found"
	case errors.As(err, &verr):
		body.Message = verr.Error()
		body.Fields = verr.Fields
	default:
		body.Message = "internal server error"
		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
		}).Errorf("request failed: %s", err)
	}

	h.CreateResponse(w, status, body)
}
