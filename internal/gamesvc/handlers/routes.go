package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
)

const APIPrefix = "/api"

// Route binds one method and path (relative to APIPrefix) to a handler.
type Route struct {
	Method  string
	Pattern string
	Name    string
	Handler http.HandlerFunc
}

// Routes is the full routing table. Every route is public.
func (h *Handler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/healthchecker", "health", h.HealthHandler},
		{http.MethodGet, "/games", "list-games", h.ListGames},
		{http.MethodGet, "/games/{id}", "get-game", h.GetGame},
		{http.MethodPost, "/games", "create-game", h.CreateGame},
		{http.MethodPut, "/games/{id}", "update-game", h.UpdateGame},
		{http.MethodDelete, "/games/{id}", "delete-game", h.DeleteGame},
	}
}

func (h *Handler) SetRoutes(r chi.Router) []Route {
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	table := h.Routes()
	r.Route(APIPrefix, func(r chi.Router) {
		r.NotFound(h.NotFound)
		r.MethodNotAllowed(h.MethodNotAllowed)

		for _, rt := range table {
			r.Method(rt.Method, rt.Pattern, rt.Handler)
		}
	})

	return table
}
