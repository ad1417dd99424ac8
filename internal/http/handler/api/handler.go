package api

import (
	"net/http"

	"github.com/bornholm/roster/internal/core/port"
	"github.com/gorilla/sessions"
)

type Handler struct {
	dataSource   port.DataSource
	sessionStore sessions.Store
	mux          *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(dataSource port.DataSource, sessionStore sessions.Store) *Handler {
	h := &Handler{
		dataSource:   dataSource,
		sessionStore: sessionStore,
		mux:          &http.ServeMux{},
	}

	h.mux.Handle("GET /users", http.HandlerFunc(h.handleListUsers))
	h.mux.Handle("GET /users/{userID}", http.HandlerFunc(h.handleGetUser))
	h.mux.Handle("POST /users", http.HandlerFunc(h.handleCreateUser))

	h.mux.Handle("GET /preferences", http.HandlerFunc(h.handleGetPreferences))
	h.mux.Handle("PUT /preferences", http.HandlerFunc(h.handleUpdatePreferences))

	return h
}

var _ http.Handler = &Handler{}
