package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/pkg/errors"
)

type ListUsersResponse struct {
	Users []model.Person `json:"users"`
	Total int64          `json:"total"`
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts := port.QueryPeopleOptions{}

	if search := r.URL.Query().Get("search"); search != "" {
		opts.Search = &search
	}

	people, total, err := h.dataSource.QueryPeople(ctx, opts)
	if err != nil {
		slog.ErrorContext(ctx, "could not query people", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := ListUsersResponse{
		Users: people,
		Total: total,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(err))
	}
}

type GetUserResponse struct {
	User model.Person `json:"user"`
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := model.PersonID(r.PathValue("userID"))

	ctx := r.Context()

	person, err := h.dataSource.GetPersonByID(ctx, userID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not get person", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := GetUserResponse{
		User: person,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(err))
	}
}

type CreateUserRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type CreateUserResponse struct {
	User model.Person `json:"user"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(ctx, "could not decode request body", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	attrs := port.PersonAttrs{
		Name:      req.Name,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
	}

	person, err := h.dataSource.CreatePerson(ctx, attrs)
	if err != nil {
		if errors.Is(err, port.ErrInvalidPerson) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if errors.Is(err, port.ErrReadOnly) {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		slog.ErrorContext(ctx, "could not create person", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := CreateUserResponse{
		User: person,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(err))
	}
}
