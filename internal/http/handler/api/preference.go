package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/roster/internal/prefs"
)

const sessionName = "roster"

const (
	sessionKeyTheme  = "theme"
	sessionKeyLocale = "locale"
)

type PreferencesResponse struct {
	Preferences Preferences `json:"preferences"`
}

type Preferences struct {
	Theme  string `json:"theme"`
	Locale string `json:"locale"`
}

// Theme and locale are the only preferences persisted across sessions.
// Search text and filters are ephemeral and never reach the server.
func (h *Handler) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		slog.ErrorContext(ctx, "could not retrieve session", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := PreferencesResponse{
		Preferences: Preferences{
			Theme:  prefs.DefaultTheme,
			Locale: prefs.DefaultLocale,
		},
	}

	if theme, ok := session.Values[sessionKeyTheme].(string); ok {
		res.Preferences.Theme = theme
	}

	if locale, ok := session.Values[sessionKeyLocale].(string); ok {
		res.Preferences.Locale = locale
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(err))
	}
}

type UpdatePreferencesRequest struct {
	Theme  *string `json:"theme,omitempty"`
	Locale *string `json:"locale,omitempty"`
}

func (h *Handler) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(ctx, "could not decode request body", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		slog.ErrorContext(ctx, "could not retrieve session", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if req.Theme != nil {
		if !prefs.ValidTheme(*req.Theme) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		session.Values[sessionKeyTheme] = *req.Theme
	}

	if req.Locale != nil {
		session.Values[sessionKeyLocale] = *req.Locale
	}

	if err := session.Save(r, w); err != nil {
		slog.ErrorContext(ctx, "could not save session", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := PreferencesResponse{
		Preferences: Preferences{
			Theme:  prefs.DefaultTheme,
			Locale: prefs.DefaultLocale,
		},
	}

	if theme, ok := session.Values[sessionKeyTheme].(string); ok {
		res.Preferences.Theme = theme
	}

	if locale, ok := session.Values[sessionKeyLocale].(string); ok {
		res.Preferences.Locale = locale
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(err))
	}
}
