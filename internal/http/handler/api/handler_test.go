package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/roster/internal/adapter/memory"
	"github.com/bornholm/roster/internal/core/port/testsuite"
	"github.com/bornholm/roster/internal/prefs"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

func newTestHandler(t *testing.T) *Handler {
	dataSource := memory.NewDataSource(memory.WithPeople(testsuite.SeedPeople()...))

	return NewHandler(dataSource, sessions.NewCookieStore([]byte("test")))
}

func decode[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	var result T
	if err := json.Unmarshal(res.Body.Bytes(), &result); err != nil {
		t.Fatalf("could not decode response: %+v", errors.WithStack(err))
	}

	return result
}

func TestListUsers(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	body := decode[ListUsersResponse](t, res)

	if e, g := int64(3), body.Total; e != g {
		t.Errorf("body.Total: expected %d, got %d", e, g)
	}

	if e, g := 3, len(body.Users); e != g {
		t.Errorf("len(body.Users): expected %d, got %d", e, g)
	}
}

func TestListUsersWithSearch(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/users?search=design", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	body := decode[ListUsersResponse](t, res)

	if e, g := 1, len(body.Users); e != g {
		t.Fatalf("len(body.Users): expected %d, got %d", e, g)
	}

	if e, g := "Bo Bergmann", body.Users[0].Name; e != g {
		t.Errorf("body.Users[0].Name: expected '%s', got '%s'", e, g)
	}
}

func TestGetUser(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/users/p-ana", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	body := decode[GetUserResponse](t, res)

	if e, g := "Ana Andersen", body.User.Name; e != g {
		t.Errorf("body.User.Name: expected '%s', got '%s'", e, g)
	}
}

func TestGetUserNotFound(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/users/p-nobody", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestCreateUser(t *testing.T) {
	handler := newTestHandler(t)

	payload, err := json.Marshal(CreateUserRequest{
		Name: "David Dupont",
		Role: "Product",
	})
	if err != nil {
		t.Fatalf("could not marshal request: %+v", errors.WithStack(err))
	}

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(payload))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusCreated, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	body := decode[CreateUserResponse](t, res)

	if body.User.ID == "" {
		t.Error("body.User.ID: expected a generated id")
	}

	if e, g := "David Dupont", body.User.Name; e != g {
		t.Errorf("body.User.Name: expected '%s', got '%s'", e, g)
	}
}

func TestCreateUserInvalid(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"No Role"}`))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusBadRequest, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestPreferencesDefaults(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	body := decode[PreferencesResponse](t, res)

	if e, g := prefs.DefaultTheme, body.Preferences.Theme; e != g {
		t.Errorf("body.Preferences.Theme: expected '%s', got '%s'", e, g)
	}

	if e, g := prefs.DefaultLocale, body.Preferences.Locale; e != g {
		t.Errorf("body.Preferences.Locale: expected '%s', got '%s'", e, g)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/preferences", strings.NewReader(`{"theme":"dark","locale":"fr"}`))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	body := decode[PreferencesResponse](t, res)

	if e, g := prefs.ThemeDark, body.Preferences.Theme; e != g {
		t.Errorf("body.Preferences.Theme: expected '%s', got '%s'", e, g)
	}

	cookies := res.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("cookies: expected a session cookie")
	}

	// The saved preferences follow the session cookie
	req = httptest.NewRequest(http.MethodGet, "/preferences", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	res = httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	body = decode[PreferencesResponse](t, res)

	if e, g := prefs.ThemeDark, body.Preferences.Theme; e != g {
		t.Errorf("body.Preferences.Theme: expected '%s', got '%s'", e, g)
	}

	if e, g := "fr", body.Preferences.Locale; e != g {
		t.Errorf("body.Preferences.Locale: expected '%s', got '%s'", e, g)
	}
}

func TestPreferencesInvalidTheme(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/preferences", strings.NewReader(`{"theme":"sepia"}`))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusBadRequest, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}
