package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bornholm/roster/internal/adapter/memory"
	"github.com/bornholm/roster/internal/core/port/testsuite"
	"github.com/bornholm/roster/internal/http/handler/api"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	dataSource := memory.NewDataSource(memory.WithPeople(testsuite.SeedPeople()...))

	handler := api.NewHandler(dataSource, sessions.NewCookieStore([]byte("test")))

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", handler))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("could not parse server url: %+v", errors.WithStack(err))
	}

	return server, New(WithBaseURL(baseURL))
}

func TestQueryUsers(t *testing.T) {
	ctx := context.Background()

	_, apiClient := newTestServer(t)

	people, total, err := apiClient.QueryUsers(ctx)
	if err != nil {
		t.Fatalf("could not query users: %+v", errors.WithStack(err))
	}

	if e, g := int64(3), total; e != g {
		t.Errorf("total: expected %d, got %d", e, g)
	}

	if e, g := 3, len(people); e != g {
		t.Errorf("len(people): expected %d, got %d", e, g)
	}
}

func TestQueryUsersWithSearch(t *testing.T) {
	ctx := context.Background()

	_, apiClient := newTestServer(t)

	people, _, err := apiClient.QueryUsers(ctx, WithQueryUsersSearch("engineering"))
	if err != nil {
		t.Fatalf("could not query users: %+v", errors.WithStack(err))
	}

	if e, g := 2, len(people); e != g {
		t.Errorf("len(people): expected %d, got %d", e, g)
	}
}

func TestGetUserNotFound(t *testing.T) {
	ctx := context.Background()

	_, apiClient := newTestServer(t)

	_, err := apiClient.GetUser(ctx, "p-nobody")

	var responseErr *ResponseError
	if !errors.As(err, &responseErr) {
		t.Fatalf("err: expected a *ResponseError, got %v", err)
	}

	if e, g := http.StatusNotFound, responseErr.StatusCode; e != g {
		t.Errorf("responseErr.StatusCode: expected %d, got %d", e, g)
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	_, apiClient := newTestServer(t)

	created, err := apiClient.CreateUser(ctx, "David Dupont", "Product", "")
	if err != nil {
		t.Fatalf("could not create user: %+v", errors.WithStack(err))
	}

	found, err := apiClient.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("could not get created user: %+v", errors.WithStack(err))
	}

	if e, g := "David Dupont", found.Name; e != g {
		t.Errorf("found.Name: expected '%s', got '%s'", e, g)
	}
}

func TestRetryAfterTransport(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	httpClient := &http.Client{
		Transport: &RetryAfterTransport{
			Base:        http.DefaultTransport,
			MaxRetries:  2,
			DefaultWait: 10 * time.Millisecond,
		},
	}

	res, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("could not request server: %+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	if e, g := http.StatusNoContent, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected %d, got %d", e, g)
	}

	if e, g := int64(2), calls.Load(); e != g {
		t.Errorf("calls: expected %d, got %d", e, g)
	}
}

func TestRetryAfterTransportGivesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	httpClient := &http.Client{
		Transport: &RetryAfterTransport{
			Base:        http.DefaultTransport,
			MaxRetries:  1,
			DefaultWait: 10 * time.Millisecond,
		},
	}

	res, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("could not request server: %+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	if e, g := http.StatusTooManyRequests, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected %d, got %d", e, g)
	}
}
