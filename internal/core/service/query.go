package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/bornholm/roster/internal/metrics"
	"github.com/pkg/errors"
)

type fetchFunc func(ctx context.Context) ([]model.Person, error)

type ListPeopleOptions struct {
	Search string
}

type ListPeopleOptionFunc func(opts *ListPeopleOptions)

func WithListPeopleSearch(search string) ListPeopleOptionFunc {
	return func(opts *ListPeopleOptions) {
		opts.Search = search
	}
}

func NewListPeopleOptions(funcs ...ListPeopleOptionFunc) *ListPeopleOptions {
	opts := &ListPeopleOptions{}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func (d *Directory) ListPeople(ctx context.Context, funcs ...ListPeopleOptionFunc) (Entry, error) {
	opts := NewListPeopleOptions(funcs...)
	return d.Query(ctx, ListPeopleKey(opts.Search))
}

func (d *Directory) GetPerson(ctx context.Context, id model.PersonID) (Entry, error) {
	return d.Query(ctx, GetPersonKey(id))
}

// Query returns the entry for key, fetching it if needed. A fresh entry is
// served without touching the backend; a stale one is served immediately
// while a background refetch runs (stale-while-revalidate). Concurrent
// queries for the same key share one in-flight fetch. Terminal errors are
// surfaced inside the returned Entry; the returned error is only non-nil
// when ctx expires before a first result exists.
func (d *Directory) Query(ctx context.Context, key QueryKey) (Entry, error) {
	d.mutex.Lock()

	e := d.getOrCreateEntry(key)
	e.lastAccess = time.Now()

	for {
		switch e.status {
		case StatusSuccess:
			if d.stale(e) && e.inflight == 0 {
				d.startFetch(e)
			} else if !d.stale(e) {
				metrics.TotalCacheHits.Inc()
			}

			snapshot := d.snapshot(e)
			d.mutex.Unlock()

			return snapshot, nil
		case StatusError:
			snapshot := d.snapshot(e)
			d.mutex.Unlock()

			return snapshot, nil
		default:
			if e.inflight == 0 {
				d.startFetch(e)
			} else {
				metrics.TotalDedupedFetches.Inc()
			}

			done := e.done
			d.mutex.Unlock()

			select {
			case <-ctx.Done():
				return Entry{}, errors.WithStack(ctx.Err())
			case <-done:
			}

			d.mutex.Lock()
		}
	}
}

// Refetch forces a new fetch round for key and waits for its completion,
// regardless of freshness. This is the "retry" action surfaced to
// consumers next to an error state.
func (d *Directory) Refetch(ctx context.Context, key QueryKey) (Entry, error) {
	d.mutex.Lock()

	e := d.getOrCreateEntry(key)
	e.lastAccess = time.Now()

	d.startFetch(e)

	done := e.done
	d.mutex.Unlock()

	select {
	case <-ctx.Done():
		return Entry{}, errors.WithStack(ctx.Err())
	case <-done:
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	return d.snapshot(e), nil
}

// getOrCreateEntry must be called with the directory mutex held.
func (d *Directory) getOrCreateEntry(key QueryKey) *entry {
	if e, exists := d.entries[key.String()]; exists {
		return e
	}

	e := &entry{
		key:        key,
		fetch:      d.fetchForKey(key),
		status:     StatusPending,
		observers:  map[uint64]*Subscription{},
		lastAccess: time.Now(),
	}

	d.entries[key.String()] = e

	return e
}

func (d *Directory) fetchForKey(key QueryKey) fetchFunc {
	if id, isDetail := strings.CutPrefix(key.Resource, ResourcePeople+"/"); isDetail {
		return func(ctx context.Context) ([]model.Person, error) {
			person, err := d.dataSource.GetPersonByID(ctx, model.PersonID(id))
			if err != nil {
				return nil, errors.WithStack(err)
			}

			return []model.Person{person}, nil
		}
	}

	return func(ctx context.Context) ([]model.Person, error) {
		opts := port.QueryPeopleOptions{}
		if key.Search != "" {
			search := key.Search
			opts.Search = &search
		}

		people, _, err := d.dataSource.QueryPeople(ctx, opts)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return people, nil
	}
}

// startFetch launches a new fetch round for the entry. It must be called
// with the directory mutex held. Rounds may overlap (e.g. an invalidation
// while a fetch is running); completions are applied in generation order
// and an out-of-order result is discarded rather than overwriting fresher
// data.
func (d *Directory) startFetch(e *entry) {
	e.nextGen++
	gen := e.nextGen
	e.inflight++

	done := make(chan struct{})
	e.done = done

	fetch := e.fetch

	metrics.TotalFetches.Inc()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.requestTimeout)
		defer cancel()

		people, err := withRetry(ctx, d.maxRetries, d.baseBackoff, fetch)

		d.mutex.Lock()
		defer d.mutex.Unlock()
		defer close(done)

		e.inflight--

		if gen <= e.appliedGen {
			slog.DebugContext(ctx, "discarding out-of-order fetch result", slog.String("key", e.key.String()), slog.Uint64("generation", gen))
			return
		}

		e.appliedGen = gen

		if err != nil {
			if e.status == StatusSuccess {
				// Keep previously fetched data, only flag the failure
				e.backgroundErr = err
			} else {
				e.status = StatusError
				e.err = err
			}

			d.notifyObservers(e)

			return
		}

		e.status = StatusSuccess
		e.people = people
		e.err = nil
		e.backgroundErr = nil
		e.lastFetchedAt = time.Now()
		e.invalidated = false

		d.notifyObservers(e)
	}()
}

// withRetry runs fn, retrying transient failures with doubling backoff.
// Domain errors (not found, validation, read-only backend) are returned
// immediately.
func withRetry[T any](ctx context.Context, maxRetries int, baseBackoff time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	backoff := baseBackoff
	retries := 0

	for {
		result, err := fn(ctx)
		if err != nil {
			if !isTransient(err) || retries >= maxRetries {
				return zero, errors.WithStack(err)
			}

			slog.DebugContext(ctx, "request failed, will retry", slog.Int("retries", retries), slog.Duration("backoff", backoff), slogx.Error(errors.WithStack(err)))

			metrics.TotalFetchRetries.Inc()

			retries++

			select {
			case <-ctx.Done():
				return zero, errors.WithStack(ctx.Err())
			case <-time.After(backoff):
			}

			backoff *= 2

			continue
		}

		return result, nil
	}
}

func isTransient(err error) bool {
	switch {
	case errors.Is(err, port.ErrNotFound),
		errors.Is(err, port.ErrInvalidPerson),
		errors.Is(err, port.ErrReadOnly),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}
