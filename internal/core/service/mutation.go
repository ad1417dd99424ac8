package service

import (
	"context"
	"time"

	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/bornholm/roster/internal/metrics"
	"github.com/pkg/errors"
)

type MutationState string

const (
	MutationPending    MutationState = "pending"
	MutationConfirmed  MutationState = "confirmed"
	MutationRolledBack MutationState = "rolled_back"
)

// mutationIntent tracks one pending write against a single target record.
// At most one intent per target is active at a time; a later mutation for
// the same target queues behind it.
type mutationIntent struct {
	target model.PersonID
	state  MutationState
}

// CreatePerson appends the new record optimistically to every matching
// cached list, then performs the backend write. On success the
// server-returned record replaces the optimistic one and every list entry
// is invalidated, so the next read observes the backend's authoritative
// content (the server-assigned ID may differ from the optimistic one). On
// failure the optimistic record is removed again and the error surfaced.
func (d *Directory) CreatePerson(ctx context.Context, attrs port.PersonAttrs) (model.Person, error) {
	// Validation failures are never retried and never reach the cache
	if err := attrs.Validate(); err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	optimistic := model.Person{
		ID:        model.NewPersonID(),
		Name:      attrs.Name,
		Role:      attrs.Role,
		AvatarURL: attrs.AvatarURL,
		CreatedAt: time.Now().UTC(),
	}

	release, err := d.acquireTarget(ctx, optimistic.ID)
	if err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	defer release()

	intent := &mutationIntent{
		target: optimistic.ID,
		state:  MutationPending,
	}

	d.mutex.Lock()
	d.applyOptimistic(optimistic)
	d.mutex.Unlock()

	person, err := withRetry(ctx, d.maxRetries, d.baseBackoff, func(ctx context.Context) (model.Person, error) {
		return d.dataSource.CreatePerson(ctx, attrs)
	})

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if err != nil {
		intent.state = MutationRolledBack
		d.removeOptimistic(optimistic.ID)

		metrics.TotalRollbacks.Inc()

		return model.Person{}, errors.WithStack(err)
	}

	intent.state = MutationConfirmed
	d.confirmOptimistic(optimistic.ID, person)
	d.invalidateLists()

	return person, nil
}

// acquireTarget blocks until no other mutation intent is pending for the
// target, enforcing the one-intent-per-entity invariant.
func (d *Directory) acquireTarget(ctx context.Context, target model.PersonID) (func(), error) {
	for {
		d.mutex.Lock()

		pending, exists := d.pendingTargets[target]
		if !exists {
			done := make(chan struct{})
			d.pendingTargets[target] = done
			d.mutex.Unlock()

			release := func() {
				d.mutex.Lock()
				defer d.mutex.Unlock()

				delete(d.pendingTargets, target)
				close(done)
			}

			return release, nil
		}

		d.mutex.Unlock()

		select {
		case <-ctx.Done():
			return nil, errors.WithStack(ctx.Err())
		case <-pending:
		}
	}
}

// applyOptimistic must be called with the directory mutex held. The record
// lands in a separate optimistic layer on top of the fetched data, so a
// concurrent refetch completion never silently drops it and a rollback
// restores the pre-mutation snapshot exactly.
func (d *Directory) applyOptimistic(person model.Person) {
	for _, e := range d.entries {
		if e.key.Resource != ResourcePeople {
			continue
		}

		if !matchesSearch(person, e.key.Search) {
			continue
		}

		e.optimistic = append(e.optimistic, person)

		d.notifyObservers(e)
	}
}

// removeOptimistic must be called with the directory mutex held.
func (d *Directory) removeOptimistic(id model.PersonID) {
	for _, e := range d.entries {
		if len(e.optimistic) == 0 {
			continue
		}

		kept := e.optimistic[:0]
		removed := false
		for _, p := range e.optimistic {
			if p.ID == id {
				removed = true
				continue
			}

			kept = append(kept, p)
		}

		e.optimistic = kept

		if removed {
			d.notifyObservers(e)
		}
	}
}

// confirmOptimistic must be called with the directory mutex held. It
// replaces the optimistic record with the authoritative one returned by
// the backend.
func (d *Directory) confirmOptimistic(id model.PersonID, confirmed model.Person) {
	for _, e := range d.entries {
		replaced := false

		kept := e.optimistic[:0]
		for _, p := range e.optimistic {
			if p.ID == id {
				replaced = true
				continue
			}

			kept = append(kept, p)
		}

		e.optimistic = kept

		if replaced {
			e.people = append(e.people, confirmed)
			d.notifyObservers(e)
		}
	}
}

// invalidateLists must be called with the directory mutex held. Every list
// entry is marked stale and refetched so that subsequent reads observe the
// server's authoritative ordering and content.
func (d *Directory) invalidateLists() {
	for _, e := range d.entries {
		if e.key.Resource != ResourcePeople {
			continue
		}

		e.invalidated = true

		if e.status != StatusPending {
			d.startFetch(e)
		}
	}
}
