package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/pkg/errors"
)

// DataSource emulates a live collection API without a server. Records only
// live for the duration of the process; created people are never persisted.
type DataSource struct {
	mutex   sync.RWMutex
	people  []model.Person
	latency time.Duration
	faults  []error
}

// QueryPeople implements [port.DataSource].
func (s *DataSource) QueryPeople(ctx context.Context, opts port.QueryPeopleOptions) ([]model.Person, int64, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, 0, errors.WithStack(err)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	people := make([]model.Person, 0, len(s.people))
	for _, p := range s.people {
		if opts.Search != nil && !matches(p, *opts.Search) {
			continue
		}

		people = append(people, p)
	}

	return people, int64(len(people)), nil
}

// GetPersonByID implements [port.DataSource].
func (s *DataSource) GetPersonByID(ctx context.Context, id model.PersonID) (model.Person, error) {
	if err := s.simulate(ctx); err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, p := range s.people {
		if p.ID == id {
			return p, nil
		}
	}

	return model.Person{}, errors.WithStack(port.ErrNotFound)
}

// CreatePerson implements [port.DataSource].
func (s *DataSource) CreatePerson(ctx context.Context, attrs port.PersonAttrs) (model.Person, error) {
	if err := s.simulate(ctx); err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	if err := attrs.Validate(); err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	person := model.Person{
		ID:        model.NewPersonID(),
		Name:      attrs.Name,
		Role:      attrs.Role,
		AvatarURL: attrs.AvatarURL,
		CreatedAt: time.Now().UTC(),
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.people = append(s.people, person)

	return person, nil
}

// FailNext queues errors returned, in order, by the next calls before any
// real work happens. Used to exercise retry and rollback paths
// deterministically.
func (s *DataSource) FailNext(errs ...error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.faults = append(s.faults, errs...)
}

func (s *DataSource) simulate(ctx context.Context) error {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.latency):
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.faults) > 0 {
		err := s.faults[0]
		s.faults = s.faults[1:]
		return err
	}

	return nil
}

func matches(p model.Person, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Role), search)
}

type Options struct {
	People  []model.Person
	Latency time.Duration
}

type OptionFunc func(opts *Options)

func WithPeople(people ...model.Person) OptionFunc {
	return func(opts *Options) {
		opts.People = people
	}
}

func WithLatency(latency time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.Latency = latency
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		People: make([]model.Person, 0),
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func NewDataSource(funcs ...OptionFunc) *DataSource {
	opts := NewOptions(funcs...)
	return &DataSource{
		people:  append([]model.Person(nil), opts.People...),
		latency: opts.Latency,
	}
}

var _ port.DataSource = &DataSource{}
