package static

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type WriteMode string

const (
	// WriteModeReject refuses creates with port.ErrReadOnly
	WriteModeReject WriteMode = "reject"
	// WriteModeDiscard echoes the would-be record without persisting it
	WriteModeDiscard WriteMode = "discard"
)

// DataSource serves a pre-generated, immutable JSON array of people. There
// is no server behind it, so writes either fail fast or are acknowledged
// and dropped, depending on the configured write mode.
type DataSource struct {
	fs        afero.Fs
	path      string
	writeMode WriteMode
}

// QueryPeople implements [port.DataSource].
func (s *DataSource) QueryPeople(ctx context.Context, opts port.QueryPeopleOptions) ([]model.Person, int64, error) {
	people, err := s.load()
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	if opts.Search == nil {
		return people, int64(len(people)), nil
	}

	search := strings.ToLower(*opts.Search)

	filtered := make([]model.Person, 0, len(people))
	for _, p := range people {
		if !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Role), search) {
			continue
		}

		filtered = append(filtered, p)
	}

	return filtered, int64(len(filtered)), nil
}

// GetPersonByID implements [port.DataSource].
func (s *DataSource) GetPersonByID(ctx context.Context, id model.PersonID) (model.Person, error) {
	people, err := s.load()
	if err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	for _, p := range people {
		if p.ID == id {
			return p, nil
		}
	}

	return model.Person{}, errors.WithStack(port.ErrNotFound)
}

// CreatePerson implements [port.DataSource].
func (s *DataSource) CreatePerson(ctx context.Context, attrs port.PersonAttrs) (model.Person, error) {
	if err := attrs.Validate(); err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	if s.writeMode == WriteModeReject {
		return model.Person{}, errors.WithStack(port.ErrReadOnly)
	}

	// Discard mode: the record is acknowledged so that an optimistic
	// update can settle as final, but the file is never touched.
	return model.Person{
		ID:        model.NewPersonID(),
		Name:      attrs.Name,
		Role:      attrs.Role,
		AvatarURL: attrs.AvatarURL,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *DataSource) load() ([]model.Person, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read static collection '%s'", s.path)
	}

	people := make([]model.Person, 0)
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, errors.Wrapf(err, "could not parse static collection '%s'", s.path)
	}

	return people, nil
}

type Options struct {
	WriteMode WriteMode
}

type OptionFunc func(opts *Options)

func WithWriteMode(mode WriteMode) OptionFunc {
	return func(opts *Options) {
		opts.WriteMode = mode
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		WriteMode: WriteModeReject,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func NewDataSource(fs afero.Fs, path string, funcs ...OptionFunc) *DataSource {
	opts := NewOptions(funcs...)
	return &DataSource{
		fs:        fs,
		path:      path,
		writeMode: opts.WriteMode,
	}
}

var _ port.DataSource = &DataSource{}
