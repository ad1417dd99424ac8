package httpapi

import (
	"context"
	"net/http"

	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/bornholm/roster/pkg/client"
	"github.com/pkg/errors"
)

// DataSource exposes the users HTTP API as a [port.DataSource]. In
// development the underlying client usually runs over the mock
// interceptor transport rather than a real network connection.
type DataSource struct {
	client *client.Client
}

// QueryPeople implements [port.DataSource].
func (s *DataSource) QueryPeople(ctx context.Context, opts port.QueryPeopleOptions) ([]model.Person, int64, error) {
	funcs := make([]client.QueryUsersOptionFunc, 0)
	if opts.Search != nil {
		funcs = append(funcs, client.WithQueryUsersSearch(*opts.Search))
	}

	people, total, err := s.client.QueryUsers(ctx, funcs...)
	if err != nil {
		return nil, 0, errors.WithStack(mapError(err))
	}

	return people, total, nil
}

// GetPersonByID implements [port.DataSource].
func (s *DataSource) GetPersonByID(ctx context.Context, id model.PersonID) (model.Person, error) {
	person, err := s.client.GetUser(ctx, id)
	if err != nil {
		return model.Person{}, errors.WithStack(mapError(err))
	}

	return person, nil
}

// CreatePerson implements [port.DataSource].
func (s *DataSource) CreatePerson(ctx context.Context, attrs port.PersonAttrs) (model.Person, error) {
	if err := attrs.Validate(); err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	person, err := s.client.CreateUser(ctx, attrs.Name, attrs.Role, attrs.AvatarURL)
	if err != nil {
		return model.Person{}, errors.WithStack(mapError(err))
	}

	return person, nil
}

func mapError(err error) error {
	var responseErr *client.ResponseError
	if !errors.As(err, &responseErr) {
		return err
	}

	switch responseErr.StatusCode {
	case http.StatusNotFound:
		return port.ErrNotFound
	case http.StatusBadRequest:
		return port.ErrInvalidPerson
	case http.StatusMethodNotAllowed:
		return port.ErrReadOnly
	default:
		return err
	}
}

func NewDataSource(client *client.Client) *DataSource {
	return &DataSource{
		client: client,
	}
}

var _ port.DataSource = &DataSource{}
