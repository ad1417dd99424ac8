package client

import (
	"context"
	"net/url"

	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/http/handler/api"
	"github.com/pkg/errors"
)

type QueryUsersOptions struct {
	Search *string
}

type QueryUsersOptionFunc func(opts *QueryUsersOptions)

func WithQueryUsersSearch(search string) QueryUsersOptionFunc {
	return func(opts *QueryUsersOptions) {
		opts.Search = &search
	}
}

func NewQueryUsersOptions(funcs ...QueryUsersOptionFunc) *QueryUsersOptions {
	opts := &QueryUsersOptions{}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func (c *Client) QueryUsers(ctx context.Context, funcs ...QueryUsersOptionFunc) ([]model.Person, int64, error) {
	opts := NewQueryUsersOptions(funcs...)

	endpoint := &url.URL{
		Path: "/users",
	}

	query := endpoint.Query()

	if opts.Search != nil {
		query.Set("search", *opts.Search)
	}

	endpoint.RawQuery = query.Encode()

	var res api.ListUsersResponse

	if err := c.jsonRequest(ctx, "GET", endpoint.String(), nil, &res); err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return res.Users, res.Total, nil
}

func (c *Client) GetUser(ctx context.Context, id model.PersonID) (model.Person, error) {
	endpoint := &url.URL{
		Path: "/users",
	}

	endpoint = endpoint.JoinPath(string(id))

	var res api.GetUserResponse

	if err := c.jsonRequest(ctx, "GET", endpoint.String(), nil, &res); err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	return res.User, nil
}

func (c *Client) CreateUser(ctx context.Context, name string, role string, avatarURL string) (model.Person, error) {
	endpoint := &url.URL{
		Path: "/users",
	}

	req := api.CreateUserRequest{
		Name:      name,
		Role:      role,
		AvatarURL: avatarURL,
	}

	var res api.CreateUserResponse

	if err := c.jsonRequest(ctx, "POST", endpoint.String(), req, &res); err != nil {
		return model.Person{}, errors.WithStack(err)
	}

	return res.User, nil
}
