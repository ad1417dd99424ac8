package setup

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/bornholm/roster/internal/adapter/httpapi"
	"github.com/bornholm/roster/internal/adapter/mock"
	"github.com/bornholm/roster/internal/config"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/bornholm/roster/pkg/client"
	"github.com/pkg/errors"
)

// NewDataSourceFromConfig resolves the data source consumed by the
// directory cache. Only the configured environment drives the choice:
// development talks to the mutable users API, production reads the
// pre-generated static collection.
var NewDataSourceFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.DataSource, error) {
	switch env := conf.DataSource.Environment; env {
	case config.EnvironmentDevelopment:
		apiClient, err := getAPIClientFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.Wrap(err, "could not create api client from config")
		}

		return httpapi.NewDataSource(apiClient), nil

	case config.EnvironmentProduction:
		dataSource, err := getStaticDataSourceFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return dataSource, nil

	default:
		return nil, errors.Errorf("unexpected environment '%s'", env)
	}
})

var getAPIClientFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*client.Client, error) {
	baseURL, err := url.Parse(conf.DataSource.API.BaseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse api base url '%s'", conf.DataSource.API.BaseURL)
	}

	funcs := []client.OptionFunc{
		client.WithBaseURL(baseURL),
	}

	if conf.DataSource.API.MockEnabled {
		transport, err := getMockTransportFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		funcs = append(funcs, client.WithHTTPClient(&http.Client{
			Timeout:   time.Minute,
			Transport: transport,
		}))
	}

	return client.New(funcs...), nil
})

var getMockTransportFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*mock.Transport, error) {
	handler, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create api handler from config")
	}

	return mock.NewTransport(handler), nil
})
