package setup

import (
	"context"

	"github.com/bornholm/roster/internal/config"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/bornholm/roster/internal/http/handler/api"
	"github.com/pkg/errors"
)

var getAPIHandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*api.Handler, error) {
	dataSource, err := getServerDataSourceFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessionStore, err := getSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create session store from config")
	}

	return api.NewHandler(dataSource, sessionStore), nil
})

// getServerDataSourceFromConfig returns the source of truth that the HTTP
// API serves, as opposed to the client-facing one resolved by
// [NewDataSourceFromConfig].
func getServerDataSourceFromConfig(ctx context.Context, conf *config.Config) (port.DataSource, error) {
	switch env := conf.DataSource.Environment; env {
	case config.EnvironmentDevelopment:
		dataSource, err := getMemoryDataSourceFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return dataSource, nil

	case config.EnvironmentProduction:
		dataSource, err := getStaticDataSourceFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return dataSource, nil

	default:
		return nil, errors.Errorf("unexpected environment '%s'", env)
	}
}
