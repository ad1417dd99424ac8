package setup

import (
	"context"

	"github.com/bornholm/roster/internal/config"
	"github.com/bornholm/roster/internal/core/service"
	"github.com/pkg/errors"
)

var NewDirectoryFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*service.Directory, error) {
	dataSource, err := NewDataSourceFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create data source from config")
	}

	directory := service.NewDirectory(dataSource,
		service.WithStaleAfter(conf.Cache.StaleAfter),
		service.WithEvictAfter(conf.Cache.EvictAfter),
		service.WithMaxRetries(conf.Cache.MaxRetries),
		service.WithBaseBackoff(conf.Cache.BaseBackoff),
		service.WithRequestTimeout(conf.Cache.RequestTimeout),
	)

	return directory, nil
})
