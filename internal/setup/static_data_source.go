package setup

import (
	"context"

	"github.com/bornholm/roster/internal/adapter/static"
	"github.com/bornholm/roster/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var getStaticDataSourceFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*static.DataSource, error) {
	var writeMode static.WriteMode
	switch mode := static.WriteMode(conf.DataSource.Static.WriteMode); mode {
	case static.WriteModeReject, static.WriteModeDiscard:
		writeMode = mode
	default:
		return nil, errors.Errorf("unexpected write mode '%s'", mode)
	}

	dataSource := static.NewDataSource(
		afero.NewOsFs(), conf.DataSource.Static.Path,
		static.WithWriteMode(writeMode),
	)

	return dataSource, nil
})
