package setup

import (
	"context"

	"github.com/bornholm/roster/internal/adapter/memory"
	"github.com/bornholm/roster/internal/config"
	"github.com/bornholm/roster/internal/fixture"
)

var getMemoryDataSourceFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*memory.DataSource, error) {
	people := fixture.Generate(conf.Fixture.Seed, conf.Fixture.Count)

	dataSource := memory.NewDataSource(
		memory.WithPeople(people...),
		memory.WithLatency(conf.Fixture.Latency),
	)

	return dataSource, nil
})
