package setup

import (
	"context"
	"testing"

	"github.com/bornholm/roster/internal/adapter/httpapi"
	"github.com/bornholm/roster/internal/config"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/pkg/errors"
)

// Resolved components are memoized per process, so one configuration
// drives the whole test binary: the development environment, backed by the
// in-process mock transport.
func developmentConfig(t *testing.T) *config.Config {
	t.Setenv("ROSTER_DATASOURCE_ENVIRONMENT", config.EnvironmentDevelopment)
	t.Setenv("ROSTER_FIXTURE_LATENCY", "0")

	conf, err := config.Parse()
	if err != nil {
		t.Fatalf("could not parse config: %+v", errors.WithStack(err))
	}

	return conf
}

func TestNewDataSourceFromConfigDevelopment(t *testing.T) {
	ctx := context.Background()

	conf := developmentConfig(t)

	dataSource, err := NewDataSourceFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("could not create data source: %+v", errors.WithStack(err))
	}

	if _, isHTTPAPI := dataSource.(*httpapi.DataSource); !isHTTPAPI {
		t.Fatalf("dataSource: expected a *httpapi.DataSource, got %T", dataSource)
	}

	// No server runs anywhere; the fixture answers through the intercepted
	// client
	people, total, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{})
	if err != nil {
		t.Fatalf("could not query people: %+v", errors.WithStack(err))
	}

	if e, g := int64(conf.Fixture.Count), total; e != g {
		t.Errorf("total: expected %d, got %d", e, g)
	}

	if e, g := conf.Fixture.Count, len(people); e != g {
		t.Errorf("len(people): expected %d, got %d", e, g)
	}
}

func TestNewDirectoryFromConfig(t *testing.T) {
	ctx := context.Background()

	conf := developmentConfig(t)

	directory, err := NewDirectoryFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("could not create directory: %+v", errors.WithStack(err))
	}

	entry, err := directory.ListPeople(ctx)
	if err != nil {
		t.Fatalf("could not list people: %+v", errors.WithStack(err))
	}

	if e, g := conf.Fixture.Count, len(entry.People); e != g {
		t.Errorf("len(entry.People): expected %d, got %d", e, g)
	}
}
