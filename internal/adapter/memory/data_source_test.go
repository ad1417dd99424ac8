package memory

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/roster/internal/core/port"
	"github.com/bornholm/roster/internal/core/port/testsuite"
	"github.com/bornholm/roster/internal/fixture"
	"github.com/pkg/errors"
)

func TestDataSource(t *testing.T) {
	testsuite.TestDataSource(t, func(t *testing.T) (port.DataSource, error) {
		return NewDataSource(WithPeople(testsuite.SeedPeople()...)), nil
	})
}

func TestMutableDataSource(t *testing.T) {
	testsuite.TestMutableDataSource(t, func(t *testing.T) (port.DataSource, error) {
		return NewDataSource(WithPeople(testsuite.SeedPeople()...)), nil
	})
}

func TestFailNext(t *testing.T) {
	ctx := context.Background()

	dataSource := NewDataSource(WithPeople(testsuite.SeedPeople()...))

	errBoom := errors.New("boom")
	errCrash := errors.New("crash")

	dataSource.FailNext(errBoom, errCrash)

	if _, _, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{}); !errors.Is(err, errBoom) {
		t.Errorf("err: expected errBoom, got %v", err)
	}

	if _, err := dataSource.GetPersonByID(ctx, "p-ana"); !errors.Is(err, errCrash) {
		t.Errorf("err: expected errCrash, got %v", err)
	}

	// Scripted faults are consumed, calls succeed again
	if _, _, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{}); err != nil {
		t.Errorf("err: expected nil, got %+v", err)
	}
}

func TestEveryFixturePersonIsRetrievable(t *testing.T) {
	ctx := context.Background()

	people := fixture.Generate(42, 25)

	dataSource := NewDataSource(WithPeople(people...))

	for _, p := range people {
		found, err := dataSource.GetPersonByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("could not get person '%s': %+v", p.ID, errors.WithStack(err))
		}

		if e, g := p.ID, found.ID; e != g {
			t.Errorf("found.ID: expected '%s', got '%s'", e, g)
		}
	}
}

func TestLatencyHonorsContext(t *testing.T) {
	dataSource := NewDataSource(
		WithPeople(testsuite.SeedPeople()...),
		WithLatency(time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, _, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err: expected context.DeadlineExceeded, got %v", err)
	}
}
