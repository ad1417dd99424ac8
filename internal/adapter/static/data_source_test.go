package static

import (
	"context"
	"testing"

	"github.com/bornholm/roster/internal/core/port"
	"github.com/bornholm/roster/internal/core/port/testsuite"
	"github.com/bornholm/roster/internal/fixture"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const collectionPath = "data/users.json"

func seededFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()

	if _, err := fixture.Export(fs, collectionPath, testsuite.SeedPeople()); err != nil {
		t.Fatalf("could not export collection: %+v", errors.WithStack(err))
	}

	return fs
}

func TestDataSource(t *testing.T) {
	testsuite.TestDataSource(t, func(t *testing.T) (port.DataSource, error) {
		return NewDataSource(seededFs(t), collectionPath), nil
	})
}

func TestWriteModeReject(t *testing.T) {
	ctx := context.Background()

	dataSource := NewDataSource(seededFs(t), collectionPath)

	attrs := port.PersonAttrs{
		Name: "David Dupont",
		Role: "Product",
	}

	if _, err := dataSource.CreatePerson(ctx, attrs); !errors.Is(err, port.ErrReadOnly) {
		t.Errorf("err: expected port.ErrReadOnly, got %v", err)
	}
}

func TestWriteModeDiscard(t *testing.T) {
	ctx := context.Background()

	dataSource := NewDataSource(seededFs(t), collectionPath, WithWriteMode(WriteModeDiscard))

	attrs := port.PersonAttrs{
		Name: "David Dupont",
		Role: "Product",
	}

	created, err := dataSource.CreatePerson(ctx, attrs)
	if err != nil {
		t.Fatalf("could not create person: %+v", errors.WithStack(err))
	}

	if created.ID == "" {
		t.Error("created.ID: expected a generated id")
	}

	// The acknowledged record was never persisted
	people, _, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{})
	if err != nil {
		t.Fatalf("could not query people: %+v", errors.WithStack(err))
	}

	if e, g := 3, len(people); e != g {
		t.Errorf("len(people): expected %d, got %d", e, g)
	}
}

func TestMissingCollection(t *testing.T) {
	ctx := context.Background()

	dataSource := NewDataSource(afero.NewMemMapFs(), collectionPath)

	if _, _, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{}); err == nil {
		t.Error("err: expected an error for a missing collection")
	}
}
