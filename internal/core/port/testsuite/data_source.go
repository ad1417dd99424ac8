package testsuite

import (
	"context"
	"testing"

	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/core/port"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

// SeedPeople is the collection injected by every conformance run. Factories
// must return a data source pre-loaded with exactly these records.
func SeedPeople() []model.Person {
	return []model.Person{
		{ID: "p-ana", Name: "Ana Andersen", Role: "Engineering", AvatarURL: "https://example.net/ana.png"},
		{ID: "p-bo", Name: "Bo Bergmann", Role: "Design", AvatarURL: "https://example.net/bo.png"},
		{ID: "p-cyrielle", Name: "Cyrielle Clausen", Role: "Engineering", AvatarURL: "https://example.net/cyrielle.png"},
	}
}

// TestDataSource checks the read contract shared by every backend.
func TestDataSource(t *testing.T, factory func(t *testing.T) (port.DataSource, error)) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, dataSource port.DataSource) error
	}

	var testCases []testCase = []testCase{
		{
			Name: "QueryAll",
			Run: func(t *testing.T, ctx context.Context, dataSource port.DataSource) error {
				people, total, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{})
				if err != nil {
					return errors.WithStack(err)
				}

				t.Logf("people: %s", spew.Sdump(people))

				if e, g := 3, len(people); e != g {
					t.Errorf("len(people): expected %d, got %d", e, g)
				}

				if e, g := int64(3), total; e != g {
					t.Errorf("total: expected %d, got %d", e, g)
				}

				for i, p := range SeedPeople() {
					if e, g := p.ID, people[i].ID; e != g {
						t.Errorf("people[%d].ID: expected '%s', got '%s'", i, e, g)
					}
				}

				return nil
			},
		},
		{
			Name: "QueryBySearch",
			Run: func(t *testing.T, ctx context.Context, dataSource port.DataSource) error {
				search := "eng"

				people, total, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{
					Search: &search,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				t.Logf("people: %s", spew.Sdump(people))

				if e, g := int64(2), total; e != g {
					t.Errorf("total: expected %d, got %d", e, g)
				}

				if e, g := 2, len(people); e != g {
					t.Fatalf("len(people): expected %d, got %d", e, g)
				}

				if e, g := model.PersonID("p-ana"), people[0].ID; e != g {
					t.Errorf("people[0].ID: expected '%s', got '%s'", e, g)
				}

				if e, g := model.PersonID("p-cyrielle"), people[1].ID; e != g {
					t.Errorf("people[1].ID: expected '%s', got '%s'", e, g)
				}

				return nil
			},
		},
		{
			Name: "QueryBySearchMatchesName",
			Run: func(t *testing.T, ctx context.Context, dataSource port.DataSource) error {
				search := "bergmann"

				people, _, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{
					Search: &search,
				})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(people); e != g {
					t.Fatalf("len(people): expected %d, got %d", e, g)
				}

				if e, g := model.PersonID("p-bo"), people[0].ID; e != g {
					t.Errorf("people[0].ID: expected '%s', got '%s'", e, g)
				}

				return nil
			},
		},
		{
			Name: "GetByID",
			Run: func(t *testing.T, ctx context.Context, dataSource port.DataSource) error {
				person, err := dataSource.GetPersonByID(ctx, "p-bo")
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := "Bo Bergmann", person.Name; e != g {
					t.Errorf("person.Name: expected '%s', got '%s'", e, g)
				}

				return nil
			},
		},
		{
			Name: "GetMissing",
			Run: func(t *testing.T, ctx context.Context, dataSource port.DataSource) error {
				if _, err := dataSource.GetPersonByID(ctx, "p-nobody"); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("err: expected port.ErrNotFound, got %v", err)
				}

				return nil
			},
		},
		{
			Name: "CreateInvalid",
			Run: func(t *testing.T, ctx context.Context, dataSource port.DataSource) error {
				if _, err := dataSource.CreatePerson(ctx, port.PersonAttrs{Name: "No Role"}); !errors.Is(err, port.ErrInvalidPerson) {
					t.Errorf("err: expected port.ErrInvalidPerson, got %v", err)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.Background()

			dataSource, err := factory(t)
			if err != nil {
				t.Fatalf("could not create data source: %+v", errors.WithStack(err))
			}

			if err := tc.Run(t, ctx, dataSource); err != nil {
				t.Fatalf("could not run test: %+v", errors.WithStack(err))
			}
		})
	}
}

// TestMutableDataSource checks the write contract of backends that persist
// created records.
func TestMutableDataSource(t *testing.T, factory func(t *testing.T) (port.DataSource, error)) {
	t.Run("CreateThenGet", func(t *testing.T) {
		ctx := context.Background()

		dataSource, err := factory(t)
		if err != nil {
			t.Fatalf("could not create data source: %+v", errors.WithStack(err))
		}

		created, err := dataSource.CreatePerson(ctx, port.PersonAttrs{
			Name: "David Dupont",
			Role: "Product",
		})
		if err != nil {
			t.Fatalf("could not create person: %+v", errors.WithStack(err))
		}

		if created.ID == "" {
			t.Error("created.ID: expected a generated id")
		}

		if created.CreatedAt.IsZero() {
			t.Error("created.CreatedAt: expected a timestamp")
		}

		found, err := dataSource.GetPersonByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("could not get created person: %+v", errors.WithStack(err))
		}

		if e, g := "David Dupont", found.Name; e != g {
			t.Errorf("found.Name: expected '%s', got '%s'", e, g)
		}

		people, _, err := dataSource.QueryPeople(ctx, port.QueryPeopleOptions{})
		if err != nil {
			t.Fatalf("could not query people: %+v", errors.WithStack(err))
		}

		if e, g := created.ID, people[len(people)-1].ID; e != g {
			t.Errorf("people[last].ID: expected '%s', got '%s'", e, g)
		}
	})
}
