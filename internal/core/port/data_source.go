package port

import (
	"context"

	"github.com/bornholm/roster/internal/core/model"
)

type DataSource interface {
	// QueryPeople returns the known people in insertion order, optionally
	// filtered by the given options
	QueryPeople(ctx context.Context, opts QueryPeopleOptions) ([]model.Person, int64, error)

	// GetPersonByID finds a person by its ID, or returns ErrNotFound if not found
	GetPersonByID(ctx context.Context, id model.PersonID) (model.Person, error)

	// CreatePerson validates the given attributes, assigns a new unique ID and
	// stores the record. Returns ErrInvalidPerson if required fields are missing,
	// or ErrReadOnly if the backend does not accept writes.
	CreatePerson(ctx context.Context, attrs PersonAttrs) (model.Person, error)
}

type QueryPeopleOptions struct {
	// Search matches case-insensitively against name and role
	Search *string
}

type PersonAttrs struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (a PersonAttrs) Validate() error {
	if a.Name == "" || a.Role == "" {
		return ErrInvalidPerson
	}

	return nil
}
