package model

import (
	"time"

	"github.com/rs/xid"
)

type PersonID string

func NewPersonID() PersonID {
	return PersonID(xid.New().String())
}

// Person is a single directory record. The ID is assigned once and never
// changes; every other field is mutable.
type Person struct {
	ID        PersonID  `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
