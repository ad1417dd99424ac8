package service

import (
	"strings"
	"time"

	"github.com/bornholm/roster/internal/core/model"
)

const ResourcePeople = "people"

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// QueryKey identifies one logical query. Two keys comparing equal share a
// single cache entry and a single in-flight fetch.
type QueryKey struct {
	Resource string
	Search   string
}

func (k QueryKey) String() string {
	if k.Search == "" {
		return k.Resource
	}

	return k.Resource + "?search=" + k.Search
}

func ListPeopleKey(search string) QueryKey {
	return QueryKey{
		Resource: ResourcePeople,
		Search:   strings.ToLower(strings.TrimSpace(search)),
	}
}

func GetPersonKey(id model.PersonID) QueryKey {
	return QueryKey{
		Resource: ResourcePeople + "/" + string(id),
	}
}

// Entry is an immutable snapshot of one cache entry as observed at a point
// in time. Consumers never mutate cached data directly; all writes go
// through the directory's mutation methods.
type Entry struct {
	Key    QueryKey
	Status Status

	// People is set iff Status is StatusSuccess. It includes records from
	// optimistic mutations still awaiting confirmation.
	People []model.Person

	// Err is set iff Status is StatusError
	Err error

	// BackgroundErr reports a failed background refetch. The previously
	// fetched People are kept as-is when it is set.
	BackgroundErr error

	// Stale marks a successful entry whose data is past its freshness
	// window or was invalidated by a mutation
	Stale bool

	// PendingMutations counts optimistic records awaiting backend
	// confirmation
	PendingMutations int

	LastFetchedAt time.Time
}

// Person returns the single record of a detail entry.
func (e Entry) Person() (model.Person, bool) {
	if e.Status != StatusSuccess || len(e.People) == 0 {
		return model.Person{}, false
	}

	return e.People[0], true
}

type entry struct {
	key   QueryKey
	fetch fetchFunc

	status        Status
	people        []model.Person
	optimistic    []model.Person
	err           error
	backgroundErr error
	lastFetchedAt time.Time
	invalidated   bool

	// fetch rounds are numbered per entry; a completion whose generation
	// is older than the last applied one is discarded
	nextGen    uint64
	appliedGen uint64
	inflight   int
	done       chan struct{}

	observers  map[uint64]*Subscription
	lastAccess time.Time
}

func matchesSearch(p model.Person, search string) bool {
	if search == "" {
		return true
	}

	search = strings.ToLower(search)

	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Role), search)
}
