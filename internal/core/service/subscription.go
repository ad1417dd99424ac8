package service

import "sync"

// Subscription observes every state change of one cache entry. Delivery is
// latest-wins: a slow consumer only ever misses intermediate snapshots,
// never the most recent one.
type Subscription struct {
	id        uint64
	key       QueryKey
	ch        chan Entry
	directory *Directory
	once      sync.Once
}

func (s *Subscription) C() <-chan Entry {
	return s.ch
}

// Close detaches the observer. An in-flight fetch for the key keeps
// running and its result is still cached; it is simply no longer
// delivered here.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.directory.unsubscribe(s)
	})
}

// deliver must be called with the directory mutex held.
func (s *Subscription) deliver(snapshot Entry) {
	select {
	case s.ch <- snapshot:
		return
	default:
	}

	// Buffer full: drop the stale snapshot and retry
	select {
	case <-s.ch:
	default:
	}

	select {
	case s.ch <- snapshot:
	default:
	}
}
