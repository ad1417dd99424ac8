package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bornholm/roster/internal/core/model"
	"github.com/bornholm/roster/internal/core/port"
)

// Directory is the server-state cache of the people collection. It owns
// every cache entry exclusively: consumers read snapshots and route all
// writes through the mutation methods. It is safe for concurrent use and
// carries its own lifecycle; create one per process (or per test) and
// Close it when done.
type Directory struct {
	dataSource port.DataSource

	mutex              sync.Mutex
	entries            map[string]*entry
	pendingTargets     map[model.PersonID]chan struct{}
	nextSubscriptionID uint64

	staleAfter     time.Duration
	evictAfter     time.Duration
	evictInterval  time.Duration
	maxRetries     int
	baseBackoff    time.Duration
	requestTimeout time.Duration

	cancel context.CancelFunc
}

type Options struct {
	// StaleAfter is the freshness window of a successful fetch
	StaleAfter time.Duration
	// EvictAfter is the inactivity window after which an unobserved entry
	// is dropped
	EvictAfter     time.Duration
	EvictInterval  time.Duration
	MaxRetries     int
	BaseBackoff    time.Duration
	RequestTimeout time.Duration
}

type OptionFunc func(opts *Options)

func WithStaleAfter(staleAfter time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.StaleAfter = staleAfter
	}
}

func WithEvictAfter(evictAfter time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.EvictAfter = evictAfter
	}
}

func WithEvictInterval(evictInterval time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.EvictInterval = evictInterval
	}
}

func WithMaxRetries(maxRetries int) OptionFunc {
	return func(opts *Options) {
		opts.MaxRetries = maxRetries
	}
}

func WithBaseBackoff(baseBackoff time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.BaseBackoff = baseBackoff
	}
}

func WithRequestTimeout(requestTimeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.RequestTimeout = requestTimeout
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		StaleAfter:     30 * time.Second,
		EvictAfter:     5 * time.Minute,
		EvictInterval:  time.Minute,
		MaxRetries:     3,
		BaseBackoff:    time.Second,
		RequestTimeout: 30 * time.Second,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func NewDirectory(dataSource port.DataSource, funcs ...OptionFunc) *Directory {
	opts := NewOptions(funcs...)

	ctx, cancel := context.WithCancel(context.Background())

	d := &Directory{
		dataSource:     dataSource,
		entries:        map[string]*entry{},
		pendingTargets: map[model.PersonID]chan struct{}{},
		staleAfter:     opts.StaleAfter,
		evictAfter:     opts.EvictAfter,
		evictInterval:  opts.EvictInterval,
		maxRetries:     opts.MaxRetries,
		baseBackoff:    opts.BaseBackoff,
		requestTimeout: opts.RequestTimeout,
		cancel:         cancel,
	}

	go d.evictLoop(ctx)

	return d
}

func (d *Directory) Close() {
	d.cancel()
}

func (d *Directory) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(d.evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.mutex.Lock()
			for key, e := range d.entries {
				if len(e.observers) > 0 || e.inflight > 0 {
					continue
				}

				if time.Since(e.lastAccess) < d.evictAfter {
					continue
				}

				slog.DebugContext(ctx, "evicting idle cache entry", slog.String("key", key))

				delete(d.entries, key)
			}
			d.mutex.Unlock()
		}
	}
}

// Subscribe attaches an observer to the entry identified by key, creating
// the entry (and triggering its first fetch) if needed. The current
// snapshot is delivered immediately.
func (d *Directory) Subscribe(key QueryKey) *Subscription {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	e := d.getOrCreateEntry(key)
	e.lastAccess = time.Now()

	if e.status == StatusPending && e.inflight == 0 {
		d.startFetch(e)
	}

	d.nextSubscriptionID++

	sub := &Subscription{
		id:        d.nextSubscriptionID,
		key:       key,
		ch:        make(chan Entry, 1),
		directory: d,
	}

	e.observers[sub.id] = sub

	sub.deliver(d.snapshot(e))

	return sub
}

func (d *Directory) unsubscribe(sub *Subscription) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	e, exists := d.entries[sub.key.String()]
	if exists {
		delete(e.observers, sub.id)
	}

	close(sub.ch)
}

// notifyObservers must be called with the directory mutex held.
func (d *Directory) notifyObservers(e *entry) {
	if len(e.observers) == 0 {
		return
	}

	snapshot := d.snapshot(e)

	for _, sub := range e.observers {
		sub.deliver(snapshot)
	}

	e.lastAccess = time.Now()
}

// snapshot must be called with the directory mutex held.
func (d *Directory) snapshot(e *entry) Entry {
	people := make([]model.Person, 0, len(e.people)+len(e.optimistic))
	people = append(people, e.people...)
	people = append(people, e.optimistic...)

	return Entry{
		Key:              e.key,
		Status:           e.status,
		People:           people,
		Err:              e.err,
		BackgroundErr:    e.backgroundErr,
		Stale:            e.status == StatusSuccess && d.stale(e),
		PendingMutations: len(e.optimistic),
		LastFetchedAt:    e.lastFetchedAt,
	}
}

func (d *Directory) stale(e *entry) bool {
	return e.invalidated || time.Since(e.lastFetchedAt) > d.staleAfter
}
