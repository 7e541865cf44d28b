package cache

import (
	"context"
	"sync"
	"time"

	"github.com/marquee-cli/marquee/log"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Forever marks an entry that never goes stale.
const Forever time.Duration = -1

// DefaultGCTime is how long an unobserved stale entry survives a sweep.
const DefaultGCTime = 5 * time.Minute

type entry struct {
	status    Status
	err       error
	value     any
	updatedAt time.Time
	staleTime time.Duration
	stale     bool

	fetching    bool
	loadingMore bool
	// settled counts finished full fetches.
	settled uint64

	subs     map[uint64]*Subscription
	lastUsed time.Time
}

func (e *entry) fresh(now time.Time) bool {
	if e.status != Success || e.stale {
		return false
	}
	if e.staleTime == Forever {
		return true
	}
	return now.Sub(e.updatedAt) < e.staleTime
}

func (e *entry) inFlight() bool {
	return e.fetching || e.loadingMore
}

// Manager owns every cache entry and the in-flight bookkeeping.
// It is shared by all views and safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	nextSub uint64

	ctx    context.Context
	cancel context.CancelFunc

	now    func() time.Time
	retry  RetryPolicy
	gcTime time.Duration
}

// Option configures a Manager in New.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRetryPolicy sets the policy used by queries that do not set their own.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(m *Manager) { m.retry = p }
}

// WithGCTime sets how long an unused stale entry is kept before a sweep removes it.
func WithGCTime(d time.Duration) Option {
	return func(m *Manager) { m.gcTime = d }
}

// New returns an empty manager. Close releases it.
func New(opts ...Option) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		entries: make(map[Key]*entry),
		ctx:     ctx,
		cancel:  cancel,
		now:     time.Now,
		retry:   DefaultRetryPolicy(),
		gcTime:  DefaultGCTime,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Close cancels every background fetch.
func (m *Manager) Close() {
	m.cancel()
}

// Len is the number of entries held.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Invalidate marks the entry stale. Its data is kept until a refetch replaces it.
// Subscribers are notified only when the entry was not stale already.
func (m *Manager) Invalidate(k Key) {
	m.mu.Lock()
	e, ok := m.entries[k]
	if !ok || e.stale {
		m.mu.Unlock()
		return
	}
	e.stale = true
	subs := m.subscribersLocked(e)
	m.mu.Unlock()

	notify(k, subs)
}

// InvalidateResource marks every entry of a resource stale.
func (m *Manager) InvalidateResource(resource string) {
	type pending struct {
		key  Key
		subs []*Subscription
	}

	m.mu.Lock()
	var all []pending
	for k, e := range m.entries {
		if k.Resource == resource && !e.stale {
			e.stale = true
			all = append(all, pending{key: k, subs: m.subscribersLocked(e)})
		}
	}
	m.mu.Unlock()

	for _, p := range all {
		notify(p.key, p.subs)
	}
}

// entryLocked returns the entry for k, creating it when missing.
func (m *Manager) entryLocked(k Key) *entry {
	e, ok := m.entries[k]
	if !ok {
		e = &entry{subs: make(map[uint64]*Subscription)}
		m.entries[k] = e
	}
	e.lastUsed = m.now()
	return e
}

func (m *Manager) subscribersLocked(e *entry) []*Subscription {
	if e == nil || len(e.subs) == 0 {
		return nil
	}
	subs := make([]*Subscription, 0, len(e.subs))
	for _, s := range e.subs {
		subs = append(subs, s)
	}
	return subs
}

// update applies fn to the entry under the lock and notifies its subscribers.
func (m *Manager) update(k Key, fn func(e *entry)) {
	m.mu.Lock()
	e := m.entryLocked(k)
	fn(e)
	subs := m.subscribersLocked(e)
	m.mu.Unlock()

	notify(k, subs)
}

func (m *Manager) logger(k Key) *logrus.Entry {
	return log.WithFields(logrus.Fields{"key": k.String()})
}

// beginLocked marks a full fetch as running. It reports false if one already was.
func (m *Manager) beginLocked(e *entry) bool {
	if e.fetching {
		return false
	}
	e.fetching = true
	if e.value == nil {
		e.status = Loading
	}
	return true
}

// settledSince returns the entry's outcome if a full fetch finished after
// generation gen. Otherwise it marks a fetch as running and reports false.
func (m *Manager) settledSince(k Key, gen uint64) (v any, done bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entryLocked(k)
	if e.settled != gen {
		return e.value, true, e.err
	}
	m.beginLocked(e)
	return nil, false, nil
}

func logSweep(removed, left int) {
	log.WithFields(logrus.Fields{"removed": removed, "left": left}).Debug("cache sweep")
}
