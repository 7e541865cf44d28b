package cache

import "sync"

// Subscription delivers change notifications for one entry.
//
// Deliveries to one subscription never overlap. A change made while fn runs,
// including one made by fn itself, is delivered after fn returns.
type Subscription struct {
	m   *Manager
	key Key
	id  uint64

	mu      sync.Mutex
	idle    *sync.Cond
	active  bool
	running bool
	pending []Key
	fn      func(Key)
}

// Subscribe registers fn to be called after every change to the entry of k.
// fn runs on the goroutine that made the change. It may read, load or
// invalidate any query but must not call Unsubscribe on its own subscription.
func (m *Manager) Subscribe(k Key, fn func(Key)) *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSub++
	s := &Subscription{m: m, key: k, id: m.nextSub, active: true, fn: fn}
	s.idle = sync.NewCond(&s.mu)
	m.entryLocked(k).subs[s.id] = s
	return s
}

// Unsubscribe stops deliveries. Once it returns, fn is never called again.
// Fetches already started for the entry still complete and fill the cache.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.active = false
	s.pending = nil
	for s.running {
		s.idle.Wait()
	}
	s.mu.Unlock()

	s.m.mu.Lock()
	if e, ok := s.m.entries[s.key]; ok {
		delete(e.subs, s.id)
		e.lastUsed = s.m.now()
	}
	s.m.mu.Unlock()
}

// deliver queues k and, unless another call is already delivering, runs fn
// for everything queued. fn is called without holding s.mu.
func (s *Subscription) deliver(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.pending = append(s.pending, k)
	if s.running {
		return
	}

	s.running = true
	for s.active && len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]

		s.mu.Unlock()
		s.fn(next)
		s.mu.Lock()
	}
	s.running = false
	s.pending = nil
	s.idle.Broadcast()
}

func notify(k Key, subs []*Subscription) {
	for _, s := range subs {
		s.deliver(k)
	}
}
