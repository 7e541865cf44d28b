package cache

import (
	"context"
	"time"
)

// CollectGarbage sweeps unobserved stale entries every interval until ctx
// or the manager is done. It returns immediately.
func (m *Manager) CollectGarbage(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

// Sweep removes entries that have no subscribers, nothing in flight, are not
// fresh and were last used more than the GC time ago. It returns how many
// entries were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for k, e := range m.entries {
		if len(e.subs) > 0 || e.inFlight() || e.fresh(now) {
			continue
		}
		if now.Sub(e.lastUsed) <= m.gcTime {
			continue
		}
		delete(m.entries, k)
		removed++
	}

	if removed > 0 {
		logSweep(removed, len(m.entries))
	}
	return removed
}
