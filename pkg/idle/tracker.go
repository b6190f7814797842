// Package idle maintains a cached view of user inactivity and screen lock
// state. Idle and lock queries are comparatively expensive OS calls, so the
// tracker caches the idle reading with a TTL and the monitor only asks for
// fresh data on a slower cadence than its call-detection tick.
package idle

import (
	"time"

	"github.com/luxmon/luxmon/pkg/interfaces"
)

// DefaultCacheTTL is how long a cached idle reading stays valid.
const DefaultCacheTTL = 30 * time.Second

// Tracker caches idle readings from an IdleSource. It is not safe for
// concurrent use; the monitor invokes it from a single tick loop.
type Tracker struct {
	source interfaces.IdleSource
	ttl    time.Duration
	now    func() time.Time

	lastChecked time.Time
	cachedIdle  float64
}

// NewTracker creates a tracker over the given source.
func NewTracker(source interfaces.IdleSource, ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Tracker{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// IdleSeconds returns the idle duration in seconds and whether the reading
// came from a live query. Without force, a cache younger than the TTL is
// returned untouched. A failed live query falls back to the cached value
// and reports it as stale.
func (t *Tracker) IdleSeconds(force bool) (float64, bool) {
	if !force && !t.lastChecked.IsZero() && t.now().Sub(t.lastChecked) < t.ttl {
		return t.cachedIdle, false
	}

	seconds, err := t.source.IdleSeconds()
	if err != nil {
		return t.cachedIdle, false
	}

	t.cachedIdle = seconds
	t.lastChecked = t.now()
	return seconds, true
}

// ScreenLocked queries the lock state live, failing soft to unlocked. The
// monitor only calls this on the same cadence as a forced idle refresh.
func (t *Tracker) ScreenLocked() bool {
	locked, err := t.source.ScreenLocked()
	if err != nil {
		return false
	}
	return locked
}
