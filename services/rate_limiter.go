// services/rate_limiter.go
package services

import (
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Action kinds with distinct rate ceilings.
const (
	ActionClaim  = "claim"
	ActionSubmit = "submit"
	ActionCreate = "create"
)

// RateLimitWindow is the fixed window width shared by all actions.
const RateLimitWindow = 1 * time.Minute

// Per-action ceilings within one window.
var rateLimits = map[string]int{
	ActionClaim:  3,
	ActionSubmit: 5,
	ActionCreate: 10,
}

type rateEntry struct {
	count       int
	windowStart time.Time
}

// RateLimiter is a fixed-window counter keyed by (address, action).
// Counters are per-process and not persisted: a restart resets them, and
// horizontally scaled instances do not share state. Bursts straddling a
// window boundary can admit up to 2× the ceiling — that is the documented
// semantics of the fixed window, not a bug.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
	now     func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*rateEntry),
		now:     time.Now,
	}
}

// Allow checks and consumes one slot for (address, action). On rejection the
// returned OpError carries retry_after in whole seconds, rounded up.
func (r *RateLimiter) Allow(address, action string) *OpError {
	limit, ok := rateLimits[action]
	if !ok {
		return nil // unlimited action kind
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	key := address + "|" + action

	e := r.entries[key]
	if e == nil || now.Sub(e.windowStart) > RateLimitWindow {
		e = &rateEntry{windowStart: now}
		r.entries[key] = e
	}

	if e.count >= limit {
		remaining := e.windowStart.Add(RateLimitWindow).Sub(now)
		retryAfter := int64((remaining + time.Second - 1) / time.Second)
		if retryAfter < 1 {
			retryAfter = 1
		}
		return opErr(CodeRateLimited, "rate limit exceeded for %s (%d per %s)", action, limit, RateLimitWindow).
			withExtra(map[string]interface{}{"retry_after": retryAfter})
	}

	e.count++
	return nil
}

// Evict drops entries whose window is more than twice the window width old,
// bounding memory. Returns the number evicted.
func (r *RateLimiter) Evict() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for key, e := range r.entries {
		if now.Sub(e.windowStart) > 2*RateLimitWindow {
			delete(r.entries, key)
			evicted++
		}
	}
	return evicted
}

// StartEvictionSweep schedules the periodic eviction job. The returned
// function shuts the scheduler down.
func (r *RateLimiter) StartEvictionSweep() (func() error, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(RateLimitWindow),
		gocron.NewTask(func() {
			if n := r.Evict(); n > 0 {
				log.Printf("[RateLimiter] Evicted %d stale window(s)", n)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched.Shutdown, nil
}
