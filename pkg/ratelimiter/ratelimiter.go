package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

// Policy is the sliding-window budget for one namespace
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

// RateLimiter counts attempts per namespace:key inside a sliding window.
// The auth service registers a "login" namespace keyed by email address:
//
//	rl := ratelimiter.NewRateLimiter()
//	rl.SetPolicy("login", 5, 5*time.Minute)
//	if !rl.Allow("login", email) { ... }
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	policies map[string]Policy
	now      func() time.Time

	stop    chan struct{}
	stopped bool
}

func NewRateLimiter() *RateLimiter {
	return newRateLimiter(time.Minute, time.Now)
}

func newRateLimiter(sweepEvery time.Duration, now func() time.Time) *RateLimiter {
	rl := &RateLimiter{
		attempts: make(map[string][]time.Time),
		policies: make(map[string]Policy),
		now:      now,
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop(sweepEvery)
	return rl
}

func (rl *RateLimiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.policies[namespace] = Policy{MaxAttempts: maxAttempts, Window: window}
}

// Allow records an attempt and reports whether it fits in the budget.
// A namespace without a policy always denies.
func (rl *RateLimiter) Allow(namespace, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return false
	}

	now := rl.now()
	k := namespace + ":" + key
	valid := pruned(rl.attempts[k], now.Add(-policy.Window))

	if len(valid) >= policy.MaxAttempts {
		rl.attempts[k] = valid
		return false
	}

	rl.attempts[k] = append(valid, now)
	return true
}

// Reset forgets the attempts of a key, called after a successful login
func (rl *RateLimiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, namespace+":"+key)
}

// RetryAfter is the time until the oldest counted attempt leaves the window
func (rl *RateLimiter) RetryAfter(namespace, key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return 0
	}

	now := rl.now()
	valid := pruned(rl.attempts[namespace+":"+key], now.Add(-policy.Window))
	if len(valid) == 0 {
		return 0
	}

	remaining := valid[0].Add(policy.Window).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// pruned keeps attempts after cutoff, attempts are appended in time order
func pruned(attempts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(attempts) && !attempts[i].After(cutoff) {
		i++
	}
	return attempts[i:]
}

func (rl *RateLimiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, list := range rl.attempts {
		namespace, _, _ := strings.Cut(k, ":")
		policy, ok := rl.policies[namespace]
		if !ok || len(pruned(list, now.Add(-policy.Window))) == 0 {
			delete(rl.attempts, k)
		}
	}
}

// Stop ends the sweep goroutine, safe to call more than once
func (rl *RateLimiter) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.stopped {
		close(rl.stop)
		rl.stopped = true
	}
}
