package trakt

import (
	"context"
	"sync"
	"time"
)

// rateLimiter is a sliding window limiter: at most maxRequests may start
// within any window.
type rateLimiter struct {
	mu          sync.Mutex
	requests    []time.Time
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

func newRateLimiter(maxRequests int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make([]time.Time, 0, maxRequests),
		now:         time.Now,
	}
}

// prune drops requests that left the window. Callers hold mu.
func (r *rateLimiter) prune(now time.Time) {
	cutoff := now.Add(-r.window)
	kept := r.requests[:0]
	for _, req := range r.requests {
		if req.After(cutoff) {
			kept = append(kept, req)
		}
	}
	r.requests = kept
}

// reserve records a request if the window allows one, otherwise it returns
// how long to wait before trying again.
func (r *rateLimiter) reserve() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.prune(now)
	if len(r.requests) < r.maxRequests {
		r.requests = append(r.requests, now)
		return 0
	}
	return r.window - now.Sub(r.requests[0]) + 10*time.Millisecond
}

// wait blocks until a request may be made or ctx is done. A limiter with a
// non-positive limit never blocks.
func (r *rateLimiter) wait(ctx context.Context) (time.Duration, error) {
	if r == nil || r.maxRequests <= 0 {
		return 0, nil
	}

	var waited time.Duration
	for {
		d := r.reserve()
		if d <= 0 {
			return waited, nil
		}

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return waited, ctx.Err()
		case <-timer.C:
			waited += d
		}
	}
}
