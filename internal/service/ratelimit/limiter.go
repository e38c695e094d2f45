package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long a key may go unused before its bucket is dropped.
const idleTTL = 10 * time.Minute

type bucket struct {
	lim  *rate.Limiter
	last time.Time
}

// Limiter is a per-key token bucket.
type Limiter struct {
	mu     sync.Mutex
	m      map[string]*bucket
	rps    rate.Limit
	burst  int
	now    func() time.Time
	nextGC time.Time
}

// New creates a limiter allowing rps sustained requests per key with the
// given burst.
func New(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		m:     make(map[string]*bucket),
		rps:   rate.Limit(rps),
		burst: burst,
		now:   time.Now,
	}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextGC) {
		for k, b := range l.m {
			if now.Sub(b.last) > idleTTL {
				delete(l.m, k)
			}
		}
		l.nextGC = now.Add(idleTTL)
	}

	b, ok := l.m[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.rps, l.burst)}
		l.m[key] = b
	}
	b.last = now
	return b.lim.AllowN(now, 1)
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
