package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client. Buckets idle for longer
// than limiterIdleTTL are dropped on the next sweep.
type clientLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func newClientLimiter(cfg RateLimit) *clientLimiter {
	return &clientLimiter{
		buckets: make(map[string]*clientBucket),
		limit:   rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
		now:     time.Now,
	}
}

// allow consumes a token for client. When none is available it reports how
// long the client should wait.
func (l *clientLimiter) allow(client string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	bucket, ok := l.buckets[client]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = bucket
	}
	bucket.lastSeen = now

	reservation := bucket.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}

	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}

	return true, 0
}

func (l *clientLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < limiterIdleTTL {
		return
	}
	l.lastSweep = now

	for client, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > limiterIdleTTL {
			delete(l.buckets, client)
		}
	}
}
