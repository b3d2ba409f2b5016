// Package ratelimit implements the per-source quota applied to the public
// tracking endpoint. Buckets use a fixed window: the first event from a
// key opens a window, further events count against it, and the first
// event after the window expires resets it.
package ratelimit

import (
	"sync"
	"time"
)

// bucket tracks request counts for one source key within a window
type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window rate limiter with a bounded key table.
// Expired buckets are swept periodically so the table does not grow
// without bound under churning source keys.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	quota   int
	window  time.Duration
	stopCh  chan struct{}
}

// New creates a limiter allowing quota events per window for each source
// key and starts the sweep goroutine. Call Stop to release it.
func New(quota int, window time.Duration, sweepInterval time.Duration) *Limiter {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		quota:   quota,
		window:  window,
		stopCh:  make(chan struct{}),
	}

	go l.sweepLoop(sweepInterval)

	return l
}

// Stop stops the sweep goroutine
func (l *Limiter) Stop() {
	close(l.stopCh)
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

// sweep removes buckets whose window has expired
func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, key)
		}
	}
}

// Allow records one event for the source key at the given instant and
// reports whether it fits the quota. The first event after a window
// expires resets the bucket to count 1, so a source that exhausted the
// previous window is admitted again immediately.
func (l *Limiter) Allow(sourceKey string, now time.Time) (allowed bool, remaining int, resetAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[sourceKey]
	if !ok || now.After(b.resetAt) {
		b = &bucket{count: 1, resetAt: now.Add(l.window)}
		l.buckets[sourceKey] = b
		return true, l.quota - 1, b.resetAt
	}

	b.count++
	if b.count > l.quota {
		return false, 0, b.resetAt
	}
	return true, l.quota - b.count, b.resetAt
}

// Len returns the number of tracked source keys
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
