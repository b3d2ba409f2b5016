package ratelimit

import (
	"testing"
	"time"
)

func newTestLimiter(quota int, window time.Duration) *Limiter {
	l := New(quota, window, time.Hour)
	return l
}

func TestAllow_WithinQuota(t *testing.T) {
	l := newTestLimiter(3, time.Minute)
	defer l.Stop()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		allowed, _, _ := l.Allow("1.2.3.4", now)
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestAllow_QuotaExceeded(t *testing.T) {
	l := newTestLimiter(60, time.Minute)
	defer l.Stop()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 60; i++ {
		if allowed, _, _ := l.Allow("1.2.3.4", now.Add(time.Duration(i)*time.Millisecond)); !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if allowed, _, _ := l.Allow("1.2.3.4", now.Add(time.Second)); allowed {
		t.Fatal("61st request within the window must be rejected")
	}
}

func TestAllow_NewWindowResets(t *testing.T) {
	l := newTestLimiter(2, time.Minute)
	defer l.Stop()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	l.Allow("k", now)
	l.Allow("k", now)
	if allowed, _, _ := l.Allow("k", now); allowed {
		t.Fatal("expected rejection after quota exhausted")
	}

	// First request after resetAt passes opens a fresh window
	later := now.Add(time.Minute + time.Second)
	allowed, remaining, _ := l.Allow("k", later)
	if !allowed {
		t.Fatal("first request in a new window must be allowed")
	}
	if remaining != 1 {
		t.Fatalf("expected remaining 1 in fresh window, got %d", remaining)
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l := newTestLimiter(1, time.Minute)
	defer l.Stop()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	l.Allow("a", now)
	if allowed, _, _ := l.Allow("a", now); allowed {
		t.Fatal("key a should be exhausted")
	}
	if allowed, _, _ := l.Allow("b", now); !allowed {
		t.Fatal("key b must not be affected by key a")
	}
}

func TestSweep_EvictsExpiredBuckets(t *testing.T) {
	l := newTestLimiter(1, time.Minute)
	defer l.Stop()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	l.Allow("a", now)
	l.Allow("b", now)
	if l.Len() != 2 {
		t.Fatalf("expected 2 tracked keys, got %d", l.Len())
	}

	l.sweep(now.Add(2 * time.Minute))
	if l.Len() != 0 {
		t.Fatalf("expected expired buckets to be swept, got %d", l.Len())
	}
}
