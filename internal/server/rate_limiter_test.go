package server

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)
	defer limiter.Stop()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("fourth request should be rejected")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("other clients have their own bucket")
	}

	now = now.Add(25 * time.Second)
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("one token should refill after a third of the window")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("only one token should have refilled")
	}

	now = now.Add(time.Minute)
	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d after a full window should be allowed", i+1)
		}
	}
}

func TestRateLimiterZeroCapacity(t *testing.T) {
	limiter := NewRateLimiter(0, time.Minute)
	defer limiter.Stop()

	if limiter.Allow("10.0.0.1") {
		t.Error("a limiter without capacity should reject requests")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("idle")
	now = now.Add(bucketCleanupThreshold + time.Second)
	limiter.Allow("active")
	limiter.cleanup()

	if _, ok := limiter.clients["idle"]; ok {
		t.Error("idle bucket should be removed")
	}
	if _, ok := limiter.clients["active"]; !ok {
		t.Error("active bucket should be kept")
	}
}

func TestRateLimiterStopTwice(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	limiter.Stop()
	limiter.Stop()
}
