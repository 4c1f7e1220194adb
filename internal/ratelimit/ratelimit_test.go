package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_SeparateATSBucketsDoNotBlock(t *testing.T) {
	r := NewATSRateLimiter(0.1, 1) // one request per 10s, burst 1

	ctx := context.Background()
	start := time.Now()
	if err := r.Wait(ctx, "greenhouse"); err != nil {
		t.Fatalf("Wait greenhouse: %v", err)
	}
	if err := r.Wait(ctx, "lever"); err != nil {
		t.Fatalf("Wait lever: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("different ATS buckets should not block each other, waited %v", elapsed)
	}
}

func TestWait_SameATSHonorsCancellation(t *testing.T) {
	r := NewATSRateLimiter(0.01, 1) // effectively blocks the second call

	ctx := context.Background()
	if err := r.Wait(ctx, "greenhouse"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	cancelCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	if err := r.Wait(cancelCtx, "greenhouse"); err == nil {
		t.Fatal("expected context deadline error for second request in the same bucket")
	}
}

func TestWait_BurstAllowsImmediateRequests(t *testing.T) {
	r := NewATSRateLimiter(0.1, 3)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := r.Wait(ctx, "smartrecruiters"); err != nil {
			t.Fatalf("Wait %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("burst of 3 should not block, waited %v", elapsed)
	}
}
