package middleware

import (
	"sync"
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToRate(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     3,
		window:   time.Minute,
		name:     "test",
	}

	for i := 0; i < 3; i++ {
		allowed, _ := rl.isAllowed("10.0.0.1")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if allowed, count := rl.isAllowed("10.0.0.1"); allowed {
		t.Errorf("request %d should be rejected", count)
	}

	// a different client has its own budget
	if allowed, _ := rl.isAllowed("10.0.0.2"); !allowed {
		t.Error("separate IPs must not share a counter")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     1,
		window:   10 * time.Millisecond,
		name:     "test",
	}

	rl.isAllowed("10.0.0.1")
	if allowed, _ := rl.isAllowed("10.0.0.1"); allowed {
		t.Fatal("second request inside the window should be rejected")
	}

	time.Sleep(15 * time.Millisecond)
	if allowed, _ := rl.isAllowed("10.0.0.1"); !allowed {
		t.Error("request after the window should be allowed again")
	}
}

func TestRateLimiterConcurrentAccess(t *testing.T) {
	rl := &RateLimiter{
		requests: make(map[string]*clientInfo),
		rate:     1000,
		window:   time.Minute,
		name:     "race",
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ips := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}
			for j := 0; j < 20; j++ {
				rl.isAllowed(ips[(n+j)%len(ips)])
			}
		}(i)
	}
	wg.Wait()

	total := 0
	rl.mu.RLock()
	for _, info := range rl.requests {
		total += info.count
	}
	rl.mu.RUnlock()

	if total != 1000 {
		t.Errorf("total counted requests = %d, want 1000", total)
	}
}
