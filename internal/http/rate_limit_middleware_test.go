package httpx

import (
	"testing"
	"time"
)

func TestMemoryRateLimiterBlocksOverLimit(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if d := rl.Allow("ip:1.2.3.4", 3, time.Minute); !d.allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if d := rl.Allow("ip:1.2.3.4", 3, time.Minute); d.allowed {
		t.Fatal("fourth request should be blocked")
	}
	// Other keys are unaffected.
	if d := rl.Allow("ip:5.6.7.8", 3, time.Minute); !d.allowed {
		t.Fatal("distinct key should be allowed")
	}
}

func TestMemoryRateLimiterZeroLimitDisables(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()
	for i := 0; i < 100; i++ {
		if d := rl.Allow("ip:1.2.3.4", 0, time.Minute); !d.allowed {
			t.Fatal("zero limit should disable limiting")
		}
	}
}

func TestMemoryRateLimiterCleanupDropsExpired(t *testing.T) {
	rl := &memoryRateLimiter{
		entries: map[string]rateState{
			"stale": {count: 5, windowEnd: time.Now().Add(-time.Minute)},
			"live":  {count: 1, windowEnd: time.Now().Add(time.Minute)},
		},
		stopCh: make(chan struct{}),
	}
	rl.cleanup(time.Now())
	if _, ok := rl.entries["stale"]; ok {
		t.Fatal("expired entry should be swept")
	}
	if _, ok := rl.entries["live"]; !ok {
		t.Fatal("live entry should survive")
	}
}
