package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketBurstAndRefill(t *testing.T) {
	tb := NewTokenBucket(5, 1.0)

	for i := 0; i < 5; i++ {
		assert.True(t, tb.Allow(), "request %d within burst capacity", i+1)
	}
	assert.False(t, tb.Allow(), "burst exhausted")

	// One token per second refills
	time.Sleep(2 * time.Second)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestTokenBucketReset(t *testing.T) {
	tb := NewTokenBucket(3, 1.0)

	for i := 0; i < 3; i++ {
		tb.Allow()
	}
	assert.False(t, tb.Allow())

	tb.Reset()
	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow(), "request %d after reset", i+1)
	}
}

func TestTokenBucketTokens(t *testing.T) {
	tb := NewTokenBucket(10, 1.0)

	assert.Equal(t, 10.0, tb.Tokens())
	tb.Allow()
	assert.Equal(t, 9.0, tb.Tokens())
}

func TestKeyedLimiterIsolatesKeys(t *testing.T) {
	l := NewKeyedLimiter(2, 1.0, 0)

	assert.True(t, l.Allow("key1"))
	assert.True(t, l.Allow("key1"))
	assert.False(t, l.Allow("key1"), "key1 budget spent")

	// key2 has its own bucket
	assert.True(t, l.Allow("key2"))
	assert.True(t, l.Allow("key2"))

	time.Sleep(1100 * time.Millisecond)
	assert.True(t, l.Allow("key1"), "refilled after a second")
}

func TestKeyedLimiterReset(t *testing.T) {
	l := NewKeyedLimiter(1, 1.0, 0)

	l.Allow("key1")
	assert.False(t, l.Allow("key1"))

	l.Reset("key1")
	assert.True(t, l.Allow("key1"))
}

func TestKeyedLimiterRemove(t *testing.T) {
	l := NewKeyedLimiter(5, 1.0, 0)

	l.Allow("key1")
	assert.Equal(t, 1, l.GetStats().ActiveBuckets)

	l.Remove("key1")
	assert.Equal(t, 0, l.GetStats().ActiveBuckets)
}

func TestKeyedLimiterStats(t *testing.T) {
	l := NewKeyedLimiter(10, 5.0, 0)

	l.Allow("key1")
	l.Allow("key2")
	l.Allow("key3")

	stats := l.GetStats()
	assert.Equal(t, 3, stats.ActiveBuckets)
	assert.Equal(t, 10, stats.TotalCapacity)
	assert.Equal(t, 5.0, stats.RefillRate)
}

func TestKeyedLimiterSweepsIdleBuckets(t *testing.T) {
	l := NewKeyedLimiter(5, 1.0, 200*time.Millisecond)

	l.Allow("key1")
	assert.Equal(t, 1, l.GetStats().ActiveBuckets)

	// TTL plus margin for the sweep tick
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 0, l.GetStats().ActiveBuckets)
}

func TestKeyedLimiterConcurrentAccess(t *testing.T) {
	l := NewKeyedLimiter(100, 100.0, 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				l.Allow("shared-key")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, l.GetStats().ActiveBuckets)
}

func BenchmarkTokenBucketAllow(b *testing.B) {
	tb := NewTokenBucket(1000000, 1000000.0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tb.Allow()
	}
}

func BenchmarkKeyedLimiterAllow(b *testing.B) {
	l := NewKeyedLimiter(1000000, 1000000.0, 0)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Allow("benchmark-key")
		}
	})
}
