package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a single refillable request budget. Capacity bounds
// the burst; refillRate is how many requests per second trickle back.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	tokens     float64
	refilledAt time.Time
}

// NewTokenBucket creates a full bucket
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		refilledAt: time.Now(),
	}
}

// refillLocked credits tokens for the time elapsed since the last call.
// Callers must hold mu.
func (b *TokenBucket) refillLocked(now time.Time) {
	credit := now.Sub(b.refilledAt).Seconds() * b.refillRate
	b.tokens += credit
	if b.tokens > float64(b.capacity) {
		b.tokens = float64(b.capacity)
	}
	b.refilledAt = now
}

// Allow spends one token if one is available
func (b *TokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked(time.Now())
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Tokens reports the tokens held at the last refill
func (b *TokenBucket) Tokens() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tokens
}

// Reset refills the bucket to capacity
func (b *TokenBucket) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = float64(b.capacity)
	b.refilledAt = time.Now()
}

type limiterEntry struct {
	bucket   *TokenBucket
	lastSeen time.Time
}

// KeyedLimiter manages one token bucket per key (IP, user id, ...).
// Buckets not seen for the configured TTL are dropped by a background
// sweep so one-off clients do not accumulate forever.
type KeyedLimiter struct {
	mu         sync.RWMutex
	entries    map[string]*limiterEntry
	capacity   int
	refillRate float64
	ttl        time.Duration
}

// NewKeyedLimiter creates a keyed rate limiter. A ttl of 0 keeps
// buckets forever.
func NewKeyedLimiter(capacity int, refillRate float64, ttl time.Duration) *KeyedLimiter {
	l := &KeyedLimiter{
		entries:    make(map[string]*limiterEntry),
		capacity:   capacity,
		refillRate: refillRate,
		ttl:        ttl,
	}

	if ttl > 0 {
		go l.sweep()
	}

	return l
}

// Allow spends one token from the key's bucket, creating it on first use
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &limiterEntry{bucket: NewTokenBucket(l.capacity, l.refillRate)}
		l.entries[key] = entry
	}
	entry.lastSeen = time.Now()
	l.mu.Unlock()

	return entry.bucket.Allow()
}

// Reset refills the bucket for the given key, if one exists
func (l *KeyedLimiter) Reset(key string) {
	l.mu.RLock()
	entry, ok := l.entries[key]
	l.mu.RUnlock()

	if ok {
		entry.bucket.Reset()
	}
}

// Remove drops the key's bucket entirely
func (l *KeyedLimiter) Remove(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// sweep drops buckets that have been idle longer than the TTL
func (l *KeyedLimiter) sweep() {
	ticker := time.NewTicker(l.ttl)
	defer ticker.Stop()

	for now := range ticker.C {
		l.mu.Lock()
		for key, entry := range l.entries {
			if now.Sub(entry.lastSeen) > l.ttl {
				delete(l.entries, key)
			}
		}
		l.mu.Unlock()
	}
}

// Stats describes the state of a KeyedLimiter
type Stats struct {
	ActiveBuckets int
	TotalCapacity int
	RefillRate    float64
}

// GetStats returns current statistics
func (l *KeyedLimiter) GetStats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Stats{
		ActiveBuckets: len(l.entries),
		TotalCapacity: l.capacity,
		RefillRate:    l.refillRate,
	}
}
