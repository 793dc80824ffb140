package service

import (
	"fmt"
	"sync"
	"time"
)

const (
	defaultBreakerMax      = 5
	defaultBreakerCooldown = 30 * time.Second
)

// BreakerConfig bounds a backend's circuit breaker. Zero values select 5 failures and 30s.
type BreakerConfig struct {
	Max      int
	Cooldown time.Duration
}

// circuitBreaker fails calls fast once a backend has failed max times in a row.
// After cooldown one trial call is let through; its success closes the breaker and
// its failure reopens it for another cooldown.
type circuitBreaker struct {
	mu                sync.Mutex
	consecutiveErrors int
	max               int
	cooldown          time.Duration
	openedAt          time.Time
	trialInFlight     bool
	now               func() time.Time
}

func newCircuitBreaker(cfg BreakerConfig) *circuitBreaker {
	if cfg.Max <= 0 {
		cfg.Max = defaultBreakerMax
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaultBreakerCooldown
	}
	return &circuitBreaker{max: cfg.Max, cooldown: cfg.Cooldown, now: time.Now}
}

func (b *circuitBreaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.consecutiveErrors < b.max {
		return nil
	}
	if !b.trialInFlight && b.now().Sub(b.openedAt) >= b.cooldown {
		b.trialInFlight = true
		return nil
	}
	return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", b.consecutiveErrors)
}

// record reports whether err opened (or reopened) the breaker.
func (b *circuitBreaker) record(err error) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trialInFlight = false
	if err == nil {
		b.consecutiveErrors = 0
		return false
	}
	b.consecutiveErrors++
	if b.consecutiveErrors < b.max {
		return false
	}
	b.openedAt = b.now()
	return true
}
