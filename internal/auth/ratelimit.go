// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"sync"
	"time"
)

// Default limiter settings: five failed attempts inside a fifteen
// minute window locks the client out for the same duration.
const (
	DefaultMaxAttempts     = 5
	DefaultLockoutDuration = 15 * time.Minute
)

// attemptRecord tracks failed logins for one client identity.
type attemptRecord struct {
	count       int
	windowStart time.Time
	lockedUntil time.Time
}

// LoginLimiter throttles repeated failed logins per client identity
// (normally the client IP). State is in-memory only and serialized by
// a single lock; it does not survive restarts and does not coordinate
// across processes.
type LoginLimiter struct {
	mu          sync.Mutex
	records     map[string]*attemptRecord
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

// NewLoginLimiter creates a limiter that locks an identity out for
// lockout after maxAttempts failures within the same span.
func NewLoginLimiter(maxAttempts int, lockout time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if lockout <= 0 {
		lockout = DefaultLockoutDuration
	}
	return &LoginLimiter{
		records:     make(map[string]*attemptRecord),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// IsLocked reports whether id is currently locked out. An expired
// lockout is cleared here, together with its failure count; there is
// no background sweep.
func (l *LoginLimiter) IsLocked(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[id]
	if !ok || rec.lockedUntil.IsZero() {
		return false
	}
	if l.now().Before(rec.lockedUntil) {
		return true
	}
	delete(l.records, id)
	return false
}

// RecordFailure registers a failed login for id and reports whether
// this call tripped a new lockout. A failure after the window has
// elapsed starts a fresh count.
func (l *LoginLimiter) RecordFailure(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[id]
	if !ok || now.Sub(rec.windowStart) > l.lockout {
		l.records[id] = &attemptRecord{count: 1, windowStart: now}
		return false
	}

	rec.count++
	if rec.count >= l.maxAttempts && rec.lockedUntil.IsZero() {
		rec.lockedUntil = now.Add(l.lockout)
		return true
	}
	return false
}

// Clear drops all limiter state for id. Called after a successful
// login.
func (l *LoginLimiter) Clear(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.records, id)
}

// RemainingLockout returns how long id stays locked out, or zero when
// it is not locked.
func (l *LoginLimiter) RemainingLockout(id string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[id]
	if !ok || rec.lockedUntil.IsZero() {
		return 0
	}
	if rem := rec.lockedUntil.Sub(l.now()); rem > 0 {
		return rem
	}
	return 0
}
