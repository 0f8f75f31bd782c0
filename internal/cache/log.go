// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// log.go records cache invalidation events for audit and debugging.
// Each entry captures what was invalidated, when, and why. The log is a
// bounded in-memory ring: old entries fall off, nothing is persisted.
package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// logCapacity bounds how many invalidation events are retained.
const logCapacity = 200

// Event is a single cache invalidation record.
type Event struct {
	ID     uuid.UUID `json:"id"`
	Entity string    `json:"entity"` // "product", "category", ...
	Key    string    `json:"key"`    // record key, e.g. "mechs/zeta-figure"
	Action string    `json:"action"` // "save", "delete", "invalidate-all"
	At     time.Time `json:"at"`
}

// Log is a mutex-guarded ring of recent invalidation events.
type Log struct {
	mu     sync.Mutex
	events []Event
	cap    int
}

func newLog(capacity int) *Log {
	return &Log{cap: capacity}
}

// record appends an event, evicting the oldest when the ring is full.
func (l *Log) record(entity, key, action string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, Event{
		ID:     uuid.New(),
		Entity: entity,
		Key:    key,
		Action: action,
		At:     time.Now(),
	})
	if len(l.events) > l.cap {
		l.events = l.events[len(l.events)-l.cap:]
	}

	slog.Debug("cache invalidation logged", "entity", entity, "key", key, "action", action)
}

// recent returns up to limit events, newest first.
func (l *Log) recent(limit int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > len(l.events) {
		limit = len(l.events)
	}
	out := make([]Event, 0, limit)
	for i := len(l.events) - 1; i >= len(l.events)-limit; i-- {
		out = append(out, l.events[i])
	}
	return out
}
