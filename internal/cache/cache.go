// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides the two in-process caches behind the catalog: a
// query cache for materialized directory-scan results and a rendered-output
// cache for markdown rendered to HTML. Entries have no TTL; staleness is
// prevented only by the explicit invalidation calls on every write path.
// Both stores are local to one running process.
package cache

import (
	"log/slog"
	"sync"
)

// Store is a concurrency-safe key/value cache with manual invalidation.
// One lock guards the whole store; the workload is read-heavy with
// infrequent administrator-triggered writes, so lock granularity is not
// a bottleneck.
type Store struct {
	name    string
	mu      sync.RWMutex
	entries map[string]any
}

// NewStore creates an empty cache store. The name only labels log lines.
func NewStore(name string) *Store {
	return &Store{
		name:    name,
		entries: make(map[string]any),
	}
}

// Get retrieves a cached value. The second return reports a hit.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores a value under key, replacing any previous entry.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	slog.Debug("cache set", "store", s.name, "key", key, "size", len(s.entries))
}

// Invalidate removes the given keys, or clears the entire store when
// called with no keys. Safe to call at any time, including on keys that
// were never set.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(keys) == 0 {
		s.entries = make(map[string]any)
		slog.Debug("cache cleared", "store", s.name)
		return
	}
	for _, k := range keys {
		delete(s.entries, k)
	}
	slog.Debug("cache invalidated", "store", s.name, "keys", keys)
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Service bundles the query cache and the rendered-output cache and is
// injected into every repository. Any write to persisted content must go
// through Flush so that both stores drop every entry that could have been
// derived from the old state. The system deliberately over-invalidates:
// full clears on any write are cheaper to reason about than dependency
// tracking, and repopulation is one directory scan away.
type Service struct {
	Query    *Store
	Rendered *Store
	log      *Log
}

// NewService creates the cache service with both stores empty.
func NewService() *Service {
	return &Service{
		Query:    NewStore("query"),
		Rendered: NewStore("rendered"),
		log:      newLog(logCapacity),
	}
}

// Flush clears both caches and records the triggering mutation in the
// invalidation log. Repositories call it after every successful save or
// delete, before returning to the caller.
func (s *Service) Flush(entity, key, action string) {
	s.Query.Invalidate()
	s.Rendered.Invalidate()
	s.log.record(entity, key, action)
}

// InvalidateAll clears both caches. Exposed to administrative callers and
// idempotent: clearing an empty cache is a no-op.
func (s *Service) InvalidateAll() {
	s.Flush("cache", "*", "invalidate-all")
}

// RecentInvalidations returns the most recent invalidation events,
// newest first, up to limit.
func (s *Service) RecentInvalidations(limit int) []Event {
	return s.log.recent(limit)
}
