// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestStoreGetSetInvalidate(t *testing.T) {
	s := NewStore("test")

	if _, ok := s.Get("missing"); ok {
		t.Error("expected miss on empty store")
	}

	s.Set("a", 1)
	s.Set("b", "two")

	if v, ok := s.Get("a"); !ok || v.(int) != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	// Selective invalidation removes only the named key.
	s.Invalidate("a")
	if _, ok := s.Get("a"); ok {
		t.Error("expected miss after Invalidate(a)")
	}
	if _, ok := s.Get("b"); !ok {
		t.Error("b should survive Invalidate(a)")
	}

	// No-arg invalidation clears everything.
	s.Invalidate()
	if s.Len() != 0 {
		t.Errorf("Len after clear = %d, want 0", s.Len())
	}

	// Clearing an empty store and unknown keys must be harmless.
	s.Invalidate()
	s.Invalidate("never-set")
}

func TestServiceFlushClearsBothStores(t *testing.T) {
	svc := NewService()
	svc.Query.Set("products:all", []string{"x"})
	svc.Rendered.Set("product:mechs/zeta", "<p>html</p>")

	svc.Flush("product", "mechs/zeta", "save")

	if svc.Query.Len() != 0 {
		t.Error("query cache not cleared by Flush")
	}
	if svc.Rendered.Len() != 0 {
		t.Error("rendered cache not cleared by Flush")
	}

	events := svc.RecentInvalidations(10)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Entity != "product" || events[0].Key != "mechs/zeta" || events[0].Action != "save" {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestInvalidateAllIdempotent(t *testing.T) {
	svc := NewService()
	svc.InvalidateAll()
	svc.Query.Set("k", "v")
	svc.InvalidateAll()
	svc.InvalidateAll()

	if svc.Query.Len() != 0 {
		t.Error("query cache should be empty")
	}
}

func TestLogRingEviction(t *testing.T) {
	l := newLog(3)
	for i := 0; i < 5; i++ {
		l.record("product", fmt.Sprintf("k%d", i), "save")
	}

	events := l.recent(0)
	if len(events) != 3 {
		t.Fatalf("expected 3 retained events, got %d", len(events))
	}
	// Newest first.
	if events[0].Key != "k4" || events[2].Key != "k2" {
		t.Errorf("unexpected order: %v, %v", events[0].Key, events[2].Key)
	}
}

// All store operations are mutually exclusive; hammer them from several
// goroutines so the race detector has something to chew on.
func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore("race")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%10)
				s.Set(key, n)
				s.Get(key)
				if j%25 == 0 {
					s.Invalidate()
				}
			}
		}(i)
	}
	wg.Wait()
}
