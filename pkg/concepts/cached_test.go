package concepts

import (
	"context"
	"testing"
	"time"
)

// countingResolver wraps Memory and counts how many refs reach it.
type countingResolver struct {
	inner    *Memory
	requests [][]string
}

func (c *countingResolver) LookupBatch(ctx context.Context, refs []string) (BatchResult, error) {
	c.requests = append(c.requests, append([]string(nil), refs...))
	return c.inner.LookupBatch(ctx, refs)
}

func TestCached_OnlyMissesReachInner(t *testing.T) {
	mem := NewMemory()
	mem.Add(
		Concept{UUID: "a", Display: "A", Datatype: "Numeric"},
		Concept{UUID: "b", Display: "B", Datatype: "Coded"},
	)
	counting := &countingResolver{inner: mem}
	cached := NewCached(counting)

	ctx := context.Background()
	first, err := cached.LookupBatch(ctx, []string{"a", "b", "ghost"})
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if len(first.Resolved) != 2 || len(first.Unresolved) != 1 {
		t.Fatalf("first result: %+v", first)
	}

	second, err := cached.LookupBatch(ctx, []string{"a", "b", "ghost", "c"})
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if len(second.Resolved) != 2 || len(second.Unresolved) != 2 {
		t.Fatalf("second result: %+v", second)
	}

	if len(counting.requests) != 2 {
		t.Fatalf("expected 2 inner calls, got %d", len(counting.requests))
	}
	if got := counting.requests[1]; len(got) != 1 || got[0] != "c" {
		t.Fatalf("second inner call should only carry the new miss, got %v", got)
	}
}

func TestCached_ExpiryRefetches(t *testing.T) {
	mem := NewMemory()
	mem.Add(Concept{UUID: "a", Display: "A", Datatype: "Text"})
	counting := &countingResolver{inner: mem}

	clock := time.Now()
	cached := NewCached(counting, WithTTL(time.Minute))
	cached.now = func() time.Time { return clock }

	ctx := context.Background()
	if _, err := cached.LookupBatch(ctx, []string{"a"}); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	clock = clock.Add(2 * time.Minute)
	if _, err := cached.LookupBatch(ctx, []string{"a"}); err != nil {
		t.Fatalf("lookup after expiry: %v", err)
	}
	if len(counting.requests) != 2 {
		t.Fatalf("expired entry should refetch, inner calls: %d", len(counting.requests))
	}
}

func TestCached_Clear(t *testing.T) {
	mem := NewMemory()
	mem.Add(Concept{UUID: "a", Display: "A", Datatype: "Text"})
	counting := &countingResolver{inner: mem}
	cached := NewCached(counting)

	ctx := context.Background()
	if _, err := cached.LookupBatch(ctx, []string{"a"}); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	cached.Clear()
	if _, err := cached.LookupBatch(ctx, []string{"a"}); err != nil {
		t.Fatalf("lookup after clear: %v", err)
	}
	if len(counting.requests) != 2 {
		t.Fatalf("cleared cache should refetch, inner calls: %d", len(counting.requests))
	}
}
