package service

import (
	"sync"
	"testing"
)

func TestRateLimiterRegistry(t *testing.T) {
	registry := NewRateLimiterRegistry(0.001, 2)

	if !registry.Allow("10.0.0.1") || !registry.Allow("10.0.0.1") {
		t.Fatal("burst should allow two events")
	}
	if registry.Allow("10.0.0.1") {
		t.Error("third event should be limited")
	}
	if !registry.Allow("10.0.0.2") {
		t.Error("other keys have their own bucket")
	}
	if registry.Len() != 2 {
		t.Errorf("Len() = %d, want 2", registry.Len())
	}

	registry.Remove("10.0.0.1")
	if !registry.Allow("10.0.0.1") {
		t.Error("removed key should start with a full bucket")
	}
}

func TestRateLimiterRegistry_SameLimiter(t *testing.T) {
	registry := NewRateLimiterRegistry(1, 0)

	var wg sync.WaitGroup
	got := make(chan any, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got <- registry.GetOrCreate("k")
		}()
	}
	wg.Wait()
	close(got)

	first := registry.GetOrCreate("k")
	for l := range got {
		if l != any(first) {
			t.Fatal("concurrent GetOrCreate returned different limiters")
		}
	}
	if first.Burst() != 1 {
		t.Errorf("Burst() = %d, want 1", first.Burst())
	}
}
