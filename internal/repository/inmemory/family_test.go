package inmemory

import (
	"testing"
	"time"

	familydomain "family-talk-go/internal/domain/family"
)

func TestFamilyCacheExpiry(t *testing.T) {
	cache := NewFamilyCache()
	cache.Set("ABC123", &familydomain.Family{Key: "ABC123", Name: "Fam"}, 10*time.Millisecond)

	if got, ok := cache.Get("ABC123"); !ok || got.Name != "Fam" {
		t.Fatalf("expected fresh entry, got %+v ok=%v", got, ok)
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := cache.Get("ABC123"); ok {
		t.Fatalf("expected entry expired")
	}
}

func TestFamilyCacheDelete(t *testing.T) {
	cache := NewFamilyCache()
	cache.Set("ABC123", &familydomain.Family{Key: "ABC123"}, time.Minute)
	cache.Delete("ABC123")
	if _, ok := cache.Get("ABC123"); ok {
		t.Fatalf("expected entry removed")
	}
}

func TestFamilyCacheIgnoresNonPositiveTTL(t *testing.T) {
	cache := NewFamilyCache()
	cache.Set("ABC123", &familydomain.Family{Key: "ABC123"}, 0)
	if _, ok := cache.Get("ABC123"); ok {
		t.Fatalf("expected zero-TTL set to be a no-op")
	}
}
