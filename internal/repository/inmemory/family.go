package inmemory

import (
	"sync"
	"time"

	familydomain "family-talk-go/internal/domain/family"
)

// FamilyCache is a process-local TTL cache of families by normalized key.
type FamilyCache struct {
	mu    sync.RWMutex
	items map[string]familyItem
}

type familyItem struct {
	value     familydomain.Family
	expiresAt time.Time
}

func NewFamilyCache() *FamilyCache {
	return &FamilyCache{items: make(map[string]familyItem)}
}

func (c *FamilyCache) Get(key string) (*familydomain.Family, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		if item, ok = c.items[key]; ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *FamilyCache) Set(key string, family *familydomain.Family, ttl time.Duration) {
	if family == nil || ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.items[key] = familyItem{value: *family, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *FamilyCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}
