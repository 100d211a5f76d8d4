package family

import "time"

// Cache holds resolved families by normalized key. Lookups on the message
// and schedule read paths hit the same handful of keys on every poll, so
// even a short TTL takes most of that load off the database.
type Cache interface {
	Get(key string) (*Family, bool)
	Set(key string, family *Family, ttl time.Duration)
	Delete(key string)
}

type noopCache struct{}

func (noopCache) Get(string) (*Family, bool)         { return nil, false }
func (noopCache) Set(string, *Family, time.Duration) {}
func (noopCache) Delete(string)                      {}
