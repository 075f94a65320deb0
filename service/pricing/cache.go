package pricing

import (
	"sync"
	"time"
)

// priceCache memoizes resolved prices so repeated lookups across a scan, and
// across scans in long-lived servers, skip the table walk.
type priceCache struct {
	data  map[string]*cacheEntry
	ttl   time.Duration
	mutex sync.RWMutex
}

type cacheEntry struct {
	price     float64
	expiresAt time.Time
}

func newPriceCache(ttl time.Duration) *priceCache {
	return &priceCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
}

func (c *priceCache) get(key string) (float64, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists || time.Now().After(entry.expiresAt) {
		return 0, false
	}
	return entry.price, true
}

func (c *priceCache) set(key string, price float64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &cacheEntry{
		price:     price,
		expiresAt: time.Now().Add(c.ttl),
	}
}
