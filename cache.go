package rxvm

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache holds compiled patterns keyed by pattern text, all compiled with the
// same Config. Concurrent requests for a pattern that is not yet cached
// share one compilation. Failed compilations are not cached.
//
// A Cache is safe for concurrent use. It never evicts.
type Cache struct {
	config Config

	mu      sync.RWMutex
	entries map[string]*Regex
	group   singleflight.Group
}

// NewCache creates an empty cache that compiles with config.
func NewCache(config Config) *Cache {
	return &Cache{
		config:  config,
		entries: make(map[string]*Regex),
	}
}

// Get returns the compiled form of pattern, compiling it on first use.
func (c *Cache) Get(pattern string) (*Regex, error) {
	c.mu.RLock()
	re, ok := c.entries[pattern]
	c.mu.RUnlock()
	if ok {
		return re, nil
	}

	v, err, _ := c.group.Do(pattern, func() (any, error) {
		c.mu.RLock()
		re, ok := c.entries[pattern]
		c.mu.RUnlock()
		if ok {
			return re, nil
		}

		re, err := CompileWithConfig(pattern, c.config)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[pattern] = re
		c.mu.Unlock()
		return re, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Regex), nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
