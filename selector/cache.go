package selector

import "sync"

// Cache is a concurrency-safe compile-once cache keyed by selector string.
// Compiled selectors are immutable, so a cached value may be shared freely
// across documents and goroutines.
type Cache struct {
	mu sync.RWMutex
	m  map[string]*Selector
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{m: make(map[string]*Selector)}
}

// Get returns the compiled form of src, compiling and storing it on first
// use. Compile errors are not cached; a malformed selector fails on every
// call.
func (c *Cache) Get(src string) (*Selector, error) {
	c.mu.RLock()
	sel, ok := c.m[src]
	c.mu.RUnlock()
	if ok {
		return sel, nil
	}
	compiled, err := Compile(src)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	if existing, ok := c.m[src]; ok {
		compiled = existing
	} else {
		c.m[src] = compiled
	}
	c.mu.Unlock()
	return compiled, nil
}

// Len returns the number of cached selectors.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
