package resolver

import "sync"

// maxCacheEntries bounds the parsed-import-bindings cache per the core's
// resource model: a process-local cache keyed by import text, bounded to a
// few hundred entries with oldest-entry eviction.
const maxCacheEntries = 400

type bindingsCache struct {
	mu      sync.Mutex
	entries map[string][]Binding
	order   []string
}

var bindingCache = &bindingsCache{entries: map[string][]Binding{}}

func (c *bindingsCache) get(key string) ([]Binding, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *bindingsCache) put(key string, v []Binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; exists {
		c.entries[key] = v
		return
	}
	if len(c.order) >= maxCacheEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = v
	c.order = append(c.order, key)
}

// ClearCache empties the parsed-import-bindings cache. Exposed for the
// core's test-facing clear_caches hook and for long-running hosts (watch
// mode) that want deterministic memory between batches.
func ClearCache() {
	bindingCache.mu.Lock()
	defer bindingCache.mu.Unlock()
	bindingCache.entries = map[string][]Binding{}
	bindingCache.order = nil
}
