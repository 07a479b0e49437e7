package cache

import "time"

// Len returns number of stored items, including expired ones not yet reaped.
// Uses read lock since it only reads the map length
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns value if present and not expired.
// Takes the write lock since an expired entry is removed on access.
func (c *TTLCache[V]) Get(key string) (value V, ok bool) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}

	if isExpired(e, now) {
		delete(c.items, key)
		return zero, false
	}
	return e.value, true
}

// Keys returns a snapshot of the keys, expired ones included, in no particular order.
func (c *TTLCache[V]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.items))
	for k := range c.items {
		out = append(out, k)
	}
	return out
}

// Stats counts entries at the time of the call. Nothing is evicted.
func (c *TTLCache[V]) Stats() Stats {
	now := c.clock.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{Total: len(c.items)}
	for _, e := range c.items {
		if isExpired(e, now) {
			s.Expired++
		}
	}
	s.Active = s.Total - s.Expired
	return s
}

// Delete removes the key from the cache. Deleting an absent key is a no-op.
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	_, ok := c.items[key]
	delete(c.items, key)
	c.mu.Unlock()

	if ok {
		c.logger.Debug("cache delete", "key", key)
	}
}

// Clear drops every entry.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	n := len(c.items)
	c.items = make(map[string]*entry[V])
	c.mu.Unlock()

	c.logger.Info("cache cleared", "removed", n)
}

// Set stores value using the default TTL
func (c *TTLCache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value with a specific ttl, replacing any previous value and expiry.
// A non-positive ttl means the default TTL. Panics on an empty key.
func (c *TTLCache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if key == "" {
		panic("cache: empty key")
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	expiresAt := c.clock.Now().Add(ttl)

	c.mu.Lock()
	c.items[key] = &entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()

	c.logger.Debug("cache set", "key", key, "ttl", ttl)
}

// Cleanup removes every expired entry and returns how many were removed.
func (c *TTLCache[V]) Cleanup() int {
	now := c.clock.Now()

	c.mu.Lock()
	removed := 0
	for k, e := range c.items {
		if isExpired(e, now) {
			delete(c.items, k)
			removed++
		}
	}
	remaining := len(c.items)
	c.mu.Unlock()

	c.logger.Debug("cache cleanup", "removed", removed, "remaining", remaining)
	return removed
}

// isExpired reports whether the entry's expiry is at or before now.
func isExpired[V any](e *entry[V], now time.Time) bool {
	return !e.expiresAt.After(now)
}

// CRONJOB

// Close stops the cleanup daemon if running.
func (c *TTLCache[V]) Close() {
	c.StopCleanupDaemon()
}

// StartCleanupDaemon starts a background goroutine that calls Cleanup every
// cleanup interval. Calling it while the daemon runs is a no-op.
func (c *TTLCache[V]) StartCleanupDaemon() {
	c.mu.Lock()
	if c.cleanupRunning {
		c.mu.Unlock()
		return
	}
	c.cleanupRunning = true
	stop := make(chan struct{})
	done := make(chan struct{})
	c.cleanupStop, c.cleanupDone = stop, done

	// The ticker is created before the goroutine so a mocked clock sees it immediately.
	ticker := c.clock.Ticker(c.cleanupInterval)
	c.mu.Unlock()

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-stop:
				return
			}
		}
	}()

	c.logger.Info("cache cleanup daemon started", "interval", c.cleanupInterval)
}

// StopCleanupDaemon stops the daemon and waits for it to exit. Safe to call repeatedly.
func (c *TTLCache[V]) StopCleanupDaemon() {
	c.mu.Lock()
	if !c.cleanupRunning {
		c.mu.Unlock()
		return
	}
	c.cleanupRunning = false
	stop, done := c.cleanupStop, c.cleanupDone
	c.mu.Unlock()

	close(stop)
	<-done

	c.logger.Info("cache cleanup daemon stopped")
}
