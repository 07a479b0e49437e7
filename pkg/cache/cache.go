package cache

import "time"

// Cache is a process-local key/value store whose entries expire after a TTL.
// Returned values are handles, not copies.
type Cache[V any] interface {
	// Get returns the value for key and true if present and not expired.
	// An expired entry is removed as a side effect.
	Get(key string) (V, bool)

	// Set stores the value for key using the cache's default TTL.
	Set(key string, value V)

	// SetWithTTL stores the value for key with a custom ttl. ttl <= 0 uses the default TTL.
	SetWithTTL(key string, value V, ttl time.Duration)

	// Delete removes the key from the cache. Absent keys are ignored.
	Delete(key string)

	// Clear removes every entry.
	Clear()

	// Cleanup removes all expired entries and returns how many were removed.
	Cleanup() int

	// Stats reports entry counts without evicting anything.
	Stats() Stats

	// Keys returns a snapshot of all stored keys, expired ones included.
	Keys() []string

	// Len returns the number of stored entries, expired ones included.
	Len() int

	//// TTL Specific ////

	// StartCleanupDaemon starts a background job that periodically removes expired entries.
	StartCleanupDaemon()

	// StopCleanupDaemon stops the background job if running.
	StopCleanupDaemon()

	// Close stops the cleanup job. After Close the cache can still be used, expiry is then lazy only.
	Close()
}

// Stats is a point-in-time count of cache entries.
type Stats struct {
	Total   int `json:"total"`
	Expired int `json:"expired"`
	Active  int `json:"active"`
}
