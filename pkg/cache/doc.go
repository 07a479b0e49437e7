// Package cache provides the in-process TTL cache shared by the billing
// application's handlers and settings lookups.
//
// Entries expire after a per-entry TTL (five minutes unless configured).
// Expired entries are never returned by Get; they are removed lazily when
// read and in bulk by a cleanup daemon running on a fixed interval.
// Values are stored by reference.
package cache
