package cache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const defaultTTL = 5 * time.Minute
const defaultCleanupInterval = 1 * time.Minute

var _ Cache[any] = (*TTLCache[any])(nil)

// Option is a functional option for building a TTLCache
type Option[V any] func(*TTLCache[V])

// entry stored in the items map
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a map backed cache with per-entry expiry, lazy eviction on Get
// and an optional periodic cleanup daemon.
type TTLCache[V any] struct {
	mu    sync.RWMutex
	items map[string]*entry[V]

	defaultTTL      time.Duration
	cleanupInterval time.Duration
	clock           clock.Clock
	logger          Logger

	startDaemon    bool
	cleanupRunning bool
	cleanupStop    chan struct{}
	cleanupDone    chan struct{}
}

// WithDefaultTTL sets the TTL used by Set() and by SetWithTTL() when given a non-positive ttl.
func WithDefaultTTL[V any](ttl time.Duration) Option[V] {
	return func(c *TTLCache[V]) {
		if ttl > 0 {
			c.defaultTTL = ttl
		} else {
			panic("default TTL must be > 0")
		}
	}
}

// WithCleanupInterval configures how often the cleanup daemon sweeps expired entries.
func WithCleanupInterval[V any](interval time.Duration) Option[V] {
	return func(c *TTLCache[V]) {
		if interval > 0 {
			c.cleanupInterval = interval
		} else {
			panic("cleanup interval must be > 0")
		}
	}
}

// WithCleanupStart configures whether to start the cleanup daemon on cache creation.
func WithCleanupStart[V any](start bool) Option[V] {
	return func(c *TTLCache[V]) {
		c.startDaemon = start
	}
}

// WithLogger sets the diagnostics sink. A nil logger disables diagnostics.
func WithLogger[V any](logger Logger) Option[V] {
	return func(c *TTLCache[V]) {
		if logger == nil {
			logger = nopLogger{}
		}
		c.logger = logger
	}
}

// WithClock replaces the wall clock, mostly for tests with clock.NewMock().
func WithClock[V any](clk clock.Clock) Option[V] {
	return func(c *TTLCache[V]) {
		if clk == nil {
			clk = clock.New()
		}
		c.clock = clk
	}
}

// New creates an empty TTLCache. Unless disabled with WithCleanupStart(false)
// the cleanup daemon is started; stop it with Close.
func New[V any](opts ...Option[V]) *TTLCache[V] {
	c := &TTLCache[V]{
		items:           make(map[string]*entry[V]),
		defaultTTL:      defaultTTL,
		cleanupInterval: defaultCleanupInterval,
		clock:           clock.New(),
		logger:          nopLogger{},
		startDaemon:     true,
	}

	for _, o := range opts {
		o(c)
	}

	if c.startDaemon {
		c.StartCleanupDaemon()
	}
	return c
}

// DefaultTTL returns the TTL applied by Set.
func (c *TTLCache[V]) DefaultTTL() time.Duration {
	return c.defaultTTL
}
