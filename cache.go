package meadow

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// CacheConfig describes one resource kind for NewCache.
type CacheConfig[K comparable, T any] struct {
	// Kind names the resource kind in log output ("texture", "font", ...).
	Kind string
	// Load produces a new resource for key. Required.
	Load func(key K) (T, error)
	// Dispose releases a resource that the cache evicts. Optional.
	Dispose func(T)
	// Validate rejects a key before any load is attempted. Optional.
	Validate func(key K) error
}

// Cache is a keyed store of loaded resources with lazy get-or-load and
// explicit eviction. The cache exclusively owns every entry: Dispose runs
// exactly once per loaded value, at Unload, Clear or Close.
//
// Values returned by Get and Load are borrowed. They stay valid until the
// entry is evicted by Unload, Clear or Close and must not be disposed by
// the caller; re-request them each frame instead of holding on to them.
//
// Cache is not safe for concurrent use.
type Cache[K comparable, T any] struct {
	kind     string
	load     func(K) (T, error)
	dispose  func(T)
	validate func(K) error
	entries  map[K]T
	closed   bool
}

// NewCache creates an empty cache. A nil Load function is a construction
// failure.
func NewCache[K comparable, T any](cfg CacheConfig[K, T]) (*Cache[K, T], error) {
	if cfg.Load == nil {
		return nil, fmt.Errorf("meadow: %s cache: nil loader: %w", cfg.Kind, ErrNilDependency)
	}
	kind := cfg.Kind
	if kind == "" {
		kind = "resource"
	}
	logger.WithField("kind", kind).Trace("cache constructed")
	return &Cache[K, T]{
		kind:     kind,
		load:     cfg.Load,
		dispose:  cfg.Dispose,
		validate: cfg.Validate,
		entries:  make(map[K]T),
	}, nil
}

func (c *Cache[K, T]) log(key K) *logrus.Entry {
	return logger.WithFields(logrus.Fields{"kind": c.kind, "key": key})
}

// Get returns the cached resource for key, loading it on first use.
// A failed load is not cached: the next Get retries.
func (c *Cache[K, T]) Get(key K) (T, error) {
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	if !c.closed {
		c.log(key).Warn("not found in cache, attempting to load")
	}
	return c.loadMiss(key)
}

// Load behaves like Get. It logs cache hits, which makes it the call to use
// when preloading.
func (c *Cache[K, T]) Load(key K) (T, error) {
	if v, ok := c.entries[key]; ok {
		c.log(key).Debug("already loaded, returning cached value")
		return v, nil
	}
	return c.loadMiss(key)
}

func (c *Cache[K, T]) loadMiss(key K) (T, error) {
	var zero T
	if c.closed {
		return zero, fmt.Errorf("meadow: %s %v: %w", c.kind, key, ErrCacheClosed)
	}
	if c.validate != nil {
		if err := c.validate(key); err != nil {
			c.log(key).WithError(err).Error("rejected before load")
			return zero, err
		}
	}

	c.log(key).Debug("loading")
	v, err := c.load(key)
	if err != nil {
		c.log(key).WithError(err).Error("failed to load")
		return zero, fmt.Errorf("meadow: load %s %v: %w: %w", c.kind, key, ErrLoadFailed, err)
	}
	c.entries[key] = v
	c.log(key).Debug("loaded and cached")
	return v, nil
}

// Unload evicts and disposes the entry for key. Unloading a key that is
// not loaded is a logged no-op.
func (c *Cache[K, T]) Unload(key K) {
	v, ok := c.entries[key]
	if !ok {
		c.log(key).Warn("attempted to unload a resource that is not loaded")
		return
	}
	delete(c.entries, key)
	c.log(key).Debug("unloading")
	c.release(v)
}

// Clear evicts and disposes every entry.
func (c *Cache[K, T]) Clear() {
	if len(c.entries) == 0 {
		return
	}
	logger.WithFields(logrus.Fields{"kind": c.kind, "count": len(c.entries)}).Debug("clearing cache")
	entries := c.entries
	c.entries = make(map[K]T)
	for _, v := range entries {
		c.release(v)
	}
}

// Close clears the cache and refuses further loads. Safe to call more
// than once.
func (c *Cache[K, T]) Close() {
	if c.closed {
		return
	}
	c.Clear()
	c.closed = true
	logger.WithField("kind", c.kind).Trace("cache closed")
}

func (c *Cache[K, T]) release(v T) {
	if c.dispose != nil {
		c.dispose(v)
	}
}

// Len returns the number of loaded entries.
func (c *Cache[K, T]) Len() int {
	return len(c.entries)
}

// Contains reports whether key is loaded. It never triggers a load.
func (c *Cache[K, T]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Keys returns the loaded keys in unspecified order.
func (c *Cache[K, T]) Keys() []K {
	keys := make([]K, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Kind returns the resource kind the cache was created with.
func (c *Cache[K, T]) Kind() string {
	return c.kind
}
