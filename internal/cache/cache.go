// Package cache provides a bounded, recency-ordered in-memory cache with
// get-or-create semantics.
package cache

import (
	"container/list"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/deusflow/newshub/internal/logger"
)

const DefaultMaxSize = 100

var ErrNilProducer = errors.New("cache: nil producer")

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
}

type entry[V any] struct {
	key   string
	value V
}

// Cache maps string keys to values of type V. When an insert pushes the size
// past maxSize the least recently used entry is dropped. The zero value is not
// usable; construct with New.
type Cache[V any] struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List // front = most recently used
	items   map[string]*list.Element

	flight singleflight.Group

	hits      int64
	misses    int64
	evictions int64
}

// New returns an empty cache holding at most maxSize entries.
// A non-positive maxSize falls back to DefaultMaxSize.
func New[V any](maxSize int) *Cache[V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	logger.Info("Cache initialized", "max_size", maxSize)
	return &Cache[V]{
		maxSize: maxSize,
		order:   list.New(),
		items:   make(map[string]*list.Element),
	}
}

// Get returns the value stored under key, promoting it to most recently used.
// On a miss create is called, its result stored and, if the cache grew past its
// bound, the least recently used entry evicted. Concurrent misses for the same
// key share one call to create. Errors from create are returned and nothing is
// stored.
func (c *Cache[V]) Get(key string, create func() (V, error)) (V, error) {
	if v, ok := c.lookup(key); ok {
		logger.Debug("Cache hit", "key", key)
		return v, nil
	}
	if create == nil {
		var zero V
		return zero, ErrNilProducer
	}

	res, err, shared := c.flight.Do(key, func() (interface{}, error) {
		// A previous flight for this key may have finished between lookup and Do.
		if v, ok := c.peek(key); ok {
			return v, nil
		}

		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		logger.Debug("Cache miss, creating entry", "key", key)

		v, err := create()
		if err != nil {
			return nil, fmt.Errorf("create value for %q: %w", key, err)
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	if shared {
		logger.Debug("Cache miss joined in-flight creation", "key", key)
	}
	return res.(V), nil
}

// Peek returns the value under key without changing its recency.
func (c *Cache[V]) Peek(key string) (V, bool) {
	return c.peek(key)
}

// Len reports the number of resident entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys lists resident keys from most to least recently used.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[V]).key)
	}
	return keys
}

func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:      c.order.Len(),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	c.hits++
	return el.Value.(*entry[V]).value, true
}

func (c *Cache[V]) peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(*entry[V]).value, true
}

func (c *Cache[V]) store(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[V]).value = v
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: v})
	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		evicted := oldest.Value.(*entry[V]).key
		delete(c.items, evicted)
		c.evictions++
		logger.Warn("Cache full, removed oldest entry", "key", evicted)
	}
}
