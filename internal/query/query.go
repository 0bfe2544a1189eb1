// Package query caches the results of backend reads under tuple keys.
// Entries go stale after their stale time or when invalidated by key prefix,
// and concurrent fetches of one key share a single backend call.
package query

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrDisabledQuery is returned when a query's inputs do not allow it to run.
var ErrDisabledQuery = errors.New("query disabled")

type Key []string

func (k Key) String() string {
	return strings.Join(k, "\x1f")
}

func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

type entry struct {
	key       Key
	value     any
	gen       uint64
	fetchedAt time.Time
	stale     bool
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	seq     uint64
	group   singleflight.Group
	now     func() time.Time
	log     *logrus.Entry
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
		log:     logrus.WithField("component", "QueryCache"),
	}
}

// Fetch returns the cached value for key while it is fresh, otherwise calls fn.
// Concurrent callers of one key share a call, unless an invalidation happened
// since that call started. fn runs detached from the caller's cancellation;
// each caller stops waiting when its own ctx is done.
// Errors are returned to every waiter and never cached.
func Fetch[T any](ctx context.Context, c *Cache, key Key, staleTime time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.fresh(key, staleTime); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	id := key.String()
	c.mu.Lock()
	gen := c.seq
	c.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		result, err := fn(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.store(id, key, gen, result)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (c *Cache) store(id string, key Key, gen uint64, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// a newer generation already landed
	if e, ok := c.entries[id]; ok && e.gen > gen {
		return
	}
	c.entries[id] = &entry{
		key:       key,
		value:     value,
		gen:       gen,
		fetchedAt: c.now(),
		stale:     c.seq != gen,
	}
}

func (c *Cache) fresh(key Key, staleTime time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok || e.stale || c.now().Sub(e.fetchedAt) >= staleTime {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks every entry under prefix stale and reports how many were marked.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	n := 0
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) && !e.stale {
			e.stale = true
			n++
		}
	}
	c.log.WithFields(logrus.Fields{
		"prefix": prefix,
		"marked": n,
	}).Debug("Invalidated queries")
	return n
}

// IsStale reports whether the entry for key was invalidated. Absent keys count as stale.
func (c *Cache) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	return !ok || e.stale
}

// Peek returns the cached value for key regardless of freshness.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	return e.value, true
}
