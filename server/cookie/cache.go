// Package cookie implements the server-side session cookie cache: a
// generic key -> single-holder-at-a-time value store with throttled
// eviction of entries idle past a configured threshold. Grounded on
// original_source/include/erebus-srv/cookies.hxx.
package cookie

import (
	"sync"
	"sync/atomic"
	"time"
)

// Cache maps keys of type K to exclusively-held cookies of type V. Only
// one goroutine may hold a given key's cookie at a time; a second
// concurrent Allocate for the same key returns a zero Ref until the first
// holder releases it.
type Cache[K comparable, V any] struct {
	inactivityThreshold time.Duration

	mu             sync.RWMutex
	prevStaleCheck time.Time
	cookies        map[K]*wrapper[V]
}

type wrapper[V any] struct {
	cookie  V
	refs    int32
	touched atomic.Int64 // UnixNano
}

// Ref is a held lease on a cookie. The zero Ref holds nothing; check Ok
// before calling Get. Release must be called exactly once for every Ref
// for which Ok is true.
type Ref[V any] struct {
	w *wrapper[V]
}

// Ok reports whether this Ref actually holds a cookie.
func (r Ref[V]) Ok() bool { return r.w != nil }

// Get returns a pointer to the held cookie value. Panics if !r.Ok().
func (r Ref[V]) Get() *V {
	if r.w == nil {
		panic("cookie: Get on an empty Ref")
	}
	return &r.w.cookie
}

// Release returns the held cookie to the cache, touching its last-used
// time so it survives the next eviction sweep. Releasing an empty Ref is
// a no-op.
func (r Ref[V]) Release() {
	if r.w == nil {
		return
	}
	r.w.touched.Store(time.Now().UnixNano())
	atomic.AddInt32(&r.w.refs, -1)
}

// NewCache constructs a Cache that evicts cookies idle for longer than
// inactivityThreshold, sweeping no more than once per threshold interval.
func NewCache[K comparable, V any](inactivityThreshold time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		inactivityThreshold: inactivityThreshold,
		prevStaleCheck:      time.Now(),
		cookies:             make(map[K]*wrapper[V]),
	}
}

// tryLock attempts to claim exclusive access to w via a CAS on its
// reference count, optionally touching its last-used time on success.
func tryLock[V any](w *wrapper[V], touch bool) Ref[V] {
	if atomic.CompareAndSwapInt32(&w.refs, 0, 1) {
		if touch {
			w.touched.Store(time.Now().UnixNano())
		}
		return Ref[V]{w: w}
	}
	return Ref[V]{}
}

// Allocate returns an exclusive Ref to the cookie for key, creating one if
// it does not exist yet. If the key is already held by another caller,
// the returned Ref's Ok() is false.
func (c *Cache[K, V]) Allocate(key K) Ref[V] {
	// fast path: key already present, no structural change to the map.
	c.mu.RLock()
	if w, ok := c.cookies[key]; ok {
		ref := tryLock(w, true)
		c.mu.RUnlock()
		return ref
	}
	c.mu.RUnlock()

	// slow path: possible insert, possible eviction sweep.
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.prevStaleCheck.Add(c.inactivityThreshold).Before(now) {
		for k, w := range c.cookies {
			if k == key {
				continue
			}
			locked := tryLock(w, false)
			if locked.Ok() {
				touchedAt := time.Unix(0, w.touched.Load())
				if touchedAt.Add(c.inactivityThreshold).Before(now) {
					delete(c.cookies, k)
					continue
				}
				locked.Release()
			}
		}
		c.prevStaleCheck = now
	}

	// the key may have been inserted by another goroutine between the
	// fast path and acquiring the write lock.
	if w, ok := c.cookies[key]; ok {
		return tryLock(w, true)
	}

	w := &wrapper[V]{}
	w.touched.Store(now.UnixNano())
	c.cookies[key] = w
	// a freshly inserted cookie is touched like a reused one: it has
	// just become the most-recently-used entry either way.
	return tryLock(w, true)
}

// Len returns the number of cookies currently tracked, held or not.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cookies)
}
