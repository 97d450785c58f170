// Package keylock provides per-key mutual exclusion with reference-counted cleanup.
package keylock

import (
	"sync"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Locks serializes work per key. Entries are garbage collected once no
// caller holds or waits on them, so the map only grows with contention.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// New creates an empty lock set.
func New() *Locks {
	return &Locks{locks: make(map[string]*lockEntry)}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (l *Locks) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (l *Locks) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// WithLock executes fn while holding the lock for key.
func (l *Locks) WithLock(key string, fn func() error) error {
	entry := l.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		l.release(key)
	}()
	return fn()
}

// Len reports how many keys currently have holders or waiters.
func (l *Locks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
