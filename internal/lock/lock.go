// Package lock provides per-key mutual exclusion. The server holds one lock
// per room id around every room mutation, so each room is updated by a
// single logical thread of control while distinct rooms proceed in parallel.
package lock

import "sync"

// Keyed hands out one mutex per string key on demand.
// Mutexes are never reclaimed; the key space (live room ids) is small and
// bounded by the directory's idle eviction.
type Keyed struct {
	locks sync.Map // map[string]*sync.Mutex
}

// New creates an empty Keyed lock set.
func New() *Keyed {
	return &Keyed{}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *Keyed) Lock(key string) {
	mu, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never locked
// panics, same as sync.Mutex.
func (k *Keyed) Unlock(key string) {
	mu, ok := k.locks.Load(key)
	if !ok {
		panic("lock: unlock of unknown key " + key)
	}
	mu.(*sync.Mutex).Unlock()
}

// WithLock runs fn while holding the key's mutex.
func (k *Keyed) WithLock(key string, fn func() error) error {
	k.Lock(key)
	defer k.Unlock(key)
	return fn()
}
