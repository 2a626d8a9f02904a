// Package locker provides a keyed mutex. All cart mutations and order
// placement for one user funnel through the user's lock, so read-then-write
// sequences against storage never interleave for the same identity.
package locker

import "sync"

type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uint]*entry)}
}

func (k *KeyedMutex) Lock(key uint) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()
	e.mu.Lock()
}

// Unlock must pair with a prior Lock for the same key. The entry is dropped
// once no goroutine holds or waits on it.
func (k *KeyedMutex) Unlock(key uint) {
	k.mu.Lock()
	e := k.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
	e.mu.Unlock()
}
