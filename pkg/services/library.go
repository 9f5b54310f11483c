package services

import "sync/atomic"

// Library hands out the current Store. A Store never changes once built;
// reloading content swaps in a fresh one.
type Library struct {
	cur atomic.Pointer[Store]
}

func NewLibrary(store *Store) *Library {
	l := &Library{}
	l.cur.Store(store)
	return l
}

func (l *Library) Store() *Store {
	return l.cur.Load()
}

// Swap installs store and returns the one it replaced.
func (l *Library) Swap(store *Store) *Store {
	return l.cur.Swap(store)
}
