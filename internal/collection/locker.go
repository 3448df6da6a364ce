package collection

import "sync"

// pairLocker hands out one mutex per (userID, collection) pair. Mutexes are
// kept for the life of the process; the key space is bounded by active
// users times collection names.
type pairLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPairLocker() *pairLocker {
	return &pairLocker{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for the pair and returns its unlock func.
func (l *pairLocker) lock(userID, collection string) func() {
	key := userID + "/" + collection

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
