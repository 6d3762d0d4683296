package session

import "sync"

// Locks hands out one mutex per session id. Cart mutations and checkout
// confirmation for a session share the same mutex, so at most one of them
// is in flight per session at a time.
type Locks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func NewLocks() *Locks {
	return &Locks{m: make(map[string]*sync.Mutex)}
}

func (l *Locks) For(sid string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	mu, ok := l.m[sid]
	if !ok {
		mu = &sync.Mutex{}
		l.m[sid] = mu
	}
	return mu
}
