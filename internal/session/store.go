// Package session holds the per-session state the cart lives in: an opaque
// key-value bag per session id, plus a per-session lock registry used to
// serialize mutations and in-flight checkouts for one session.
package session

import "sync"

// Store is an opaque per-session key-value bag. Lifetime and expiry of a
// session are managed by the caller; dropping the bag discards its keys.
type Store interface {
	Get(sid, key string) (any, bool)
	Put(sid, key string, v any)
	Delete(sid, key string)
	Drop(sid string)
}

type MemoryStore struct {
	mu   sync.RWMutex
	bags map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bags: make(map[string]map[string]any)}
}

func (s *MemoryStore) Get(sid, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bag, ok := s.bags[sid]
	if !ok {
		return nil, false
	}
	v, ok := bag[key]
	return v, ok
}

func (s *MemoryStore) Put(sid, key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bag, ok := s.bags[sid]
	if !ok {
		bag = make(map[string]any)
		s.bags[sid] = bag
	}
	bag[key] = v
}

func (s *MemoryStore) Delete(sid, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bag, ok := s.bags[sid]; ok {
		delete(bag, key)
		if len(bag) == 0 {
			delete(s.bags, sid)
		}
	}
}

func (s *MemoryStore) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bags, sid)
}
