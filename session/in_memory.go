package session

import (
	"sync"

	"github.com/capmesh/capmesh/core"
)

// InMemoryStore is a volatile SessionStore implementation keeping session
// identity records in a process local map. It is safe for concurrent access.
//
// Records are created lazily on first Get and never evicted automatically, so
// a long-running process accumulates one record per session id ever seen.
// Len exposes the current count so operators can observe that growth; Clear
// removes individual records.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.SessionRecord
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.SessionRecord)}
}

// Get returns the record for the id, creating it if it does not exist. The
// live record is returned (not a clone): identity records are meant to be
// shared and guard their own data with an internal lock.
func (s *InMemoryStore) Get(id string) (*core.SessionRecord, error) {
	s.mu.RLock()
	if record, ok := s.sessions[id]; ok {
		s.mu.RUnlock()
		return record, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.sessions[id]; ok {
		return record, nil
	}
	record := core.NewSessionRecord(id)
	s.sessions[id] = record
	return record, nil
}

// Clear removes the record for the id. Clearing an unknown id is a no-op.
func (s *InMemoryStore) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live session records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
