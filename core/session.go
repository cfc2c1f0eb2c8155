package core

import (
	"sync"
	"time"
)

// SessionRecord is the minimal "session exists" record correlating requests
// that share a session id. It carries open key/value data for callers that
// want to attach state to a session; conversation content lives in the
// SessionMemory layer, never here. Safe for concurrent access.
type SessionRecord struct {
	ID      string         `json:"id"`
	Data    map[string]any `json:"data"`
	Created time.Time      `json:"created"`
	Updated time.Time      `json:"updated"`
	mu      sync.RWMutex
}

// NewSessionRecord creates a fresh record for the given session id.
func NewSessionRecord(id string) *SessionRecord {
	now := time.Now()
	return &SessionRecord{ID: id, Data: map[string]any{}, Created: now, Updated: now}
}

// Get returns the value and existence flag for a data key.
func (s *SessionRecord) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.Data[key]
	return v, ok
}

// Set stores a key/value pair updating the Updated timestamp.
func (s *SessionRecord) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Data[key] = value
	s.Updated = time.Now()
}

// SessionStore ensures session identifiers map to live session records.
//
// Stores are identity-only: a record is created on first reference and lives
// for the process lifetime unless explicitly cleared. There is currently no
// automatic eviction, so long-running processes accumulate identity records
// for every session id ever seen.
type SessionStore interface {
	// Get returns the record for the id, creating it if needed.
	Get(id string) (*SessionRecord, error)

	// Clear removes the record (e.g. on logout or explicit reset). Clearing
	// an unknown id is a no-op.
	Clear(id string) error
}
