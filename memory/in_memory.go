package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/capmesh/capmesh/core"
)

// DefaultMaxEntries bounds how many entries are kept per session. 20 entries
// is 10 user+assistant turn pairs.
const DefaultMaxEntries = 20

// Options configures the in-memory session memory.
type Options struct {
	// MaxEntries is the hard per-session cap. Once exceeded, the oldest
	// entries are dropped FIFO. Values <= 0 fall back to DefaultMaxEntries.
	MaxEntries int
}

// InMemoryStore is a process-local SessionMemory holding one entry slice per
// session id. All state is lost on restart.
//
// Concurrency: a single mutex serializes appends and reads, satisfying the
// per-session serialization contract (entries are additive, never lost).
type InMemoryStore struct {
	mu         sync.Mutex
	maxEntries int
	sessions   map[string][]core.MemoryEntry
}

// NewInMemoryStore creates an in-memory session memory with optional overrides.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{MaxEntries: DefaultMaxEntries}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	return &InMemoryStore{maxEntries: opts.MaxEntries, sessions: make(map[string][]core.MemoryEntry)}
}

// Context renders the last maxTurns turns as human-readable lines. One turn
// is two entries (user + assistant), so maxTurns=5 renders up to the last 10
// entries. Unknown or empty sessions yield "" without error; maxTurns <= 0
// renders all retained entries.
func (m *InMemoryStore) Context(sessionID string, maxTurns int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.sessions[sessionID]
	if len(entries) == 0 {
		return "", nil
	}

	recent := entries
	if maxTurns > 0 {
		n := maxTurns * 2
		if n < len(entries) {
			recent = entries[len(entries)-n:]
		}
	}

	lines := make([]string, 0, len(recent))
	for _, e := range recent {
		lines = append(lines, renderEntry(e))
	}
	return strings.Join(lines, "\n"), nil
}

// Append adds one entry to the session's log, dropping the oldest entries
// once the per-session cap is exceeded.
func (m *InMemoryStore) Append(sessionID string, entry core.MemoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := append(m.sessions[sessionID], entry)
	if len(entries) > m.maxEntries {
		entries = entries[len(entries)-m.maxEntries:]
	}
	m.sessions[sessionID] = entries
	return nil
}

// Len returns the number of retained entries for a session.
func (m *InMemoryStore) Len(sessionID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions[sessionID])
}

func renderEntry(e core.MemoryEntry) string {
	switch e.Role {
	case core.RoleUser:
		return fmt.Sprintf("User: %s", e.Content)
	case core.RoleAssistant:
		return fmt.Sprintf("Assistant ran %s; result: %s", e.Capability, e.OutputSummary)
	default:
		return fmt.Sprintf("%s: %s", e.Role, e.Content)
	}
}
