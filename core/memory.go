package core

// Memory entry roles. One conversational turn is stored as two entries: a
// user entry followed by an assistant entry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MemoryEntry is one record in a session's conversation log. Role determines
// which fields are meaningful: user entries carry Content, assistant entries
// carry Capability, Success and a truncated OutputSummary (never full
// metadata).
type MemoryEntry struct {
	Role          string `json:"role"`
	Content       string `json:"content,omitempty"`
	Capability    string `json:"capability,omitempty"`
	Success       bool   `json:"success,omitempty"`
	OutputSummary string `json:"output_summary,omitempty"`
}

// UserEntry builds a user-role entry holding the raw user message.
func UserEntry(content string) MemoryEntry {
	return MemoryEntry{Role: RoleUser, Content: content}
}

// AssistantEntry builds an assistant-role entry summarizing a capability run.
func AssistantEntry(capability string, success bool, outputSummary string) MemoryEntry {
	return MemoryEntry{Role: RoleAssistant, Capability: capability, Success: success, OutputSummary: outputSummary}
}

// SessionMemory is the append-only bounded conversation log kept per session.
//
// Implementations must serialize concurrent appends for the same session
// (entries are additive, never merged or lost) and must bound per-session
// growth by dropping the oldest entries once a configured cap is exceeded.
type SessionMemory interface {
	// Context renders the last maxTurns turns (one turn = one user entry plus
	// one assistant entry) as human-readable lines. Unknown or empty sessions
	// yield "" without error. maxTurns <= 0 renders all retained entries.
	Context(sessionID string, maxTurns int) (string, error)

	// Append adds one entry to the session's log, evicting the oldest entries
	// if the configured per-session cap would be exceeded.
	Append(sessionID string, entry MemoryEntry) error
}
