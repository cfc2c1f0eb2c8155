package core

// CapabilityResult is the standardized outcome of a capability execution and
// the value ultimately returned to callers of Handle.
//
// Contract:
//   - Capability and Output are always non-empty-able strings (never "unset";
//     Output may legitimately be "" on failure)
//   - Metadata is never nil; use NewCapabilityResult or FailedCapabilityResult
//     to get a properly initialized value
//   - The orchestrator mutates a result exactly once after execution to
//     inject timing and session identity; it is not mutated again after being
//     handed to a continuation decider (final-output substitution replaces
//     Output as part of termination, per the decider's own instruction)
type CapabilityResult struct {
	Capability string         `json:"capability"`
	Output     string         `json:"output"`
	Success    bool           `json:"success"`
	Metadata   map[string]any `json:"metadata"`
	SessionID  string         `json:"session_id,omitempty"`
}

// NewCapabilityResult constructs a successful result with initialized metadata.
func NewCapabilityResult(capability, output string) *CapabilityResult {
	return &CapabilityResult{
		Capability: capability,
		Output:     output,
		Success:    true,
		Metadata:   map[string]any{},
	}
}

// FailedCapabilityResult constructs a failed result carrying the error detail
// in metadata under the "error" key, matching the recoverable-failure shape
// produced by the orchestrator when a capability errors or panics.
func FailedCapabilityResult(capability, errMsg string) *CapabilityResult {
	return &CapabilityResult{
		Capability: capability,
		Output:     "",
		Success:    false,
		Metadata:   map[string]any{"error": errMsg},
	}
}

// Invocation names a capability to run together with its arguments. It is
// transient: produced by an intent resolver (or adopted from a continuation
// decision) and consumed immediately by the orchestrator.
type Invocation struct {
	Capability string         `json:"capability"`
	Arguments  map[string]any `json:"arguments"`
}

// ContinuationDecision is the structured decision returned by a
// ContinuationDecider after a capability run.
//
// Done is the only required field. When Done is false, NextCapability and
// NextArguments are mandatory for the loop to continue; if either is missing
// or invalid the orchestrator fails safe toward termination. FinalOutput,
// when non-empty on a Done decision, replaces the result output with a
// synthesized reply.
type ContinuationDecision struct {
	Done           bool           `json:"done"`
	NextCapability string         `json:"next_capability,omitempty"`
	NextArguments  map[string]any `json:"next_arguments,omitempty"`
	FinalOutput    string         `json:"final_output,omitempty"`
}
