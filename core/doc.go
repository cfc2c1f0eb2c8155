// Package core provides the foundational domain types and contracts used by
// CapMesh. It defines the core abstractions for:
//
//   - Capabilities (named, schema-described units of executable behavior)
//   - CapabilityResult / Invocation / ContinuationDecision (the execution
//     contract between capabilities, the orchestrator and its strategies)
//   - Sessions (identity records correlating related requests)
//   - Session memory (bounded per-session turn logs rendered as context)
//   - Pluggable strategies for intent resolution, reference resolution and
//     continuation decisions
//
// The package intentionally keeps implementation concerns (storage backends,
// the orchestration engine, concrete strategies) out of scope, exposing small
// interfaces so callers can supply custom backends without touching the
// orchestration core.
package core
