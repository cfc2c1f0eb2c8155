// Package engine implements the orchestration core of CapMesh. The Engine
// drives the per-request state machine:
//
//	Start -> ResolveContext -> (OptionalRewrite) -> Classify ->
//	{Lookup -> Validate -> Execute -> Decide} loop -> Finalize
//
// Per iteration it looks up the capability, validates arguments strictly
// against the declared schema, executes (converting errors and panics into
// failed results), records wall-clock timing, consults the optional
// continuation decider and either terminates or adopts the proposed next
// step, up to a fixed iteration cap. Session memory writes happen here: the
// original user message on the first iteration, a truncated assistant summary
// on every iteration.
//
// Error taxonomy:
//   - Contract violations (malformed intent, unknown capability name, schema
//     mismatch) abort the request with an error.
//   - Capability execution failures are local: recovered into success=false
//     results with the error detail in metadata.
//   - Malformed continuation proposals degrade to termination with a warning,
//     never an error and never an unbounded loop.
//
// The engine holds no cross-request locks while strategies or capabilities
// run; concurrent requests share only the immutable registry and the
// internally synchronized stores.
package engine
