package core

import "context"

// Capability defines the interface for the executable units CapMesh routes
// user messages to.
//
// Capabilities are opaque named functions with a declared argument schema.
// They receive already-validated arguments, so implementations may assume
// every declared argument key is present (values remain loosely typed).
//
// Capability implementations should:
//   - Provide clear, descriptive names and descriptions (names are the
//     routing keys seen by intent resolvers)
//   - Declare every accepted argument in ArgumentSchema; validation is strict
//     two-way, undeclared arguments are rejected before execution
//   - Be stateless and safe for concurrent use
//   - Return an error (or panic) on failure; the orchestrator converts both
//     into a failed CapabilityResult rather than aborting the request
type Capability interface {
	// Name returns the unique identifier for this capability.
	Name() string

	// Description returns a human-readable description of what this
	// capability does. It is surfaced to intent resolvers (including
	// model-backed ones) to guide routing.
	Description() string

	// ArgumentSchema maps each accepted argument name to a human-readable
	// description. The schema is the validation contract: every key must be
	// supplied and no undeclared keys are allowed.
	ArgumentSchema() map[string]string

	// Execute runs the capability with validated arguments.
	Execute(ctx context.Context, args map[string]any) (*CapabilityResult, error)
}

// Descriptor is the immutable metadata snapshot of a registered capability.
// Registries hand descriptors (not executables) to intent resolvers and
// continuation deciders so prompts can list the candidate set.
type Descriptor struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	ArgumentSchema map[string]string `json:"arguments"`
}

// CapabilityRegistry is the read-only capability set consumed by the
// orchestrator and by strategies that need the candidate list. Registries are
// immutable after construction, so implementations need no locking.
type CapabilityRegistry interface {
	// Get looks up an executable capability by name. Absence is a normal
	// outcome signalled by the boolean, not an error.
	Get(name string) (Capability, bool)

	// Metadata returns descriptors for all registered capabilities in stable
	// insertion order so prompts and tests are deterministic.
	Metadata() []Descriptor
}
