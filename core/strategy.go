package core

import (
	"context"
	"errors"
)

// ErrUnknownCapability is returned (wrapped) by intent resolvers when a
// resolved capability name is not in the candidate set, and by the
// orchestrator when a resolved name has no registered executable. It marks a
// contract violation, not a user-recoverable condition.
var ErrUnknownCapability = errors.New("unknown capability")

// IntentResolver maps a free-text user message (plus optional rendered
// conversation context) to a capability invocation.
//
// Implementations must return a capability name drawn from the candidate set
// they were constructed with. Implementations that cannot guarantee
// membership up front (e.g. model-backed ones) must validate the name and
// fail loudly with ErrUnknownCapability rather than inventing one.
// conversation may influence the chosen capability or argument values but
// never relieves the resolver of producing a name plus arguments.
type IntentResolver interface {
	Classify(ctx context.Context, message, conversation string) (Invocation, error)
}

// ReferenceResolver rewrites a message that references prior turns ("that",
// "again") into an explicit restatement classifiable without context.
//
// When conversation is empty or whitespace the input must be returned
// unchanged without invoking any downstream dependency. The output is the
// literal restated user utterance, not a description of an action.
type ReferenceResolver interface {
	Resolve(ctx context.Context, message, conversation string) (string, error)
}

// ContinuationDecider decides, after each capability run, whether the
// orchestration loop stops, runs another capability, or stops with a
// synthesized output.
//
// Deciders are pure functions of their inputs: they must not execute
// capabilities or touch session state. message is always the original user
// message, not a rewritten or intermediate form.
type ContinuationDecider interface {
	Decide(ctx context.Context, message, capability string, result *CapabilityResult) (ContinuationDecision, error)
}
