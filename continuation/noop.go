package continuation

import (
	"context"

	"github.com/capmesh/capmesh/core"
)

// NoOp always decides done with no next step and no synthesized output. It
// keeps the decide call site in place without changing behavior or adding a
// model call.
type NoOp struct{}

var _ core.ContinuationDecider = NoOp{}

// Decide implements core.ContinuationDecider.
func (NoOp) Decide(context.Context, string, string, *core.CapabilityResult) (core.ContinuationDecision, error) {
	return core.ContinuationDecision{Done: true}, nil
}
