// Package continuation contains ContinuationDecider implementations: NoOp
// (always done, never calls a model; the default so single-step requests add
// no extra inference cost) and ModelDecider, which asks an LLM whether the
// orchestration loop should stop, run another capability, or stop with a
// synthesized reply. The contract lives in core.ContinuationDecider.
package continuation
