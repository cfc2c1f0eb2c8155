package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/capmesh/capmesh/core"
	"github.com/capmesh/capmesh/internal/util"
	"github.com/capmesh/capmesh/logging"
	"github.com/capmesh/capmesh/memory"
	"github.com/capmesh/capmesh/session"
)

// Config defines tuning parameters for the engine's loop behavior.
type Config struct {
	// MaxIterations is the hard cap on capability executions per request,
	// bounding pathological looping from a misbehaving continuation decider.
	MaxIterations int

	// ContextTurns is how many recent turns are rendered from session memory
	// into the classification context.
	ContextTurns int

	// SummaryMaxLen bounds the assistant memory entry's output summary.
	SummaryMaxLen int
}

// DefaultConfig provides the reference configuration values.
var DefaultConfig = Config{
	MaxIterations: 5,
	ContextTurns:  5,
	SummaryMaxLen: 200,
}

// Options configures an Engine instance using the functional options pattern.
// All services default to in-memory implementations and strategies default to
// absent, so a minimal engine performs exactly one execution per request.
type Options struct {
	// Config contains loop parameters. Defaults to DefaultConfig.
	Config Config

	// SessionStore maps session ids to identity records. Defaults to the
	// in-memory implementation.
	SessionStore core.SessionStore

	// SessionMemory keeps the bounded per-session conversation log. Defaults
	// to the in-memory implementation.
	SessionMemory core.SessionMemory

	// ReferenceResolver optionally rewrites context-dependent messages before
	// classification. Nil disables rewriting.
	ReferenceResolver core.ReferenceResolver

	// ContinuationDecider optionally drives multi-step loops. Nil means every
	// request stops after one execution.
	ContinuationDecider core.ContinuationDecider

	// Logger provides structured logging. Defaults to NoOp.
	Logger logging.Logger
}

// Engine orchestrates capability execution for incoming requests. Public
// methods are safe for concurrent use; each Handle call runs synchronously
// and independently, sharing only the registry (immutable) and the stores
// (internally synchronized).
type Engine struct {
	registry core.CapabilityRegistry
	resolver core.IntentResolver

	sessionStore  core.SessionStore
	sessionMemory core.SessionMemory
	refResolver   core.ReferenceResolver
	decider       core.ContinuationDecider

	logger logging.Logger
	config Config
}

// New constructs an Engine around a registry and an intent resolver with
// optional overrides. Registry and resolver are the two mandatory
// collaborators; everything else has a safe default.
func New(registry core.CapabilityRegistry, resolver core.IntentResolver, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:        DefaultConfig,
		SessionStore:  session.NewInMemoryStore(),
		SessionMemory: memory.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config.MaxIterations <= 0 {
		opts.Config.MaxIterations = DefaultConfig.MaxIterations
	}

	return &Engine{
		registry:      registry,
		resolver:      resolver,
		sessionStore:  opts.SessionStore,
		sessionMemory: opts.SessionMemory,
		refResolver:   opts.ReferenceResolver,
		decider:       opts.ContinuationDecider,
		logger:        opts.Logger,
		config:        opts.Config,
	}
}

// Handle is the sole entry point for transport code. It routes the message
// to a capability, executes it, optionally loops through follow-up
// capability calls, and returns the final result.
//
// sessionID may be empty for stateless requests; when present the session
// record is ensured, recent context feeds classification, and the turn is
// recorded in session memory. Errors returned from Handle are contract
// violations (misbehaving resolver or decider, unknown capability, schema
// mismatch) or backend failures; capability execution failures are returned
// as success=false results, not errors.
func (e *Engine) Handle(ctx context.Context, message, sessionID string) (*core.CapabilityResult, error) {
	requestID := uuid.NewString()
	e.logger.Debug("request received", "request_id", requestID, "session_id", sessionID)

	conversation, err := e.resolveContext(sessionID)
	if err != nil {
		return nil, err
	}

	classifyMsg, classifyConv := e.rewriteMessage(ctx, message, conversation, requestID)

	invocation, err := e.resolver.Classify(ctx, classifyMsg, classifyConv)
	if err != nil {
		return nil, fmt.Errorf("classify intent: %w", err)
	}
	e.logger.Debug("routing decision", "request_id", requestID, "capability", invocation.Capability)

	return e.runLoop(ctx, message, sessionID, requestID, invocation)
}

// resolveContext ensures the session record exists and renders recent
// context. Backend failures are fatal for the request; there is no silent
// degradation to "no context".
func (e *Engine) resolveContext(sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}
	if _, err := e.sessionStore.Get(sessionID); err != nil {
		return "", fmt.Errorf("get session %q: %w", sessionID, err)
	}
	conversation, err := e.sessionMemory.Context(sessionID, e.config.ContextTurns)
	if err != nil {
		return "", fmt.Errorf("render context for session %q: %w", sessionID, err)
	}
	return conversation, nil
}

// rewriteMessage runs the optional reference resolver. On a successful
// rewrite the classifier sees the rewritten message and no context; on
// resolver failure the original message and context are kept with a warning,
// since rewriting is an optimization, not a correctness requirement.
func (e *Engine) rewriteMessage(ctx context.Context, message, conversation, requestID string) (string, string) {
	if e.refResolver == nil || strings.TrimSpace(conversation) == "" {
		return message, conversation
	}

	rewritten, err := e.refResolver.Resolve(ctx, message, conversation)
	if err != nil {
		e.logger.Warn("reference resolution failed; classifying the original message", "request_id", requestID, "error", err.Error())
		return message, conversation
	}
	if strings.TrimSpace(rewritten) == "" {
		return message, conversation
	}
	e.logger.Debug("message rewritten", "request_id", requestID)
	return rewritten, ""
}

// runLoop executes the bounded resolve/validate/execute/decide loop.
func (e *Engine) runLoop(ctx context.Context, message, sessionID, requestID string, invocation core.Invocation) (*core.CapabilityResult, error) {
	name := invocation.Capability
	args := invocation.Arguments
	if args == nil {
		args = map[string]any{}
	}

	userRecorded := false
	for iteration := 1; ; iteration++ {
		capy, ok := e.registry.Get(name)
		if !ok {
			// A misrouted name is a contract violation by the resolver (the
			// decider's proposals are validated before adoption below).
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownCapability, name)
		}
		if err := util.ValidateArguments(args, capy.ArgumentSchema()); err != nil {
			return nil, fmt.Errorf("arguments for %q: %w", name, err)
		}

		start := time.Now()
		result := e.execute(ctx, capy, name, args)
		elapsed := time.Since(start)

		result.Metadata["execution_time_ms"] = durationMillis(elapsed)
		result.Metadata["request_id"] = requestID
		if sessionID != "" {
			result.SessionID = sessionID
			result.Metadata["session_id"] = sessionID
		}
		e.logger.Info("capability executed",
			"request_id", requestID,
			"capability", name,
			"iteration", iteration,
			"success", result.Success,
			"duration_ms", durationMillis(elapsed))

		decision, decided := e.decide(ctx, message, result, requestID)

		if sessionID != "" {
			if err := e.recordTurn(sessionID, message, result, !userRecorded); err != nil {
				return nil, err
			}
			userRecorded = true
		}

		// Termination rules, in order: no decider, decider done, iteration
		// cap, invalid proposal, otherwise adopt the proposal and loop.
		if !decided {
			return result, nil
		}
		if decision.Done {
			if decision.FinalOutput != "" {
				result.Output = decision.FinalOutput
				result.Metadata["synthesized"] = true
			}
			return result, nil
		}
		if iteration >= e.config.MaxIterations {
			e.logger.Warn("iteration cap reached; returning last result",
				"request_id", requestID, "iterations", iteration)
			return result, nil
		}
		next, nextArgs, ok := e.validateProposal(decision, requestID)
		if !ok {
			return result, nil
		}
		name, args = next, nextArgs
	}
}

// execute runs the capability converting errors and panics into failed
// results. Execution failure is local and recoverable at the orchestration
// level; it never aborts the request.
func (e *Engine) execute(ctx context.Context, capy core.Capability, name string, args map[string]any) (result *core.CapabilityResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("capability panicked", "capability", name, "panic", fmt.Sprintf("%v", r))
			result = core.FailedCapabilityResult(name, fmt.Sprintf("panic: %v", r))
		}
	}()

	res, err := capy.Execute(ctx, args)
	if err != nil {
		e.logger.Error("capability execution failed", "capability", name, "error", err.Error())
		return core.FailedCapabilityResult(name, err.Error())
	}
	if res == nil {
		return core.FailedCapabilityResult(name, "capability returned no result")
	}
	if res.Capability == "" {
		res.Capability = name
	}
	if res.Metadata == nil {
		res.Metadata = map[string]any{}
	}
	return res
}

// decide consults the continuation decider with the original user message.
// A decider error degrades to a done decision with a warning; it is never
// propagated. The second return is false when no decider is configured.
func (e *Engine) decide(ctx context.Context, message string, result *core.CapabilityResult, requestID string) (core.ContinuationDecision, bool) {
	if e.decider == nil {
		return core.ContinuationDecision{}, false
	}
	decision, err := e.decider.Decide(ctx, message, result.Capability, result)
	if err != nil {
		e.logger.Warn("continuation decision failed; terminating", "request_id", requestID, "error", err.Error())
		return core.ContinuationDecision{Done: true}, true
	}
	return decision, true
}

// validateProposal checks a not-done decision's next step against the
// registry. A missing or unknown capability or a schema mismatch degrades to
// termination with a warning, never an error.
func (e *Engine) validateProposal(decision core.ContinuationDecision, requestID string) (string, map[string]any, bool) {
	next := decision.NextCapability
	if next == "" {
		e.logger.Warn("continuation proposed no capability; terminating", "request_id", requestID)
		return "", nil, false
	}
	capy, ok := e.registry.Get(next)
	if !ok {
		e.logger.Warn("continuation proposed unknown capability; terminating", "request_id", requestID, "capability", next)
		return "", nil, false
	}
	if decision.NextArguments == nil {
		e.logger.Warn("continuation proposed no arguments; terminating", "request_id", requestID, "capability", next)
		return "", nil, false
	}
	if err := util.ValidateArguments(decision.NextArguments, capy.ArgumentSchema()); err != nil {
		e.logger.Warn("continuation proposed invalid arguments; terminating",
			"request_id", requestID, "capability", next, "error", err.Error())
		return "", nil, false
	}
	return next, decision.NextArguments, true
}

// recordTurn appends memory entries for this iteration: the original raw user
// message once per request, then an assistant summary of the execution. The
// summary is bounded; full metadata is never stored.
func (e *Engine) recordTurn(sessionID, message string, result *core.CapabilityResult, recordUser bool) error {
	if recordUser {
		if err := e.sessionMemory.Append(sessionID, core.UserEntry(message)); err != nil {
			return fmt.Errorf("append user entry for session %q: %w", sessionID, err)
		}
	}
	summary := util.Truncate(result.Output, e.config.SummaryMaxLen)
	if err := e.sessionMemory.Append(sessionID, core.AssistantEntry(result.Capability, result.Success, summary)); err != nil {
		return fmt.Errorf("append assistant entry for session %q: %w", sessionID, err)
	}
	return nil
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
