// Package capmesh provides a high-level façade over the core Engine and its
// service abstractions (capability registry, sessions, memory, routing
// strategies & logging). Most applications interact with this package by:
//  1. Creating a CapMesh via New() (optionally overriding default in-memory services)
//  2. Registering capabilities (the built-in echo and summarize are included by default)
//  3. Handling user messages with Handle()
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply model-backed routing
// strategies and a structured logger.
package capmesh

import (
	"context"

	"github.com/capmesh/capmesh/capability"
	"github.com/capmesh/capmesh/core"
	"github.com/capmesh/capmesh/engine"
	"github.com/capmesh/capmesh/intent"
	"github.com/capmesh/capmesh/logging"
	"github.com/capmesh/capmesh/memory"
	"github.com/capmesh/capmesh/session"
)

// Options configures the CapMesh instance.
type Options struct {
	// EngineConfig holds loop parameters (iteration cap, context turns,
	// summary length).
	EngineConfig engine.Config

	// Capabilities to register. Defaults to the built-in echo and
	// summarize capabilities when empty.
	Capabilities []core.Capability

	// IntentResolver routes messages to capabilities. Defaults to the
	// keyword-matching rule-based resolver over the registered capabilities.
	IntentResolver core.IntentResolver

	// ReferenceResolver optionally rewrites context-dependent messages before
	// classification. Nil disables rewriting.
	ReferenceResolver core.ReferenceResolver

	// ContinuationDecider optionally drives multi-step loops. Nil means one
	// execution per request.
	ContinuationDecider core.ContinuationDecider

	// Stores (default to in-memory implementations if not provided).
	SessionStore  core.SessionStore
	SessionMemory core.SessionMemory

	// Logger defaults to NoOp.
	Logger logging.Logger
}

// CapMesh is the high-level façade aggregating the registry and the engine.
type CapMesh struct {
	registry *capability.Registry
	engine   *engine.Engine
}

// New creates a CapMesh instance with optional overrides. Any unset service
// is initialized with an in-memory implementation and any unset strategy
// with a deterministic default.
func New(optFns ...func(o *Options)) *CapMesh {
	opts := Options{
		EngineConfig:  engine.DefaultConfig,
		SessionStore:  session.NewInMemoryStore(),
		SessionMemory: memory.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	caps := opts.Capabilities
	if len(caps) == 0 {
		caps = []core.Capability{
			capability.NewEcho(),
			capability.NewSummarize(),
		}
	}
	registry := capability.NewRegistry(caps, func(o *capability.RegistryOptions) {
		o.Logger = opts.Logger
	})

	resolver := opts.IntentResolver
	if resolver == nil {
		resolver = intent.NewRuleBased(registry)
	}

	eng := engine.New(registry, resolver, func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.SessionStore = opts.SessionStore
		o.SessionMemory = opts.SessionMemory
		o.ReferenceResolver = opts.ReferenceResolver
		o.ContinuationDecider = opts.ContinuationDecider
		o.Logger = opts.Logger
	})

	return &CapMesh{
		registry: registry,
		engine:   eng,
	}
}

// Handle routes message to a capability, executes it and returns the final
// result. See engine.Engine.Handle for the full semantics.
func (m *CapMesh) Handle(ctx context.Context, message, sessionID string) (*core.CapabilityResult, error) {
	return m.engine.Handle(ctx, message, sessionID)
}

// Registry exposes the capability registry, e.g. for building model-backed
// strategies from its metadata.
func (m *CapMesh) Registry() *capability.Registry {
	return m.registry
}
