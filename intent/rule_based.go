package intent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/capmesh/capmesh/core"
)

// RuleBased is a deterministic keyword resolver: a message routes to the
// first registered capability whose name appears in the lowercased message,
// falling back to a configured default otherwise. Every schema argument of
// the chosen capability receives the full original message, which suits
// single-text-argument capabilities like echo and summarize.
//
// It is intentionally naive. It exists as the deterministic reference
// implementation for tests and offline use; swap in ModelResolver for real
// language understanding.
type RuleBased struct {
	registry core.CapabilityRegistry
	fallback string
}

// RuleBasedOptions configures the rule-based resolver.
type RuleBasedOptions struct {
	// Fallback is the capability chosen when no name matches. Defaults to
	// the registry's first capability.
	Fallback string
}

// NewRuleBased constructs a rule-based resolver over the registry's candidate set.
func NewRuleBased(registry core.CapabilityRegistry, optFns ...func(o *RuleBasedOptions)) *RuleBased {
	opts := RuleBasedOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &RuleBased{registry: registry, fallback: opts.Fallback}
}

// Classify implements core.IntentResolver. The rendered conversation is
// accepted for interface compatibility but ignored; keyword matching only
// looks at the current message.
func (r *RuleBased) Classify(_ context.Context, message, _ string) (core.Invocation, error) {
	descriptors := r.registry.Metadata()
	if len(descriptors) == 0 {
		return core.Invocation{}, fmt.Errorf("classify %q: no capabilities registered", message)
	}

	lower := strings.ToLower(message)
	for _, d := range descriptors {
		if strings.Contains(lower, d.Name) {
			return invocationFor(d, message), nil
		}
	}

	if r.fallback != "" {
		for _, d := range descriptors {
			if d.Name == r.fallback {
				return invocationFor(d, message), nil
			}
		}
		return core.Invocation{}, fmt.Errorf("%w: fallback %q is not registered", core.ErrUnknownCapability, r.fallback)
	}
	return invocationFor(descriptors[0], message), nil
}

// invocationFor fills every declared argument with the full message so the
// invocation always passes strict schema validation.
func invocationFor(d core.Descriptor, message string) core.Invocation {
	args := make(map[string]any, len(d.ArgumentSchema))
	names := make([]string, 0, len(d.ArgumentSchema))
	for name := range d.ArgumentSchema {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args[name] = message
	}
	return core.Invocation{Capability: d.Name, Arguments: args}
}
