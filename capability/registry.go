package capability

import (
	"github.com/capmesh/capmesh/core"
	"github.com/capmesh/capmesh/logging"
)

// Registry is an immutable name -> capability mapping with stable insertion
// order. It is built once at construction time and never mutated afterwards,
// so lookups need no locking and are safe for concurrent use.
//
// Duplicate names resolve last-write-wins; the collision is logged as a
// warning and recorded so callers (and tests) can flag it rather than have it
// pass silently.
type Registry struct {
	capabilities map[string]core.Capability
	order        []string
	duplicates   []string
}

// RegistryOptions configures Registry construction.
type RegistryOptions struct {
	// Logger reports duplicate-name collisions. Defaults to NoOp.
	Logger logging.Logger
}

// NewRegistry builds a registry from the given capabilities, preserving their
// order for Metadata.
func NewRegistry(caps []core.Capability, optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &Registry{capabilities: make(map[string]core.Capability, len(caps))}
	for _, c := range caps {
		name := c.Name()
		if _, exists := r.capabilities[name]; exists {
			opts.Logger.Warn("duplicate capability name; last registration wins", "capability", name)
			r.duplicates = append(r.duplicates, name)
		} else {
			r.order = append(r.order, name)
		}
		r.capabilities[name] = c
	}
	return r
}

// Get looks up a capability by name. Absence is a normal outcome signalled by
// the boolean, not an error.
func (r *Registry) Get(name string) (core.Capability, bool) {
	c, ok := r.capabilities[name]
	return c, ok
}

// Metadata returns descriptors for all registered capabilities in insertion
// order so prompts and tests are deterministic.
func (r *Registry) Metadata() []core.Descriptor {
	descriptors := make([]core.Descriptor, 0, len(r.order))
	for _, name := range r.order {
		c := r.capabilities[name]
		schema := c.ArgumentSchema()
		schemaCopy := make(map[string]string, len(schema))
		for k, v := range schema {
			schemaCopy[k] = v
		}
		descriptors = append(descriptors, core.Descriptor{
			Name:           name,
			Description:    c.Description(),
			ArgumentSchema: schemaCopy,
		})
	}
	return descriptors
}

// Names returns the registered capability names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of distinct registered capabilities.
func (r *Registry) Len() int { return len(r.capabilities) }

// Duplicates returns the names that were registered more than once, in the
// order the collisions occurred. Empty for a cleanly constructed registry.
func (r *Registry) Duplicates() []string {
	dups := make([]string, len(r.duplicates))
	copy(dups, r.duplicates)
	return dups
}
