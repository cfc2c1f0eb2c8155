package capability

import (
	"context"

	"github.com/capmesh/capmesh/core"
)

// Func is the implementation signature wrapped by FunctionCapability. It
// returns the output text plus optional metadata to attach to the result.
type Func func(ctx context.Context, args map[string]any) (string, map[string]any, error)

// FunctionCapability is a generic adapter that exposes a plain Go function as
// a CapMesh capability.
//
// Responsibilities:
//   - Holds the declared argument schema (argument name -> description)
//   - Invokes the wrapped function with the already-validated arguments
//   - Normalizes the returned output/metadata into a CapabilityResult
//
// Concurrency: a FunctionCapability has no mutable state after construction
// and is safe for concurrent use by multiple goroutines.
type FunctionCapability struct {
	// Capability identifier (snake_case recommended)
	name string
	// Human-readable description shown to intent resolvers
	description string
	// Argument schema: name -> description
	schema map[string]string
	// User supplied implementation
	fn Func
}

// NewFunction constructs a FunctionCapability from explicit schema and function.
//
// Example:
//
//	reverse := NewFunction(
//	  "reverse",
//	  "Reverse the given text",
//	  map[string]string{"text": "Text to reverse"},
//	  func(_ context.Context, args map[string]any) (string, map[string]any, error) {
//	    s, _ := args["text"].(string)
//	    runes := []rune(s)
//	    for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
//	      runes[i], runes[j] = runes[j], runes[i]
//	    }
//	    return string(runes), nil, nil
//	  },
//	)
func NewFunction(name, description string, schema map[string]string, fn Func) *FunctionCapability {
	return &FunctionCapability{name: name, description: description, schema: schema, fn: fn}
}

// Name returns the unique capability name used in routing.
func (c *FunctionCapability) Name() string { return c.name }

// Description returns the short natural language description exposed to resolvers.
func (c *FunctionCapability) Description() string { return c.description }

// ArgumentSchema returns the declared argument schema.
func (c *FunctionCapability) ArgumentSchema() map[string]string { return c.schema }

// Execute invokes the wrapped function and packages its output as a
// CapabilityResult. Errors are returned unwrapped; the orchestrator converts
// them into failed results.
func (c *FunctionCapability) Execute(ctx context.Context, args map[string]any) (*core.CapabilityResult, error) {
	output, metadata, err := c.fn(ctx, args)
	if err != nil {
		return nil, err
	}
	result := core.NewCapabilityResult(c.name, output)
	for k, v := range metadata {
		result.Metadata[k] = v
	}
	return result, nil
}
