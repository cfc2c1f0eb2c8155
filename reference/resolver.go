// Package reference contains ReferenceResolver implementations. A reference
// resolver rewrites messages that lean on prior turns ("do that again") into
// explicit restatements so intent resolution can run context-free. The
// contract lives in core.ReferenceResolver.
package reference

import (
	"context"
	"fmt"
	"strings"

	"github.com/capmesh/capmesh/core"
	"github.com/capmesh/capmesh/model"
)

// resolverInstructions frames every rewrite call.
const resolverInstructions = "You are a reference resolver. You rewrite user messages, nothing else."

// ModelResolver asks an LLM to rewrite the user message so that references
// like "that", "it", "again" are resolved from the recent context.
//
// When the context is empty or whitespace the input is returned unchanged
// without calling the model. The model is instructed to output the literal
// message the user would have typed, never a description of an action.
type ModelResolver struct {
	model model.Model
}

// NewModelResolver constructs a model-backed reference resolver.
func NewModelResolver(m model.Model) *ModelResolver {
	return &ModelResolver{model: m}
}

var _ core.ReferenceResolver = (*ModelResolver)(nil)

// Resolve implements core.ReferenceResolver.
func (r *ModelResolver) Resolve(ctx context.Context, message, conversation string) (string, error) {
	if strings.TrimSpace(conversation) == "" {
		return message, nil
	}

	resp, err := r.model.Complete(ctx, model.Request{
		Instructions: resolverInstructions,
		Prompt:       buildPrompt(message, strings.TrimSpace(conversation)),
	})
	if err != nil {
		return "", fmt.Errorf("reference model call: %w", err)
	}

	rewritten := strings.TrimSpace(resp.Text)
	if rewritten == "" {
		return message, nil
	}
	return rewritten, nil
}

func buildPrompt(message, conversation string) string {
	return fmt.Sprintf(`Given the recent conversation context and the user's message, output the EXACT message the user would have typed to mean the same thing. Resolve references like "that", "it", "again" by substituting the prior user message or the action they refer to.

CRITICAL: Output only the resolved message AS THE USER WOULD HAVE TYPED IT. Do NOT output a description or instruction (e.g. do NOT output "run the echo command again"). If the user said "do that again" and the previous user message was "echo hello", output exactly: echo hello

Recent context:
%s

User message:
%s

Resolved message (exactly what the user would have typed, nothing else):`, conversation, message)
}
