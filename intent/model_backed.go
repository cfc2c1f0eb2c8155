package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/capmesh/capmesh/core"
	"github.com/capmesh/capmesh/internal/util"
	"github.com/capmesh/capmesh/model"
)

// classifierInstructions frames every classification call.
const classifierInstructions = "You are a strict JSON intent classifier."

// ModelResolver asks an LLM which capability should run and with what
// arguments. The model reply must be JSON; the resolved capability name is
// validated against the descriptor set the resolver was constructed with and
// an unknown name is a loud error, never silently accepted.
//
// The resolver does not execute capabilities or touch session state; it only
// produces the routing decision.
type ModelResolver struct {
	model       model.Model
	descriptors []core.Descriptor
	names       map[string]struct{}
}

// NewModelResolver constructs a model-backed resolver over the given
// candidate descriptors (typically registry.Metadata()).
func NewModelResolver(m model.Model, descriptors []core.Descriptor) *ModelResolver {
	names := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		names[d.Name] = struct{}{}
	}
	return &ModelResolver{model: m, descriptors: descriptors, names: names}
}

// Classify implements core.IntentResolver. conversation, when non-empty, is
// embedded in the prompt so the model can resolve references against recent
// turns.
func (r *ModelResolver) Classify(ctx context.Context, message, conversation string) (core.Invocation, error) {
	resp, err := r.model.Complete(ctx, model.Request{
		Instructions: classifierInstructions,
		Prompt:       r.buildPrompt(message, conversation),
	})
	if err != nil {
		return core.Invocation{}, fmt.Errorf("intent model call: %w", err)
	}
	return r.parseReply(resp.Text)
}

func (r *ModelResolver) parseReply(raw string) (core.Invocation, error) {
	var parsed struct {
		Capability string         `json:"capability"`
		Arguments  map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal([]byte(util.StripCodeFence(raw)), &parsed); err != nil {
		return core.Invocation{}, fmt.Errorf("parse intent reply: %w", err)
	}

	name := strings.TrimSpace(parsed.Capability)
	if name == "" {
		return core.Invocation{}, fmt.Errorf("parse intent reply: capability must be a non-empty string")
	}
	if _, ok := r.names[name]; !ok {
		return core.Invocation{}, fmt.Errorf("%w: intent model chose %q", core.ErrUnknownCapability, name)
	}

	args := parsed.Arguments
	if args == nil {
		args = map[string]any{}
	}
	return core.Invocation{Capability: name, Arguments: args}, nil
}

// buildPrompt assembles the capability listing, JSON format instructions and
// (when present) a recent-context block followed by the user input. Argument
// names are listed in sorted order so prompts are deterministic.
func (r *ModelResolver) buildPrompt(message, conversation string) string {
	var b strings.Builder

	b.WriteString("Available capabilities:\n")
	for _, d := range r.descriptors {
		fmt.Fprintf(&b, "\nCapability: %s\nDescription: %s\nArguments:\n", d.Name, d.Description)
		argNames := make([]string, 0, len(d.ArgumentSchema))
		for name := range d.ArgumentSchema {
			argNames = append(argNames, name)
		}
		sort.Strings(argNames)
		for _, name := range argNames {
			fmt.Fprintf(&b, "  - %s: %s\n", name, d.ArgumentSchema[name])
		}
	}

	b.WriteString(`
Given the user input, respond ONLY with valid JSON in this exact format:

{
  "capability": "<capability_name>",
  "arguments": {
      "<argument_name>": <value>
  }
}

Rules:
- "capability" must match one of the listed capabilities.
- "arguments" must match the declared argument schema for that capability.
- Do NOT invent argument names.
- Do NOT include explanations.
- Do NOT include markdown.
- Output JSON only.
`)

	if strings.TrimSpace(conversation) != "" {
		b.WriteString("- If the current input refers to something in the recent context, fill argument values from that context, not the literal wording of the input.\n")
		fmt.Fprintf(&b, "\nRecent context (for reference):\n%s\n", strings.TrimSpace(conversation))
	}

	fmt.Fprintf(&b, "\nUser input:\n%s\n", message)
	return b.String()
}
