package continuation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/capmesh/capmesh/core"
	"github.com/capmesh/capmesh/internal/util"
	"github.com/capmesh/capmesh/logging"
	"github.com/capmesh/capmesh/model"
)

// resultSummaryMaxLen truncates result output in the prompt to avoid huge
// payloads.
const resultSummaryMaxLen = 500

// deciderInstructions frames every continuation call.
const deciderInstructions = "You are a strict JSON continuation decider."

// ModelDecider sends the user message, the capability that just ran and its
// result to an LLM and expects a structured JSON decision back: done,
// next_capability, next_arguments, final_output.
//
// Parsing is defensive in the fail-safe-toward-termination direction: invalid
// JSON, a non-boolean done or an unknown next capability all degrade to a
// done decision with a warning rather than an error or an invented step.
type ModelDecider struct {
	model       model.Model
	descriptors []core.Descriptor
	names       map[string]struct{}
	logger      logging.Logger
}

// ModelDeciderOptions configures the model-backed decider.
type ModelDeciderOptions struct {
	// Logger reports degraded decisions. Defaults to NoOp.
	Logger logging.Logger
}

// NewModelDecider constructs a model-backed decider over the given candidate
// descriptors (typically registry.Metadata()); a proposed next capability
// must be one of them.
func NewModelDecider(m model.Model, descriptors []core.Descriptor, optFns ...func(o *ModelDeciderOptions)) *ModelDecider {
	opts := ModelDeciderOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	names := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		names[d.Name] = struct{}{}
	}
	return &ModelDecider{model: m, descriptors: descriptors, names: names, logger: opts.Logger}
}

var _ core.ContinuationDecider = (*ModelDecider)(nil)

// Decide implements core.ContinuationDecider.
func (d *ModelDecider) Decide(ctx context.Context, message, capability string, result *core.CapabilityResult) (core.ContinuationDecision, error) {
	resp, err := d.model.Complete(ctx, model.Request{
		Instructions: deciderInstructions,
		Prompt:       d.buildPrompt(message, capability, result),
	})
	if err != nil {
		return core.ContinuationDecision{}, fmt.Errorf("continuation model call: %w", err)
	}
	return d.parseReply(resp.Text), nil
}

// parseReply maps the raw model output onto a ContinuationDecision,
// degrading every malformed field toward done=true.
func (d *ModelDecider) parseReply(raw string) core.ContinuationDecision {
	var parsed struct {
		Done           *bool          `json:"done"`
		NextCapability string         `json:"next_capability"`
		NextArguments  map[string]any `json:"next_arguments"`
		FinalOutput    string         `json:"final_output"`
	}
	if err := json.Unmarshal([]byte(util.StripCodeFence(raw)), &parsed); err != nil {
		d.logger.Warn("continuation reply was not valid JSON; treating as done", "error", err.Error())
		return core.ContinuationDecision{Done: true}
	}

	decision := core.ContinuationDecision{
		Done:           true,
		NextCapability: strings.TrimSpace(parsed.NextCapability),
		NextArguments:  parsed.NextArguments,
		FinalOutput:    parsed.FinalOutput,
	}
	if parsed.Done != nil {
		decision.Done = *parsed.Done
	}

	if decision.NextCapability != "" {
		if _, ok := d.names[decision.NextCapability]; !ok {
			d.logger.Warn("continuation proposed unknown capability; treating as done", "capability", decision.NextCapability)
			decision.Done = true
			decision.NextCapability = ""
			decision.NextArguments = nil
		}
	}
	return decision
}

func (d *ModelDecider) buildPrompt(message, capability string, result *core.CapabilityResult) string {
	var b strings.Builder

	b.WriteString(`Given the user's message, the capability that just ran, and its result, respond with ONLY valid JSON in this exact shape (no explanation, no markdown):

{
  "done": true or false,
  "next_capability": null or "<capability_name>",
  "next_arguments": null or { "<argument_name>": <value> },
  "final_output": null or "<synthesized reply to the user>"
}

Rules:
- "done" is required. true = finished. false = another capability should run (provide next_capability and next_arguments).
- If done is false, next_capability MUST be exactly one of the available capability names listed below, and next_arguments MUST match that capability's schema.
- final_output: only set when synthesizing a reply for the user; prefer returning the capability output unchanged.
`)

	if len(d.descriptors) == 0 {
		b.WriteString("\nAvailable capabilities: none. If done would be false you have no valid next step; answer done true.\n")
	} else {
		b.WriteString("\nAvailable capabilities (if done is false, next_capability must be one of these):\n")
		for _, desc := range d.descriptors {
			fmt.Fprintf(&b, "  - %s: %s\n", desc.Name, desc.Description)
			argNames := make([]string, 0, len(desc.ArgumentSchema))
			for name := range desc.ArgumentSchema {
				argNames = append(argNames, name)
			}
			sort.Strings(argNames)
			for _, name := range argNames {
				fmt.Fprintf(&b, "    Argument %s: %s\n", name, desc.ArgumentSchema[name])
			}
		}
	}

	fmt.Fprintf(&b, "\nUser message: %s\nCapability that ran: %s\nSuccess: %t\nResult output: %s\n\nJSON only:",
		message, capability, result.Success, util.Truncate(result.Output, resultSummaryMaxLen))
	return b.String()
}
