package model

import (
	"context"
	"fmt"
)

// Request captures a single-shot completion request. The strategies in this
// project exchange short structured prompts for short structured replies, so
// the interface is deliberately non-streaming.
type Request struct {
	// Instructions is the system-level framing for the call (e.g. "You are a
	// strict JSON intent classifier.").
	Instructions string `json:"instructions"`
	// Prompt is the user-level prompt body.
	Prompt string `json:"prompt"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed model reply.
type Response struct {
	Text  string      `json:"text"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by the model-backed strategies.
type Model interface {
	// Complete performs one blocking completion call.
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests and examples.
// Responses are registered per prompt; unmatched prompts get a deterministic
// fallback reply.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailWith makes every subsequent Complete call return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Complete implements Model.
func (m *MockModel) Complete(_ context.Context, req Request) (Response, error) {
	if m.err != nil {
		return Response{}, m.err
	}
	if text, ok := m.responses[req.Prompt]; ok {
		return Response{Text: text}, nil
	}
	return Response{Text: fmt.Sprintf("Mock response to: %s", req.Prompt)}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
