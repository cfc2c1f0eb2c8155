package capability

import (
	"context"
	"fmt"

	"github.com/capmesh/capmesh/internal/util"
)

// summaryPreviewLen bounds how much of the input the placeholder summary echoes.
const summaryPreviewLen = 50

// NewEcho returns the built-in echo capability. It repeats its message
// argument back and is primarily useful for validating routing and wiring.
func NewEcho() *FunctionCapability {
	return NewFunction(
		"echo",
		"Echo the given message back to the user",
		map[string]string{"message": "Text to echo back"},
		func(_ context.Context, args map[string]any) (string, map[string]any, error) {
			message, _ := args["message"].(string)
			return message, nil, nil
		},
	)
}

// NewSummarize returns the built-in summarize capability. It produces a
// placeholder summary; swap in a model-backed implementation for real use.
func NewSummarize() *FunctionCapability {
	return NewFunction(
		"summarize",
		"Summarize the given text",
		map[string]string{"text": "Text to summarize"},
		func(_ context.Context, args map[string]any) (string, map[string]any, error) {
			text, _ := args["text"].(string)
			summary := fmt.Sprintf("[summary placeholder]: %s", util.Truncate(text, summaryPreviewLen))
			return summary, map[string]any{"original_length": len(text)}, nil
		},
	)
}
