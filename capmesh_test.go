package capmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capmesh/capmesh/capability"
	"github.com/capmesh/capmesh/core"
)

func TestNew_DefaultsToBuiltins(t *testing.T) {
	mesh := New()

	names := mesh.Registry().Names()
	assert.Equal(t, []string{"echo", "summarize"}, names)
}

func TestHandle_EchoRoundTrip(t *testing.T) {
	mesh := New()

	result, err := mesh.Handle(context.Background(), "echo hello world", "")
	require.NoError(t, err)
	assert.Equal(t, "echo", result.Capability)
	assert.Equal(t, "echo hello world", result.Output)
	assert.True(t, result.Success)
}

func TestHandle_SessionContextAccumulates(t *testing.T) {
	mesh := New()

	first, err := mesh.Handle(context.Background(), "echo hello", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", first.SessionID)

	second, err := mesh.Handle(context.Background(), "echo goodbye", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", second.SessionID)
	assert.Equal(t, "echo goodbye", second.Output)
}

func TestNew_CustomCapabilities(t *testing.T) {
	custom := capability.NewFunction("shout", "uppercases", map[string]string{
		"message": "text",
	}, func(_ context.Context, args map[string]any) (string, map[string]any, error) {
		msg, _ := args["message"].(string)
		return msg + "!!!", nil, nil
	})

	mesh := New(func(o *Options) {
		o.Capabilities = []core.Capability{custom}
	})

	result, err := mesh.Handle(context.Background(), "shout something", "")
	require.NoError(t, err)
	assert.Equal(t, "shout", result.Capability)
	assert.Equal(t, "shout something!!!", result.Output)
}
