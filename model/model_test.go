package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("test-model")
	m.AddResponse("ping", "pong")

	resp, err := m.Complete(context.Background(), Request{Prompt: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Text)
}

func TestMockModel_FallbackResponse(t *testing.T) {
	m := NewMockModel("test-model")

	resp, err := m.Complete(context.Background(), Request{Prompt: "unregistered"})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: unregistered", resp.Text)
}

func TestMockModel_FailWith(t *testing.T) {
	m := NewMockModel("test-model")
	m.AddResponse("ping", "pong")
	m.FailWith(errors.New("injected"))

	_, err := m.Complete(context.Background(), Request{Prompt: "ping"})
	require.Error(t, err)
	assert.Equal(t, "injected", err.Error())
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("test-model")
	info := m.Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
}
