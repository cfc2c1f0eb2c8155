package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mock", cfg.Model.Provider)
	assert.Equal(t, 5, cfg.Orchestrator.MaxIterations)
	assert.Equal(t, 20, cfg.Orchestrator.MemoryMaxEntries)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capmesh.yaml")
	content := []byte(`
server:
  addr: ":9090"
log:
  level: debug
model:
  provider: openai
  name: gpt-4o-mini
orchestrator:
  max_iterations: 3
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, 3, cfg.Orchestrator.MaxIterations)
	// Untouched keys keep their defaults.
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capmesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  provider: openai\n"), 0o600))

	t.Setenv("CAPMESH_MODEL__PROVIDER", "anthropic")
	t.Setenv("CAPMESH_MODEL__API_KEY", "sk-test")
	t.Setenv("CAPMESH_ORCHESTRATOR__MAX_ITERATIONS", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.Equal(t, "sk-test", cfg.Model.APIKey)
	assert.Equal(t, 2, cfg.Orchestrator.MaxIterations)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		wants string
	}{
		{
			name:  "unknown provider",
			env:   map[string]string{"CAPMESH_MODEL__PROVIDER": "bard"},
			wants: "unknown model provider",
		},
		{
			name:  "unknown log level",
			env:   map[string]string{"CAPMESH_LOG__LEVEL": "loud"},
			wants: "unknown log level",
		},
		{
			name:  "non positive iterations",
			env:   map[string]string{"CAPMESH_ORCHESTRATOR__MAX_ITERATIONS": "0"},
			wants: "max_iterations",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wants)
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Default()
	cfg.Orchestrator.MaxIterations = 7
	cfg.Orchestrator.ContextTurns = 3

	ec := cfg.EngineConfig()
	assert.Equal(t, 7, ec.MaxIterations)
	assert.Equal(t, 3, ec.ContextTurns)
	assert.Equal(t, 200, ec.SummaryMaxLen)
}
