// Package config loads application configuration from defaults, an optional
// YAML file, and CAPMESH_ prefixed environment variables, in that order of
// precedence (later sources override earlier ones).
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/capmesh/capmesh/engine"
	"github.com/capmesh/capmesh/logging"
)

const envPrefix = "CAPMESH_"

// Config is the full application configuration.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Log          LogConfig          `koanf:"log"`
	Model        ModelConfig        `koanf:"model"`
	Orchestrator OrchestratorConfig `koanf:"orchestrator"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ModelConfig selects and tunes the language model backend. Provider is one
// of "openai", "anthropic" or "mock".
type ModelConfig struct {
	Provider    string  `koanf:"provider"`
	Name        string  `koanf:"name"`
	APIKey      string  `koanf:"api_key"`
	Temperature float64 `koanf:"temperature"`
}

// OrchestratorConfig tunes the request handling loop.
type OrchestratorConfig struct {
	MaxIterations    int `koanf:"max_iterations"`
	ContextTurns     int `koanf:"context_turns"`
	MemoryMaxEntries int `koanf:"memory_max_entries"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Model: ModelConfig{
			Provider:    "mock",
			Temperature: 0,
		},
		Orchestrator: OrchestratorConfig{
			MaxIterations:    engine.DefaultConfig.MaxIterations,
			ContextTurns:     engine.DefaultConfig.ContextTurns,
			MemoryMaxEntries: 20,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), and CAPMESH_ environment variables. Env keys map to config
// paths by lowercasing and splitting on double underscores, e.g.
// CAPMESH_MODEL__API_KEY sets model.api_key.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	// Defaults live in the struct; koanf only overlays keys the file or the
	// environment actually provide.
	cfg := Default()

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKeyMapper(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

func (c Config) validate() error {
	switch c.Model.Provider {
	case "openai", "anthropic", "mock":
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Orchestrator.MaxIterations <= 0 {
		return fmt.Errorf("orchestrator max_iterations must be positive, got %d", c.Orchestrator.MaxIterations)
	}
	return nil
}

// Logger builds the configured logger.
func (c Config) Logger() logging.Logger {
	return logging.NewSlogLogger(logging.ParseLevel(c.Log.Level), c.Log.Format)
}

// EngineConfig converts the orchestrator section into engine settings.
func (c Config) EngineConfig() engine.Config {
	ec := engine.DefaultConfig
	if c.Orchestrator.MaxIterations > 0 {
		ec.MaxIterations = c.Orchestrator.MaxIterations
	}
	if c.Orchestrator.ContextTurns > 0 {
		ec.ContextTurns = c.Orchestrator.ContextTurns
	}
	return ec
}
