// Package config loads quizcraft settings from an optional YAML file and
// the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/questiongen"
	"github.com/abhisek/quizcraft/internal/session"
)

// DefaultAddr is the listen address for `quizcraft serve`.
const DefaultAddr = "127.0.0.1:8080"

// Config is the resolved application configuration.
type Config struct {
	LLM  llm.Config
	Quiz QuizConfig

	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string

	// Addr is the WebSocket server listen address.
	Addr string

	// LLMConfigured is false when no provider key was found anywhere.
	LLMConfigured bool
}

// QuizConfig holds question generation settings.
type QuizConfig struct {
	DefaultCount int
	Timeout      time.Duration
	Generation   questiongen.Config
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Quiz: QuizConfig{
			DefaultCount: 5,
			Timeout:      session.DefaultFetchTimeout,
			Generation:   questiongen.DefaultConfig(),
		},
		Addr: DefaultAddr,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/quizcraft/config.yaml, falling back
// to ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "quizcraft", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quizcraft", "config.yaml")
}

// Load resolves configuration from defaults, the YAML file at path and the
// environment, in increasing precedence. An empty path reads DefaultPath
// if it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := apply(&cfg, data); err != nil {
				return Config{}, fmt.Errorf("%s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)
	if v := os.Getenv("QUIZCRAFT_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("QUIZCRAFT_ADDR"); v != "" {
		cfg.Addr = v
	}

	cfg.LLMConfigured = cfg.LLM.Validate() == nil
	if !cfg.LLMConfigured {
		cfg.LLM, cfg.LLMConfigured = llm.DiscoverConfig(cfg.LLM)
	}
}

// Parse decodes a YAML document onto the defaults without consulting the
// environment.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := apply(&cfg, data); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func apply(cfg *Config, data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return nil
	}
	if err := validate(doc); err != nil {
		return err
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return fmt.Errorf("parse config: %w", err)
	}
	return f.merge(cfg)
}
