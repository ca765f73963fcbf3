package config

import (
	"fmt"
	"time"
)

// file mirrors the YAML layout. Zero values leave defaults in place.
type file struct {
	DB   string `yaml:"db"`
	Addr string `yaml:"addr"`

	LLM struct {
		Provider   string       `yaml:"provider"`
		Timeout    string       `yaml:"timeout"`
		Anthropic  providerFile `yaml:"anthropic"`
		OpenAI     providerFile `yaml:"openai"`
		Gemini     providerFile `yaml:"gemini"`
		OpenRouter providerFile `yaml:"openrouter"`
		Retry      struct {
			MaxAttempts int     `yaml:"max_attempts"`
			InitialWait string  `yaml:"initial_wait"`
			MaxWait     string  `yaml:"max_wait"`
			Multiplier  float64 `yaml:"multiplier"`
		} `yaml:"retry"`
	} `yaml:"llm"`

	Quiz struct {
		DefaultCount      int      `yaml:"default_count"`
		Timeout           string   `yaml:"timeout"`
		MaxTokens         int      `yaml:"max_tokens"`
		TokensPerQuestion int      `yaml:"tokens_per_question"`
		Temperature       *float64 `yaml:"temperature"`
	} `yaml:"quiz"`
}

type providerFile struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

func (f *file) merge(cfg *Config) error {
	setString(&cfg.DBPath, f.DB)
	setString(&cfg.Addr, f.Addr)

	l := &cfg.LLM
	setString(&l.Provider, f.LLM.Provider)
	f.LLM.Anthropic.mergeInto(&l.Anthropic.APIKey, &l.Anthropic.Model, nil)
	f.LLM.OpenAI.mergeInto(&l.OpenAI.APIKey, &l.OpenAI.Model, &l.OpenAI.BaseURL)
	f.LLM.Gemini.mergeInto(&l.Gemini.APIKey, &l.Gemini.Model, &l.Gemini.BaseURL)
	f.LLM.OpenRouter.mergeInto(&l.OpenRouter.APIKey, &l.OpenRouter.Model, &l.OpenRouter.BaseURL)

	if f.LLM.Retry.MaxAttempts > 0 {
		l.Retry.MaxAttempts = f.LLM.Retry.MaxAttempts
	}
	if f.LLM.Retry.Multiplier > 0 {
		l.Retry.Multiplier = f.LLM.Retry.Multiplier
	}

	q := &cfg.Quiz
	if f.Quiz.DefaultCount > 0 {
		q.DefaultCount = f.Quiz.DefaultCount
	}
	if f.Quiz.MaxTokens > 0 {
		q.Generation.MaxTokens = f.Quiz.MaxTokens
	}
	if f.Quiz.TokensPerQuestion > 0 {
		q.Generation.TokensPerQuestion = f.Quiz.TokensPerQuestion
	}
	if f.Quiz.Temperature != nil {
		q.Generation.Temperature = *f.Quiz.Temperature
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"llm.timeout", f.LLM.Timeout, &l.Timeout},
		{"llm.retry.initial_wait", f.LLM.Retry.InitialWait, &l.Retry.InitialWait},
		{"llm.retry.max_wait", f.LLM.Retry.MaxWait, &l.Retry.MaxWait},
		{"quiz.timeout", f.Quiz.Timeout, &q.Timeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = v
	}
	return nil
}

func (p providerFile) mergeInto(key, model, baseURL *string) {
	setString(key, p.APIKey)
	setString(model, p.Model)
	if baseURL != nil {
		setString(baseURL, p.BaseURL)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
