package config

import "time"

type LLMCfg struct {
	// Endpoint is the chat-completions URL of an OpenAI-compatible API.
	Endpoint string `yaml:"endpoint"`

	// APIKey is sent as a bearer token. Normally supplied via
	// NEWSGEN_LLM_API_KEY, not YAML.
	APIKey string `yaml:"api_key"`

	Model string `yaml:"model"`

	// Temperature and TopP are kept low: the engine expects structured
	// JSON back, not prose.
	Temperature float64 `yaml:"temperature"`
	TopP        float64 `yaml:"top_p"`

	// Timeout bounds a single request, not the whole retry sequence.
	// Example: "10s".
	Timeout time.Duration `yaml:"timeout"`

	// MaxAttempts bounds retries per call. Every call retries
	// independently; there is no circuit breaker.
	MaxAttempts int `yaml:"max_attempts"`

	// BackoffBase is the first retry delay; subsequent delays double.
	// Example: "1s" -> 1s, 2s, 4s.
	BackoffBase time.Duration `yaml:"backoff_base"`

	// RequestsPerSec paces outgoing calls across the process.
	// Example: 2.
	RequestsPerSec int `yaml:"requests_per_sec"`
}

func (cfg *LLMCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *LLMCfg) adjust() {
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.2
	}
	if cfg.TopP <= 0 {
		cfg.TopP = 0.9
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 2
	}
}
