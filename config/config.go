package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config groups configuration of all engine subsystems. Cache, LLM, Dedupe
// and Generator are required by the engine facade; only Telemetry may be left
// nil, which disables stats logging.
type Config struct {
	Cache     *CacheCfg     `yaml:"cache"`
	LLM       *LLMCfg       `yaml:"llm"`
	Dedupe    *DedupeCfg    `yaml:"dedupe"`
	Generator *GeneratorCfg `yaml:"generator"`

	// Telemetry configures the periodic stats logger.
	// If nil, no stats are logged.
	Telemetry *TelemetryCfg `yaml:"telemetry"`
}

type TelemetryCfg struct {
	// Interval between stats log lines. Example: "30s".
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}

// AdjustConfig fills derived and defaulted fields after YAML/env loading.
func (cfg *Config) AdjustConfig() {
	if cfg.Cache.Enabled() {
		cfg.Cache.adjust()
	}
	if cfg.LLM.Enabled() {
		cfg.LLM.adjust()
	}
	if cfg.Dedupe.Enabled() {
		cfg.Dedupe.adjust()
	}
	if cfg.Generator.Enabled() {
		cfg.Generator.adjust()
	}
	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = 30 * time.Second
	}
}

// LoadConfig reads the YAML config at path, layers .env and process
// environment overrides on top (secrets and hosts never live in YAML),
// then computes derived fields.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.AdjustConfig()

	return cfg, nil
}

func (cfg *Config) applyEnv() {
	if cfg.LLM.Enabled() {
		cfg.LLM.APIKey = getEnvOrDefault("NEWSGEN_LLM_API_KEY", cfg.LLM.APIKey)
		cfg.LLM.Endpoint = getEnvOrDefault("NEWSGEN_LLM_ENDPOINT", cfg.LLM.Endpoint)
		cfg.LLM.Model = getEnvOrDefault("NEWSGEN_LLM_MODEL", cfg.LLM.Model)
	}
	if cfg.Cache.Enabled() {
		cfg.Cache.Redis.Addr = getEnvOrDefault("NEWSGEN_REDIS_ADDR", cfg.Cache.Redis.Addr)
		cfg.Cache.Redis.Password = getEnvOrDefault("NEWSGEN_REDIS_PASSWORD", cfg.Cache.Redis.Password)
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
