package config

import "time"

type CacheCfg struct {
	// Redis configures the durable tier.
	Redis RedisCfg `yaml:"redis"`

	// Memory configures the in-process fallback tier.
	Memory MemoryCfg `yaml:"memory"`

	// DefaultTTL is applied when a write carries no explicit TTL
	// and no hotness inputs. Example: "30m".
	DefaultTTL time.Duration `yaml:"default_ttl"`

	// Warmup configures cache pre-population at process start.
	// If nil, the engine starts cold.
	Warmup *WarmupCfg `yaml:"warmup"`
}

type RedisCfg struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	// DialTimeout bounds the initial connection attempt; an unreachable
	// durable tier must degrade, not block startup. Example: "2s".
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

type MemoryCfg struct {
	// SweepInterval is how often the background sweeper evicts expired
	// entries. The sweep is the only remover besides explicit overwrite
	// and delete. Example: "60s".
	SweepInterval time.Duration `yaml:"sweep_interval"`

	// FallbackEnabled keeps the in-process tier serving reads while the
	// durable tier is unavailable. Disabling it turns every durable-tier
	// outage into a cold cache.
	FallbackEnabled bool `yaml:"fallback_enabled"`
}

type WarmupCfg struct {
	// BatchSize is how many items a single warm-up batch writes
	// concurrently. Example: 10.
	BatchSize int `yaml:"batch_size"`
}

func (cfg *CacheCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *WarmupCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *CacheCfg) adjust() {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 30 * time.Minute
	}
	if cfg.Memory.SweepInterval <= 0 {
		cfg.Memory.SweepInterval = 60 * time.Second
	}
	if cfg.Redis.DialTimeout <= 0 {
		cfg.Redis.DialTimeout = 2 * time.Second
	}
	if cfg.Warmup.Enabled() && cfg.Warmup.BatchSize <= 0 {
		cfg.Warmup.BatchSize = 10
	}
}
