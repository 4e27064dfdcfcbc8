package config

import "time"

type DedupeCfg struct {
	// SetKey names the single durable set holding title hashes.
	SetKey string `yaml:"set_key"`

	// Window is the rolling expiry of the whole set. Every session that
	// records at least one hash resets it; members never expire
	// individually. Example: "24h".
	Window time.Duration `yaml:"window"`
}

func (cfg *DedupeCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *DedupeCfg) adjust() {
	if cfg.SetKey == "" {
		cfg.SetKey = "ai-news:title-hashes"
	}
	if cfg.Window <= 0 {
		cfg.Window = 24 * time.Hour
	}
}
