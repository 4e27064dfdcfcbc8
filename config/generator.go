package config

import "time"

type GeneratorCfg struct {
	// KeyPrefix is the cache-key namespace for feed snapshots.
	// Keys look like "ai-news:2025-01-15-14:count-8".
	KeyPrefix string `yaml:"key_prefix"`

	// MaxRounds bounds generation rounds per request.
	MaxRounds int `yaml:"max_rounds"`

	// Surplus is how many extra items each round requests beyond the
	// remaining quota, absorbing expected duplicate-filtering loss.
	Surplus int `yaml:"surplus"`

	// MaxPerRound caps a single round's request size regardless of
	// quota, bounding prompt cost.
	MaxPerRound int `yaml:"max_per_round"`

	// SnapshotTTL is the fixed cache lifetime of a generated feed
	// snapshot. Deliberately shorter than any hotness band: the feed
	// bucket must refresh faster than a single popular article.
	// Example: "30m".
	SnapshotTTL time.Duration `yaml:"snapshot_ttl"`

	// SourceHost is the host used when synthesizing a source URL for
	// items the model returned without one.
	SourceHost string `yaml:"source_host"`
}

func (cfg *GeneratorCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *GeneratorCfg) adjust() {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "ai-news"
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = 3
	}
	if cfg.Surplus <= 0 {
		cfg.Surplus = 5
	}
	if cfg.MaxPerRound <= 0 {
		cfg.MaxPerRound = 30
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = 30 * time.Minute
	}
	if cfg.SourceHost == "" {
		cfg.SourceHost = "news.newspulse.ai"
	}
}
