// Package config defines the service configuration and how it is loaded.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// QueueSize bounds the in-memory evaluation ingest queue.
	QueueSize int `koanf:"queue_size" validate:"gt=0"`

	// WorkerCount sets the number of ingest workers. 0 selects NumCPU*2.
	WorkerCount int `koanf:"worker_count" validate:"gte=0"`

	// DedupeSize bounds the evaluation id dedupe set. 0 means unbounded.
	DedupeSize int `koanf:"dedupe_size" validate:"gte=0"`

	// ShardCount configures the number of shards in the learner store.
	ShardCount int `koanf:"shard_count" validate:"gt=0"`

	// MaxHistory caps the evaluations kept per learner.
	MaxHistory int `koanf:"max_history" validate:"gt=0"`

	// BatchConcurrency bounds the goroutines used by batch forecasts.
	BatchConcurrency int `koanf:"batch_concurrency" validate:"gt=0"`

	// CatalogPath optionally points at a YAML exercise catalog replacing
	// the built-in one.
	CatalogPath string `koanf:"catalog_path"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		QueueSize:        10_000,
		WorkerCount:      runtime.NumCPU() * 2,
		DedupeSize:       100_000,
		ShardCount:       8,
		MaxHistory:       120,
		BatchConcurrency: 8,
	}
}
