// Package config defines service configuration and its loading.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Result store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the asynchronous submission queue.
	QueueSize int `koanf:"queue_size"`
	// WorkerCount sets the number of submission workers.
	WorkerCount int `koanf:"worker_count"`
	// DedupeSize bounds the remembered submission ids.
	DedupeSize int `koanf:"dedupe_size"`

	// BatchParallelism bounds concurrent universities scored per candidate.
	BatchParallelism int `koanf:"batch_parallelism"`
	// MaxUniversitiesPerRequest caps universities in one request; 0 disables the cap.
	MaxUniversitiesPerRequest int `koanf:"max_universities_per_request"`

	// ConditionsFile, TablesFile and CutoffsFile locate the catalog data (YAML or JSON).
	ConditionsFile string `koanf:"conditions_file"`
	TablesFile     string `koanf:"tables_file"`
	CutoffsFile    string `koanf:"cutoffs_file"`

	// ResultStore selects memory or sqlite persistence.
	ResultStore string `koanf:"result_store"`
	// SQLitePath is the database file for the sqlite store.
	SQLitePath string `koanf:"sqlite_path"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                  "info",
		LogFormat:                 "text",
		Addr:                      ":9080",
		QueueSize:                 10_000,
		WorkerCount:               runtime.NumCPU(),
		DedupeSize:                100_000,
		BatchParallelism:          runtime.NumCPU() * 2,
		MaxUniversitiesPerRequest: 500,
		ConditionsFile:            "data/conditions.yaml",
		TablesFile:                "data/tables.yaml",
		CutoffsFile:               "data/cutoffs.yaml",
		ResultStore:               StoreMemory,
		SQLitePath:                "admitscore.db",
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.BatchParallelism <= 0:
		return fmt.Errorf("%w: batch_parallelism must be positive", ErrInvalidConfig)
	case c.MaxUniversitiesPerRequest < 0:
		return fmt.Errorf("%w: max_universities_per_request must not be negative", ErrInvalidConfig)
	case c.ConditionsFile == "":
		return fmt.Errorf("%w: conditions_file must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.ResultStore) {
	case StoreMemory:
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path required for sqlite store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownStore, c.ResultStore)
	}
	return nil
}
