// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5002".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory change feed queue.
	QueueSize int `koanf:"queue_size"`

	// SeedFile optionally names a YAML file with the initial posts.
	// Empty selects the built-in starter posts.
	SeedFile string `koanf:"seed_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		Addr:      ":5002",
		QueueSize: 1024,
		SeedFile:  "",
	}
}

// validate reports the first structural problem with the config.
func (c *Config) validate() error {
	if c.Addr == "" {
		return wrapInvalid("addr must not be empty")
	}
	if c.QueueSize < 1 {
		return wrapInvalid("queue_size must be at least 1")
	}
	return nil
}
