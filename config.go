package influxc

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	// Server is the connection target.
	Server Server `yaml:"server"`

	// Credentials for HTTP basic auth. Zero means unauthenticated.
	Credentials Credentials `yaml:"credentials,omitempty"`

	// Timeout is the per-request timeout.
	// Default: 30 seconds.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent is sent with each request.
	// Default: "influxc".
	UserAgent string `yaml:"user_agent,omitempty"`

	// Batch configures the background batching writer.
	Batch BatchConfig `yaml:"batch,omitempty"`

	// Spool configures the durable spool for failed write batches.
	// An empty Path disables spooling.
	Spool SpoolConfig `yaml:"spool,omitempty"`
}

// BatchConfig groups batching writer settings.
type BatchConfig struct {
	// BatchSize is the number of points collected per flush.
	// Default: 1000.
	BatchSize int `yaml:"batch_size,omitempty"`

	// FlushInterval is how often queued points are flushed.
	// Default: 10 seconds.
	FlushInterval time.Duration `yaml:"flush_interval,omitempty"`

	// MaxQueueSize bounds the in-memory point queue.
	// Default: 100,000.
	MaxQueueSize int `yaml:"max_queue_size,omitempty"`
}

// SpoolConfig groups durable spool settings.
type SpoolConfig struct {
	// Path is the SQLite file backing the spool. Empty disables spooling.
	Path string `yaml:"path,omitempty"`

	// BusyTimeout is the SQLite lock acquisition timeout in milliseconds.
	// Default: 5000.
	BusyTimeout int `yaml:"busy_timeout,omitempty"`

	// MaxBatches bounds the number of spooled batches. Oldest batches are
	// dropped when the bound is exceeded. 0 means unlimited.
	MaxBatches int `yaml:"max_batches,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults, targeting
// localhost:8086 without TLS or credentials.
func DefaultConfig() Config {
	return Config{
		Server:    DefaultServer(),
		Timeout:   30 * time.Second,
		UserAgent: "influxc",
		Batch: BatchConfig{
			BatchSize:     1000,
			FlushInterval: 10 * time.Second,
			MaxQueueSize:  100_000,
		},
		Spool: SpoolConfig{
			BusyTimeout: 5000,
		},
	}
}

// LoadConfig reads a YAML configuration file. Fields absent from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize fills zero fields with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.Batch.BatchSize <= 0 {
		c.Batch.BatchSize = def.Batch.BatchSize
	}
	if c.Batch.FlushInterval <= 0 {
		c.Batch.FlushInterval = def.Batch.FlushInterval
	}
	if c.Batch.MaxQueueSize <= 0 {
		c.Batch.MaxQueueSize = def.Batch.MaxQueueSize
	}
	if c.Spool.BusyTimeout <= 0 {
		c.Spool.BusyTimeout = def.Spool.BusyTimeout
	}
}
