package tusclient

import (
	"strings"
	"time"

	"github.com/auriora/tusup/pkg/errors"
	"github.com/auriora/tusup/pkg/logging"
)

const (
	maxChunkSize          = 100 * 1024 * 1024
	defaultRequestTimeout = 30 * time.Second
	defaultLogLevel       = "info"
)

// TusConfig holds every tunable the engine recognizes. Zero-value configs
// are not usable; build one with NewTusConfig and the With* mutators, then
// call Validate before passing it to Open/NewManager.
type TusConfig struct {
	Endpoint        string            `json:"endpoint"`
	Headers         map[string]string `json:"headers,omitempty"`
	MaxConcurrent   int               `json:"max_concurrent"`
	ChunkSize       int64             `json:"chunk_size"`
	MaxRetries      int               `json:"max_retries"`
	RetryDelay      time.Duration     `json:"retry_delay"`
	StateDir        string            `json:"state_dir"`
	BufferSize      int64             `json:"buffer_size"`
	RequestTimeout  time.Duration     `json:"request_timeout"`
	LogLevel        string            `json:"log_level"`
}

// NewTusConfig returns a config with default values for every field
// except Endpoint and StateDir, which the caller must supply.
func NewTusConfig(endpoint, stateDir string) TusConfig {
	return TusConfig{
		Endpoint:       endpoint,
		MaxConcurrent:  3,
		ChunkSize:      4 * 1024 * 1024,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		StateDir:       stateDir,
		BufferSize:     4 * 1024 * 1024,
		RequestTimeout: defaultRequestTimeout,
		LogLevel:       defaultLogLevel,
	}
}

// WithHeaders sets additional headers merged into every outbound request.
func (c TusConfig) WithHeaders(headers map[string]string) TusConfig {
	c.Headers = headers
	return c
}

// WithMaxConcurrent sets the admission capacity.
func (c TusConfig) WithMaxConcurrent(n int) TusConfig {
	c.MaxConcurrent = n
	return c
}

// WithChunkSize sets the transfer granularity in bytes.
func (c TusConfig) WithChunkSize(n int64) TusConfig {
	c.ChunkSize = n
	return c
}

// WithMaxRetries sets the per-chunk retry budget.
func (c TusConfig) WithMaxRetries(n int) TusConfig {
	c.MaxRetries = n
	return c
}

// WithRetryDelay sets the base delay for exponential backoff.
func (c TusConfig) WithRetryDelay(d time.Duration) TusConfig {
	c.RetryDelay = d
	return c
}

// WithBufferSize sets the read-ahead buffer size.
func (c TusConfig) WithBufferSize(n int64) TusConfig {
	c.BufferSize = n
	return c
}

// WithRequestTimeout sets the per-HTTP-request timeout.
func (c TusConfig) WithRequestTimeout(d time.Duration) TusConfig {
	c.RequestTimeout = d
	return c
}

// WithLogLevel sets the minimum severity the engine's logger emits at.
func (c TusConfig) WithLogLevel(level string) TusConfig {
	c.LogLevel = level
	return c
}

// Validate fails with a Config error naming the first violated rule.
func (c TusConfig) Validate() error {
	if c.Endpoint == "" {
		return errors.NewConfigError("endpoint must not be empty", nil)
	}
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return errors.NewConfigError("endpoint must begin with http:// or https://", nil)
	}
	if c.MaxConcurrent < 1 {
		return errors.NewConfigError("max_concurrent must be >= 1", nil)
	}
	if c.ChunkSize < 1 || c.ChunkSize > maxChunkSize {
		return errors.NewConfigError("chunk_size must be between 1 byte and 100 MiB", nil)
	}
	if c.MaxRetries < 0 {
		return errors.NewConfigError("max_retries must be >= 0", nil)
	}
	if c.StateDir == "" {
		return errors.NewConfigError("state_dir must not be empty", nil)
	}
	if c.BufferSize < 1 || c.BufferSize > c.ChunkSize {
		return errors.NewConfigError("buffer_size must be between 1 byte and chunk_size", nil)
	}
	if c.RequestTimeout <= 0 {
		return errors.NewConfigError("request_timeout must be > 0", nil)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.NewConfigError("log_level is not a recognized level", err)
	}
	return nil
}
