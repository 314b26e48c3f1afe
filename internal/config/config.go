package config

import (
	"fmt"
	"strings"
)

// Valid output formats for decode results.
var validOutputFormats = []string{"text", "json", "csv"}

// Valid log levels.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		CataloguePath: "",
		LogLevel:      "info",
		Verbose:       false,
		Decode: DecodeConfig{
			FNC1Prefix: "]C1",
			Separator:  "\x1d",
		},
		Output: OutputConfig{
			Format: "text",
			File:   "",
		},
		Server: ServerConfig{
			Host:              "localhost",
			Port:              8080,
			CORSOrigin:        "*",
			TimeoutSec:        30,
			ShutdownTimeout:   10,
			MaxBatchSize:      100,
			RateLimitEnabled:  false,
			RequestsPerMinute: 60,
			RequestsPerHour:   1000,
			MaxRequestsPerDay: 5000,
			MaxDataPerDay:     100 * 1024 * 1024,
		},
	}
}

// Validate checks the configuration for inconsistent or out-of-range values.
func (c *Config) Validate() error {
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if err := c.Decode.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}

// Validate checks decoding settings.
func (c *DecodeConfig) Validate() error {
	if c.FNC1Prefix == "" {
		return fmt.Errorf("fnc1_prefix must not be empty")
	}
	if c.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}
	if c.Separator == c.FNC1Prefix {
		return fmt.Errorf("separator must be distinct from fnc1_prefix %q", c.FNC1Prefix)
	}
	return nil
}

// Validate checks output settings.
func (c *OutputConfig) Validate() error {
	if !contains(validOutputFormats, c.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)",
			c.Format, strings.Join(validOutputFormats, ", "))
	}
	return nil
}

// Validate checks server settings.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", c.Port)
	}
	if c.TimeoutSec <= 0 {
		return fmt.Errorf("invalid request timeout: %d (must be positive)", c.TimeoutSec)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %d (must be positive)", c.ShutdownTimeout)
	}
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("invalid max batch size: %d (must be at least 1)", c.MaxBatchSize)
	}
	if c.RateLimitEnabled {
		if c.RequestsPerMinute < 1 || c.RequestsPerHour < 1 || c.MaxRequestsPerDay < 1 {
			return fmt.Errorf("rate limits must be positive when rate limiting is enabled")
		}
		if c.MaxDataPerDay < 1 {
			return fmt.Errorf("max_data_per_day must be positive when rate limiting is enabled")
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
