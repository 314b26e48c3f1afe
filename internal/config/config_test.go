package config

import (
	"strings"
	"testing"
)

// TestDefaultConfig verifies that DefaultConfig returns expected values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Global settings
	if cfg.CataloguePath != "" {
		t.Errorf("Expected empty catalogue_path, got %s", cfg.CataloguePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log_level 'info', got %s", cfg.LogLevel)
	}
	if cfg.Verbose {
		t.Error("Expected verbose to be false")
	}

	// Decode defaults
	if cfg.Decode.FNC1Prefix != "]C1" {
		t.Errorf("Expected fnc1_prefix ']C1', got %s", cfg.Decode.FNC1Prefix)
	}
	if cfg.Decode.Separator != "\x1d" {
		t.Errorf("Expected separator GS (0x1d), got %q", cfg.Decode.Separator)
	}

	// Output defaults
	if cfg.Output.Format != "text" {
		t.Errorf("Expected output format 'text', got %s", cfg.Output.Format)
	}

	// Server defaults
	if cfg.Server.Host != "localhost" {
		t.Errorf("Expected server host 'localhost', got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected server port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxBatchSize != 100 {
		t.Errorf("Expected max_batch_size 100, got %d", cfg.Server.MaxBatchSize)
	}
	if cfg.Server.RateLimitEnabled {
		t.Error("Expected rate limiting to be disabled by default")
	}
}

// TestDefaultConfigValidates verifies the defaults pass validation.
func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

// TestValidate exercises the validation rules section by section.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "trace" },
			wantErr: "invalid log level",
		},
		{
			name:    "empty fnc1 prefix",
			mutate:  func(c *Config) { c.Decode.FNC1Prefix = "" },
			wantErr: "fnc1_prefix must not be empty",
		},
		{
			name:    "empty separator",
			mutate:  func(c *Config) { c.Decode.Separator = "" },
			wantErr: "separator must not be empty",
		},
		{
			name: "separator equals prefix",
			mutate: func(c *Config) {
				c.Decode.FNC1Prefix = "#"
				c.Decode.Separator = "#"
			},
			wantErr: "must be distinct",
		},
		{
			name:    "invalid output format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "invalid output format",
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid port number",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid port number",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.TimeoutSec = 0 },
			wantErr: "invalid request timeout",
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.Server.ShutdownTimeout = 0 },
			wantErr: "invalid shutdown timeout",
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.Server.MaxBatchSize = 0 },
			wantErr: "invalid max batch size",
		},
		{
			name: "rate limiting with zero limits",
			mutate: func(c *Config) {
				c.Server.RateLimitEnabled = true
				c.Server.RequestsPerMinute = 0
			},
			wantErr: "rate limits must be positive",
		},
		{
			name: "rate limiting with zero data quota",
			mutate: func(c *Config) {
				c.Server.RateLimitEnabled = true
				c.Server.MaxDataPerDay = 0
			},
			wantErr: "max_data_per_day must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestValidateAllowsMultiByteSeparator verifies unusual but legal separators.
func TestValidateAllowsMultiByteSeparator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Decode.Separator = "||"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}
