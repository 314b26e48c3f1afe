// Package batch decodes scan log files in bulk. Hardware scanners and
// warehouse systems typically append one element string per line to a
// log file; this package discovers such files, decodes every line on a
// worker pool, and aggregates the outcomes.
package batch

import (
	"fmt"
	"runtime"
	"time"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
)

// Config holds all configuration for batch decoding.
type Config struct {
	// Parallel processing settings
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Output settings
	Format     string
	OutputFile string
	Quiet      bool
	ShowStats  bool
}

// DefaultConfig returns a batch configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:         runtime.NumCPU(),
		IncludePatterns: []string{"*.txt", "*.log"},
		Format:          "text",
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid format: %s (must be one of: text, json, csv)", c.Format)
	}
	return nil
}

// Item is the outcome of decoding a single scanned line.
type Item struct {
	File    string
	Line    int
	Barcode string
	Result  *gs1.DecodeResult
	Err     error
}

// Result holds the outcome of a batch run.
type Result struct {
	Items       []Item
	Files       []string
	Succeeded   int
	Failed      int
	Duration    time.Duration
	WorkerCount int
}
