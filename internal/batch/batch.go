package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
)

// ProcessBatch decodes every barcode line in the given scan files or
// directories with the configured worker pool.
func ProcessBatch(paths []string, scanner *gs1.Scanner, config *Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	files, err := discoverScanFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover scan files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no scan files found")
	}

	entries, err := readScanEntries(files)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("scan files contain no barcodes")
	}

	startTime := time.Now()
	items := decodeParallel(scanner, entries, config.Workers)
	duration := time.Since(startTime)

	result := &Result{
		Items:       items,
		Files:       files,
		Duration:    duration,
		WorkerCount: config.Workers,
	}
	for _, item := range items {
		if item.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	return result, nil
}
