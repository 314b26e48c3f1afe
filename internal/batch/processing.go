package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
)

// scanEntry is one line of a scan log awaiting decoding.
type scanEntry struct {
	file    string
	line    int
	barcode string
}

// readScanEntries reads one barcode per line from each file. Blank lines
// and lines starting with '#' are skipped.
func readScanEntries(files []string) ([]scanEntry, error) {
	var entries []scanEntry

	for _, file := range files {
		f, err := os.Open(file) //nolint:gosec // G304: paths come from CLI arguments
		if err != nil {
			return nil, fmt.Errorf("opening scan file %s: %w", file, err)
		}

		lineNo := 0
		s := bufio.NewScanner(f)
		for s.Scan() {
			lineNo++
			line := strings.TrimRight(s.Text(), "\r")
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			entries = append(entries, scanEntry{file: file, line: lineNo, barcode: line})
		}
		scanErr := s.Err()
		_ = f.Close()
		if scanErr != nil {
			return nil, fmt.Errorf("reading scan file %s: %w", file, scanErr)
		}
	}

	return entries, nil
}

// decodeParallel decodes entries on a worker pool, preserving input order.
func decodeParallel(scanner *gs1.Scanner, entries []scanEntry, workers int) []Item {
	items := make([]Item, len(entries))

	if workers > len(entries) {
		workers = len(entries)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entry := entries[i]
				res, err := scanner.Decode(entry.barcode).Get()
				items[i] = Item{
					File:    entry.file,
					Line:    entry.line,
					Barcode: entry.barcode,
					Result:  res,
					Err:     err,
				}
			}
		}()
	}

	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return items
}
