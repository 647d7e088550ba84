package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// readListFile reads batch sources: one file, directory or glob per line.
// Blank lines and lines starting with # are skipped.
func readListFile(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided list file
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadListFile, err)
	}
	defer func() { _ = f.Close() }()

	var sources []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadListFile, path, err)
	}
	return sources, nil
}
