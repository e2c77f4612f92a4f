package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Loader loads newline-delimited domain lists.
// Lines are trimmed and blank lines skipped; there is no comment syntax.
type Loader struct{}

// NewLoader creates loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads domains from file, keeping their original casing
func (l *Loader) Load(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	domains, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	return domains, nil
}

// Read loads domains from r
func (l *Loader) Read(r io.Reader) ([]string, error) {
	var domains []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		domains = append(domains, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return domains, nil
}
