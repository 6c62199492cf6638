// Package ghoutput publishes step outputs for later GitHub Actions steps.
package ghoutput

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// EnvVar names the file GitHub Actions collects step outputs from
const EnvVar = "GITHUB_OUTPUT"

// Write appends values to the GITHUB_OUTPUT file when it is configured.
func Write(values map[string]string) error {
	return WriteFile(strings.TrimSpace(os.Getenv(EnvVar)), values)
}

// WriteFile appends values to path as sorted key=value lines. An empty path
// is a no-op.
func WriteFile(path string, values map[string]string) error {
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open step output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, sanitize(values[key])); err != nil {
			return fmt.Errorf("failed to write step output %s: %w", key, err)
		}
	}
	return nil
}

func sanitize(value string) string {
	value = strings.ReplaceAll(value, "\r", "%0D")
	return strings.ReplaceAll(value, "\n", "%0A")
}
