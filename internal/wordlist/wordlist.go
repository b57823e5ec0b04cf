// Package wordlist loads newline-delimited candidate files.
package wordlist

import (
	"fmt"
	"os"
	"strings"

	"rtkit/pkg/config"
)

// Load reads path into an ordered list of candidates, one per line.
//
// A trailing "\r" is stripped from each line and empty fields at the end of
// the file are dropped, so a final newline never yields an extra candidate.
// Blank lines inside the file are kept as empty-string candidates unless
// skipBlank is set.
func Load(path string, skipBlank bool) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading wordlist %s: %v", config.ErrInvalid, path, err)
	}
	return Split(string(data), skipBlank), nil
}

// Split breaks text into lines using the same rules as Load.
func Split(text string, skipBlank bool) []string {
	fields := strings.Split(text, "\n")
	for i, f := range fields {
		fields[i] = strings.TrimSuffix(f, "\r")
	}

	// Trailing empties carry no candidates.
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}

	if !skipBlank {
		return fields
	}

	lines := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		lines = append(lines, f)
	}
	return lines
}
