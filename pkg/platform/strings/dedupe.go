// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrimLower normalizes a list of user-supplied names: trims
// whitespace, lowercases, drops empties and duplicates. Order is preserved.
//
// Example:
//
//	DedupeAndTrimLower([]string{"  HTML ", "csv", "Html", ""})
//	// Returns: []string{"html", "csv"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
