package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "single element",
			input:    []string{"html"},
			expected: []string{"html"},
		},
		{
			name:     "lowercases and dedupes",
			input:    []string{"Html", "html", "HTML"},
			expected: []string{"html"},
		},
		{
			name:     "trims, lowercases, and dedupes preserving order",
			input:    []string{"  HTML ", "csv", "Html", "CSV"},
			expected: []string{"html", "csv"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"html", "", "  ", "geojson"},
			expected: []string{"html", "geojson"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrimLower(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
