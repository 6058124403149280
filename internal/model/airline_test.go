package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolveAirlineName verifies the fallback chain: API name, then the
// carrier-prefix table, then the generic placeholders.
func TestResolveAirlineName(t *testing.T) {
	tests := []struct {
		name         string
		apiName      string
		flightNumber string
		expected     string
	}{
		{"api name wins", "Scoot", "TR12", "Scoot"},
		{"empty api name falls back to table", "", "SQ327", "Singapore Airlines"},
		{"literal None counts as absent", "None", "BA929", "British Airways"},
		{"unmapped prefix", "", "ZZ100", "Airline (ZZ)"},
		{"no prefix at all", "", "327", "Unknown Airline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveAirlineName(tt.apiName, tt.flightNumber))
		})
	}
}
