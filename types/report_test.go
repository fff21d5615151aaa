package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentComplete(t *testing.T) {
	tests := []struct {
		name      string
		collected string
		expected  string
		want      float64
	}{
		{"fully collected", "500", "500", 100},
		{"partially collected", "40", "100", 40},
		{"zero expected yields zero", "250", "0", 0},
		{"negative expected yields zero", "250", "-10", 0},
		{"nothing collected", "0", "800", 0},
		{"over-collected exceeds hundred", "150", "100", 150},
		{"fractional amounts", "33.33", "100", 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collected := decimal.RequireFromString(tt.collected)
			expected := decimal.RequireFromString(tt.expected)
			assert.InDelta(t, tt.want, PercentComplete(collected, expected), 0.0001)
		})
	}
}
