package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback float64
		want     float64
	}{
		{name: "plain decimal", raw: "3.14", fallback: 7.7, want: 3.14},
		{name: "integer", raw: "42", fallback: 0, want: 42},
		{name: "surrounding whitespace", raw: "  19.5  ", fallback: 0, want: 19.5},
		{name: "scientific notation", raw: "1e3", fallback: 0, want: 1000},
		{name: "negative is kept", raw: "-5", fallback: 0, want: -5},
		{name: "garbage falls back", raw: "abc", fallback: 7.7, want: 7.7},
		{name: "empty falls back", raw: "", fallback: 7.7, want: 7.7},
		{name: "not-a-number falls back", raw: "NaN", fallback: 7.7, want: 7.7},
		{name: "infinity falls back", raw: "Inf", fallback: 7.7, want: 7.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParsePrice(tt.raw, tt.fallback))
		})
	}
}
