package domain

import (
	"math"
	"strconv"
	"strings"
)

// ParsePrice coerces untrusted text into a price. Surrounding whitespace is
// ignored. When the text is not a finite number the fallback is returned;
// the caller decides what that is (0 for a new listing, the current price
// for an edit).
func ParsePrice(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
