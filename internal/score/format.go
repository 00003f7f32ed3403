package score

import (
	"fmt"
	"math"
)

// DefaultCloseThreshold marks a stop within 50ms of the target as close.
const DefaultCloseThreshold = 0.05

// FormatDelta renders a signed delta with four decimals, e.g. "+0.0021s".
func FormatDelta(delta float64) string {
	if delta >= 0 {
		return fmt.Sprintf("+%.4fs", delta)
	}
	return fmt.Sprintf("%.4fs", delta)
}

// FormatSeconds renders seconds with four decimals, e.g. "3.0021s".
func FormatSeconds(s float64) string {
	return fmt.Sprintf("%.4fs", s)
}

// IsClose reports whether |delta| is strictly below threshold.
func IsClose(delta, threshold float64) bool {
	return math.Abs(delta) < threshold
}
