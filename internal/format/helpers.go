package format

import (
	"fmt"
	"time"
)

// FmtPercent formats a rate in [0,1] as a percentage with one decimal.
func FmtPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// FmtConfidence formats a confidence score with two decimals.
func FmtConfidence(c float64) string {
	return fmt.Sprintf("%.2f", c)
}

// FmtDuration formats a processing duration at a readable precision:
// sub-second durations in milliseconds, longer ones in seconds.
func FmtDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
