package util

import (
	"fmt"
	"strings"
)

// FormatCount renders a counter the way the dashboard widgets do:
// 45892 -> "45.9K", 1200000 -> "1.2M". Values under a thousand pass through.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
