package display

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Level is the severity of a usage percentage.
type Level string

const (
	LevelOK      Level = "ok"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// UsagePercent returns round(used / limit * 100). A zero or negative limit
// yields 0 rather than an infinite or undefined percentage.
func UsagePercent(used, limit float64) int {
	if limit <= 0 {
		return 0
	}
	pct := math.Round(used / limit * 100)
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return int(pct)
}

// UsageLevel maps a percentage to a severity: 90 and above is danger, 70
// and above is warning.
func UsageLevel(percent int) Level {
	switch {
	case percent >= 90:
		return LevelDanger
	case percent >= 70:
		return LevelWarning
	default:
		return LevelOK
	}
}

const gib = 1024 * 1024 * 1024

// FormatBytes renders a byte count in GB with one decimal, switching to TB
// once the GB figure reaches 1000.
func FormatBytes(b int64) string {
	gb := float64(b) / gib
	if gb >= 1000 {
		return fmt.Sprintf("%.1f TB", gb/1024)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

// FormatMB renders a megabyte quantity as GB with one decimal.
func FormatMB(mb float64) string {
	return fmt.Sprintf("%.1f GB", mb/1024)
}

// Count renders an integer with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// Relative renders a date relative to now ("3 days ago"). A value that fails to
// parse is returned as-is; an empty one renders as "never".
func Relative(s string) string {
	if s == "" {
		return "never"
	}
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return humanize.RelTime(t, time.Now(), "ago", "from now")
}
