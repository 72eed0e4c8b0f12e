// Package display holds the pure computations behind badges, indicators
// and progress bars: expiry bands, usage percentages and size formatting.
package display

import (
	"fmt"
	"math"
	"time"
)

// Band classifies how close a date is to expiring.
type Band string

const (
	BandExpired Band = "expired"
	BandUrgent  Band = "urgent"
	BandWarning Band = "warning"
	BandHealthy Band = "healthy"
)

const (
	urgentDays  = 30
	warningDays = 60
)

// ExpiryInfo is the classified distance between now and an expiry date.
type ExpiryInfo struct {
	// Days is the number of whole days remaining, rounded up. Negative once
	// the date has passed.
	Days int
	Band Band
}

// Expiry computes days left as ceil((expiry - now) / 24h) and classifies it:
// below 0 is expired, 0-30 urgent, 31-60 warning, above 60 healthy.
func Expiry(expiry, now time.Time) ExpiryInfo {
	days := int(math.Ceil(expiry.Sub(now).Hours() / 24))
	return ExpiryInfo{Days: days, Band: bandFor(days)}
}

// ExpiryFromString parses a date in YYYY-MM-DD or RFC 3339 form and
// classifies it against now.
func ExpiryFromString(s string, now time.Time) (ExpiryInfo, error) {
	t, err := ParseDate(s)
	if err != nil {
		return ExpiryInfo{}, err
	}
	return Expiry(t, now), nil
}

func bandFor(days int) Band {
	switch {
	case days < 0:
		return BandExpired
	case days <= urgentDays:
		return BandUrgent
	case days <= warningDays:
		return BandWarning
	default:
		return BandHealthy
	}
}

// Overdue returns how many days ago the date passed, as a positive number.
// It is zero while the date is still ahead.
func (e ExpiryInfo) Overdue() int {
	if e.Days >= 0 {
		return 0
	}
	return -e.Days
}

// Label renders the indicator text, e.g. "12 days left" or
// "Expired 3 days ago".
func (e ExpiryInfo) Label() string {
	switch {
	case e.Days < 0:
		return fmt.Sprintf("Expired %s ago", plural(e.Overdue(), "day"))
	case e.Days == 0:
		return "Expires today"
	default:
		return fmt.Sprintf("%s left", plural(e.Days, "day"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// ParseDate accepts the date shapes the API uses: YYYY-MM-DD and RFC 3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}
