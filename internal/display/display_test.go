package display

import (
	"math"
	"testing"
	"time"
)

func TestExpiry_Boundaries(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		days int
		want Band
	}{
		{-1, BandExpired},
		{0, BandUrgent},
		{30, BandUrgent},
		{31, BandWarning},
		{60, BandWarning},
		{61, BandHealthy},
	}

	for _, tt := range tests {
		got := Expiry(now.AddDate(0, 0, tt.days), now)
		if got.Days != tt.days {
			t.Errorf("days=%d: Days = %d", tt.days, got.Days)
		}
		if got.Band != tt.want {
			t.Errorf("days=%d: Band = %q, want %q", tt.days, got.Band, tt.want)
		}
	}
}

func TestExpiry_RoundsPartialDaysUp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Twelve hours ahead counts as one day left.
	if got := Expiry(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), now); got.Days != 1 {
		t.Errorf("Days = %d, want 1", got.Days)
	}
	// Twelve hours behind rounds up to zero: still today.
	got := Expiry(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), now)
	if got.Days != 0 || got.Band != BandUrgent {
		t.Errorf("got %+v, want 0 days urgent", got)
	}
}

func TestExpiryInfo_OverdueAndLabel(t *testing.T) {
	tests := []struct {
		info    ExpiryInfo
		overdue int
		label   string
	}{
		{ExpiryInfo{Days: -1}, 1, "Expired 1 day ago"},
		{ExpiryInfo{Days: -12}, 12, "Expired 12 days ago"},
		{ExpiryInfo{Days: 0}, 0, "Expires today"},
		{ExpiryInfo{Days: 1}, 0, "1 day left"},
		{ExpiryInfo{Days: 45}, 0, "45 days left"},
	}
	for _, tt := range tests {
		if got := tt.info.Overdue(); got != tt.overdue {
			t.Errorf("Days=%d: Overdue() = %d, want %d", tt.info.Days, got, tt.overdue)
		}
		if got := tt.info.Label(); got != tt.label {
			t.Errorf("Days=%d: Label() = %q, want %q", tt.info.Days, got, tt.label)
		}
	}
}

func TestExpiryFromString(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := ExpiryFromString("2026-01-31", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Days != 30 || got.Band != BandUrgent {
		t.Errorf("got %+v", got)
	}

	if _, err := ExpiryFromString("31/01/2026", now); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestUsagePercent(t *testing.T) {
	tests := []struct {
		used, limit float64
		want        int
	}{
		{0, 15360, 0},
		{15360, 15360, 100},
		{7680, 15360, 50},
		{1, 3, 33},
		{2, 3, 67},
		{500, 0, 0},
		{0, 0, 0},
		{10, -5, 0},
		{math.Inf(1), 10, 0},
	}
	for _, tt := range tests {
		if got := UsagePercent(tt.used, tt.limit); got != tt.want {
			t.Errorf("UsagePercent(%v, %v) = %d, want %d", tt.used, tt.limit, got, tt.want)
		}
	}
}

func TestUsageLevel(t *testing.T) {
	tests := map[int]Level{0: LevelOK, 69: LevelOK, 70: LevelWarning, 89: LevelWarning, 90: LevelDanger, 100: LevelDanger}
	for pct, want := range tests {
		if got := UsageLevel(pct); got != want {
			t.Errorf("UsageLevel(%d) = %q, want %q", pct, got, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0.0 GB"},
		{gib / 2, "0.5 GB"},
		{100 * gib, "100.0 GB"},
		{999 * gib, "999.0 GB"},
		{1000 * gib, "1.0 TB"},
		{2048 * gib, "2.0 TB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMBAndCount(t *testing.T) {
	if got := FormatMB(15360); got != "15.0 GB" {
		t.Errorf("FormatMB = %q", got)
	}
	if got := Count(1234567); got != "1,234,567" {
		t.Errorf("Count = %q", got)
	}
}

func TestRelative(t *testing.T) {
	if got := Relative(""); got != "never" {
		t.Errorf("Relative(\"\") = %q", got)
	}
	if got := Relative("yesterday-ish"); got != "yesterday-ish" {
		t.Errorf("unparseable value should pass through, got %q", got)
	}
	past := time.Now().Add(-72 * time.Hour).UTC().Format(time.RFC3339)
	if got := Relative(past); got != "3 days ago" {
		t.Errorf("Relative(%q) = %q", past, got)
	}
}
