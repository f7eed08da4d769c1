package timeutil

import (
	"testing"
	"time"
)

func TestFormats(t *testing.T) {
	t.Parallel()

	jst := time.FixedZone("JST", 9*3600)
	ts := time.Date(2026, 3, 15, 18, 30, 45, 120_000_000, jst)

	if got := FormatDate(ts); got != "2026-03-15" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDateTime(ts); got != "2026-03-15T09:30:45.120Z" {
		t.Errorf("FormatDateTime = %q", got)
	}
	if got := FormatTime(ts); got != "09:30:45.120Z" {
		t.Errorf("FormatTime = %q", got)
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"90m", 90 * time.Minute, false},
		{"2d", 48 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"", 0, true},
		{"5y", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDuration(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseRelativeTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	got, err := ParseRelativeTime("2026-01-01T00:00:00Z", now)
	if err != nil || !got.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("absolute: %v, %v", got, err)
	}

	got, err = ParseRelativeTime("-90d", now)
	if err != nil || !got.Equal(now.Add(-90*24*time.Hour)) {
		t.Errorf("-90d: %v, %v", got, err)
	}

	got, err = ParseRelativeTime("+2w", now)
	if err != nil || !got.Equal(now.Add(14*24*time.Hour)) {
		t.Errorf("+2w: %v, %v", got, err)
	}

	if _, err := ParseRelativeTime("90d", now); err == nil {
		t.Error("offset without sign should be rejected")
	}
	if _, err := ParseRelativeTime("", now); err == nil {
		t.Error("empty string should be rejected")
	}
}
