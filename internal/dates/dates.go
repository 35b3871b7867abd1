// Package dates provides canonical date parsing and daily-note helpers.
//
// This package exists to avoid duplicating date logic across:
// - daily-note detection during indexing
// - title/filename canonicalization
// - front-block timestamp formatting
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD layout used everywhere in the
// output vault: front-block fields, daily-note titles, and filenames.
const DateLayout = "2006-01-02"

// dailyRegex matches a title that starts with a date-like pattern. Craft
// daily notes appear with '.', '-', or '/' separators depending on the
// export locale.
var dailyRegex = regexp.MustCompile(`^(\d{4})[./-](\d{2})[./-](\d{2})$`)

// ParseDailyTitle parses a daily-note title in any accepted separator style.
// It returns the calendar date and ok=false when the title is not date-like
// or names an impossible date (e.g. 2025-13-40).
func ParseDailyTitle(title string) (time.Time, bool) {
	m := dailyRegex.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; reject those.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// IsDailyTitle reports whether a title is a valid daily-note date.
func IsDailyTitle(title string) bool {
	_, ok := ParseDailyTitle(title)
	return ok
}

// CanonicalDaily normalizes a daily-note title to YYYY-MM-DD. Non-daily
// titles pass through unchanged.
func CanonicalDaily(title string) string {
	if t, ok := ParseDailyTitle(title); ok {
		return t.Format(DateLayout)
	}
	return title
}

// FromUnix converts a unix timestamp (possibly fractional, as Craft's
// info.json stores them) to a date string. ok=false for nil input.
func FromUnix(ts *float64) (string, bool) {
	if ts == nil {
		return "", false
	}
	return time.Unix(int64(*ts), 0).UTC().Format(DateLayout), true
}

// ParseDate parses a canonical YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return t, nil
}
