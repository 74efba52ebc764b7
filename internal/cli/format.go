// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	head := len(s) % 3
	if head > 0 {
		result.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatSteps formats a step count, e.g. 10100 -> "10,100".
func FormatSteps(n int) string {
	return FormatNumber(int64(n))
}

// FormatML formats a water amount. Amounts of a litre or more are shown in
// litres: 750 -> "750ml", 2500 -> "2.5L".
func FormatML(ml int) string {
	if ml >= 1000 || ml <= -1000 {
		l := strconv.FormatFloat(float64(ml)/1000, 'f', 2, 64)
		l = strings.TrimRight(strings.TrimRight(l, "0"), ".")
		return l + "L"
	}
	return fmt.Sprintf("%dml", ml)
}

// FormatPercent formats a 0-1 ratio as a whole percentage.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatAgo formats the time elapsed since t, e.g. "1h 5m ago".
// A zero t yields "never".
func FormatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	secs := int64(now.Sub(t).Seconds())
	if secs < 60 {
		return "just now"
	}
	hours := secs / 3600
	mins := (secs % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm ago", hours, mins)
	}
	return fmt.Sprintf("%dm ago", mins)
}

// FormatDayOfWeek returns a 3-letter day abbreviation for a YYYY-MM-DD key.
func FormatDayOfWeek(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "???"
	}
	return t.Weekday().String()[:3]
}
