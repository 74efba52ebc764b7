package cli

import (
	"strings"
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{10100, "10,100"},
		{1234567, "1,234,567"},
		{-2500, "-2,500"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatML(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0ml"},
		{250, "250ml"},
		{1000, "1L"},
		{2500, "2.5L"},
		{2250, "2.25L"},
	}
	for _, tt := range tests {
		if got := FormatML(tt.in); got != tt.want {
			t.Errorf("FormatML(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "never"},
		{now.Add(-20 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-65 * time.Minute), "1h 5m ago"},
	}
	for _, tt := range tests {
		if got := FormatAgo(tt.at, now); got != tt.want {
			t.Errorf("FormatAgo = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatDayOfWeek(t *testing.T) {
	if got := FormatDayOfWeek("2025-06-01"); got != "Sun" {
		t.Errorf("FormatDayOfWeek = %q, want Sun", got)
	}
	if got := FormatDayOfWeek("bad"); got != "???" {
		t.Errorf("FormatDayOfWeek(bad) = %q", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := RenderProgressBar(0.5, 10, ColorBlue)
	if n := strings.Count(bar, "█"); n != 5 {
		t.Errorf("filled cells = %d, want 5", n)
	}
	if n := strings.Count(RenderProgressBar(3, 10, ColorBlue), "█"); n != 10 {
		t.Errorf("overfull bar = %d cells, want 10", n)
	}
	if RenderProgressBar(0.5, 0, ColorBlue) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Date", "Steps"},
		Rows:    [][]string{{"2025-06-01", "10,100"}, {"---"}, {"Total", "10,100"}},
	})
	for _, want := range []string{"Date", "2025-06-01", "10,100", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 5, 10}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
}
