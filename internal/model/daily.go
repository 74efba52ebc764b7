package model

import "time"

// DateLayout is the ISO calendar date format used for every date key.
const DateLayout = "2006-01-02"

// DateKey formats t as a date key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, key, loc)
}

// WaterEntry is one logged drink.
type WaterEntry struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"` // ml
	Timestamp time.Time `json:"timestamp"`
}

// WaterIntake is the per-day water aggregate.
type WaterIntake struct {
	Date      string `json:"date"`
	Glasses   int    `json:"glasses"`
	TotalML   int    `json:"totalMl"`
	GlassSize int    `json:"glassSize"`
}

// NewWaterIntake returns the zero-value record for a day.
func NewWaterIntake(date string, glassSize int) WaterIntake {
	if glassSize <= 0 {
		glassSize = DefaultGlassSizeML
	}
	return WaterIntake{Date: date, GlassSize: glassSize}
}

// IntakeFromEntries derives the aggregate from the day's entry log.
// glassSize is carried over from the stored record since the log does not hold it.
func IntakeFromEntries(date string, glassSize int, entries []WaterEntry) WaterIntake {
	w := NewWaterIntake(date, glassSize)
	for _, e := range entries {
		if e.Amount <= 0 {
			continue
		}
		w.Glasses++
		w.TotalML += e.Amount
	}
	return w
}

// LastEntryTime returns the timestamp of the most recent entry, or zero.
func LastEntryTime(entries []WaterEntry) time.Time {
	var last time.Time
	for _, e := range entries {
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	return last
}

// StepsData is the per-day step counter.
type StepsData struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// DailyProgress bundles a day's records under one key.
type DailyProgress struct {
	Date        string      `json:"date"`
	WaterIntake WaterIntake `json:"waterIntake"`
	StepsData   StepsData   `json:"stepsData"`
}
