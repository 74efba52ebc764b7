// Package pipeline loads per-day records into history rows and aggregates them
// into averages and streaks.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/storage"
)

// DayStats is one day of history measured against the user's current goals.
type DayStats struct {
	Date       string
	Water      int // ml
	Glasses    int
	Steps      int
	WaterGoal  int
	StepsGoal  int
	WaterMet   bool
	StepsMet   bool
	Calories   int
	DistanceKm float64
}

// BothMet reports whether both daily goals were reached.
func (d DayStats) BothMet() bool { return d.WaterMet && d.StepsMet }

// Empty reports whether nothing was logged on the day.
func (d DayStats) Empty() bool { return d.Water == 0 && d.Steps == 0 }

// DateRange returns the date keys of the days ending at until, newest first.
func DateRange(until time.Time, days int) []string {
	if days < 1 {
		days = 1
	}
	y, m, d := until.Date()
	day := time.Date(y, m, d, 12, 0, 0, 0, until.Location())
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, model.DateKey(day.AddDate(0, 0, -i)))
	}
	return dates
}

// LoadHistory loads each date (missing days read as zero) and returns the rows
// newest first.
func LoadHistory(ctx context.Context, svc *storage.Service, u model.User, dates []string) []DayStats {
	rows := make([]DayStats, 0, len(dates))
	for _, date := range dates {
		p := svc.DailyProgress(ctx, date)
		snap := model.Summarize(u, p.WaterIntake, p.StepsData)
		rows = append(rows, DayStats{
			Date:       date,
			Water:      snap.Water.TotalML,
			Glasses:    snap.Water.Glasses,
			Steps:      snap.Steps.Steps,
			WaterGoal:  snap.WaterGoal,
			StepsGoal:  snap.StepsGoal,
			WaterMet:   snap.WaterGoalMet(),
			StepsMet:   snap.StepsGoalMet(),
			Calories:   snap.Calories,
			DistanceKm: snap.DistanceKm,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows
}

// LoadTracked loads every day that has a stored record, newest first.
func LoadTracked(ctx context.Context, svc *storage.Service, u model.User) ([]DayStats, error) {
	dates, err := svc.TrackedDates(ctx)
	if err != nil {
		return nil, err
	}
	return LoadHistory(ctx, svc, u, dates), nil
}
