package pipeline

import (
	"time"

	"github.com/truvida/truvida/internal/model"
)

// Summary aggregates a span of history.
type Summary struct {
	Days       int
	ActiveDays int

	TotalWater int
	TotalSteps int
	AvgWater   float64
	AvgSteps   float64

	WaterGoalDays int
	StepsGoalDays int
	BothGoalDays  int

	CurrentStreak      int
	LongestStreak      int
	LongestWaterStreak int
	LongestStepsStreak int

	BestDay DayStats // most steps
}

// Summarize computes totals, averages and streaks from rows ordered newest first.
func Summarize(history []DayStats) Summary {
	var s Summary
	s.Days = len(history)
	if s.Days == 0 {
		return s
	}

	for _, d := range history {
		s.TotalWater += d.Water
		s.TotalSteps += d.Steps
		if !d.Empty() {
			s.ActiveDays++
		}
		if d.WaterMet {
			s.WaterGoalDays++
		}
		if d.StepsMet {
			s.StepsGoalDays++
		}
		if d.BothMet() {
			s.BothGoalDays++
		}
		if d.Steps > s.BestDay.Steps {
			s.BestDay = d
		}
	}
	s.AvgWater = float64(s.TotalWater) / float64(s.Days)
	s.AvgSteps = float64(s.TotalSteps) / float64(s.Days)

	s.CurrentStreak = CurrentStreak(history)
	s.LongestStreak = longestStreak(history, DayStats.BothMet)
	s.LongestWaterStreak = longestStreak(history, func(d DayStats) bool { return d.WaterMet })
	s.LongestStepsStreak = longestStreak(history, func(d DayStats) bool { return d.StepsMet })
	return s
}

// CurrentStreak counts consecutive days with both goals met, ending at the
// newest day. The newest day does not break the streak while its goals are
// still open.
func CurrentStreak(history []DayStats) int {
	streak := 0
	for i, d := range history {
		if i > 0 && !consecutive(d.Date, history[i-1].Date) {
			break
		}
		if !d.BothMet() {
			if i == 0 {
				continue
			}
			break
		}
		streak++
	}
	return streak
}

func longestStreak(history []DayStats, met func(DayStats) bool) int {
	best, run := 0, 0
	for i, d := range history {
		if i > 0 && !consecutive(d.Date, history[i-1].Date) {
			run = 0
		}
		if !met(d) {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}

// consecutive reports whether older is the calendar day before newer.
func consecutive(older, newer string) bool {
	o, err := time.Parse(model.DateLayout, older)
	if err != nil {
		return false
	}
	n, err := time.Parse(model.DateLayout, newer)
	if err != nil {
		return false
	}
	return model.DateKey(o.AddDate(0, 0, 1)) == model.DateKey(n)
}
