package pipeline

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/storage"
	"github.com/truvida/truvida/internal/store"
)

func day(date string, water, steps int) DayStats {
	return DayStats{
		Date: date, Water: water, Steps: steps, WaterGoal: 2000, StepsGoal: 10000,
		WaterMet: water >= 2000, StepsMet: steps >= 10000,
	}
}

func TestDateRange(t *testing.T) {
	until := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	got := DateRange(until, 3)
	want := []string{"2025-03-01", "2025-02-28", "2025-02-27"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DateRange = %v, want %v", got, want)
	}
	if got := DateRange(until, 0); len(got) != 1 {
		t.Errorf("DateRange(0) = %v, want one day", got)
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		history []DayStats
		want    int
	}{
		{
			name: "three met days ending today",
			history: []DayStats{
				day("2025-06-03", 2100, 11000),
				day("2025-06-02", 2000, 10000),
				day("2025-06-01", 2500, 12000),
			},
			want: 3,
		},
		{
			name: "today still open",
			history: []DayStats{
				day("2025-06-04", 500, 3000),
				day("2025-06-03", 2100, 11000),
				day("2025-06-02", 2000, 10000),
			},
			want: 2,
		},
		{
			name: "missed yesterday",
			history: []DayStats{
				day("2025-06-03", 2100, 11000),
				day("2025-06-02", 2000, 9000),
				day("2025-06-01", 2500, 12000),
			},
			want: 1,
		},
		{
			name: "gap in dates",
			history: []DayStats{
				day("2025-06-05", 2100, 11000),
				day("2025-06-02", 2000, 10000),
			},
			want: 1,
		},
		{name: "empty", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.history); got != tt.want {
				t.Errorf("CurrentStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	history := []DayStats{
		day("2025-06-05", 1000, 4000),
		day("2025-06-04", 2000, 12000),
		day("2025-06-03", 2200, 10000),
		day("2025-06-02", 2000, 2000),
		day("2025-06-01", 0, 0),
	}
	s := Summarize(history)

	if s.Days != 5 || s.ActiveDays != 4 {
		t.Errorf("Days = %d, ActiveDays = %d", s.Days, s.ActiveDays)
	}
	if s.TotalWater != 7200 || s.AvgWater != 1440 {
		t.Errorf("water total/avg = %d/%.0f", s.TotalWater, s.AvgWater)
	}
	if s.TotalSteps != 28000 || s.AvgSteps != 5600 {
		t.Errorf("steps total/avg = %d/%.0f", s.TotalSteps, s.AvgSteps)
	}
	if s.WaterGoalDays != 3 || s.StepsGoalDays != 2 || s.BothGoalDays != 2 {
		t.Errorf("goal days = %d/%d/%d", s.WaterGoalDays, s.StepsGoalDays, s.BothGoalDays)
	}
	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", s.CurrentStreak)
	}
	if s.LongestWaterStreak != 3 || s.LongestStepsStreak != 2 || s.LongestStreak != 2 {
		t.Errorf("longest = %d/%d/%d", s.LongestWaterStreak, s.LongestStepsStreak, s.LongestStreak)
	}
	if s.BestDay.Date != "2025-06-04" {
		t.Errorf("BestDay = %s", s.BestDay.Date)
	}

	if empty := Summarize(nil); empty.Days != 0 || empty.AvgWater != 0 {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}

func TestLoadHistory(t *testing.T) {
	ctx := context.Background()
	svc := storage.New(store.NewMemory())
	u := model.User{WaterGoal: 2000, StepsGoal: 10000}

	_ = svc.SaveWaterEntries(ctx, "2025-06-02", []model.WaterEntry{{ID: "a", Amount: 2000}})
	_ = svc.SaveStepsData(ctx, model.StepsData{Date: "2025-06-02", Steps: 10100})
	_ = svc.SaveDailyProgress(ctx, svc.DailyProgress(ctx, "2025-06-02"))

	rows := LoadHistory(ctx, svc, u, []string{"2025-06-01", "2025-06-02"})
	if len(rows) != 2 || rows[0].Date != "2025-06-02" {
		t.Fatalf("rows = %+v, want newest first", rows)
	}
	if !rows[0].BothMet() || rows[0].Calories != 404 {
		t.Errorf("row = %+v", rows[0])
	}
	if !rows[1].Empty() {
		t.Errorf("missing day not zero: %+v", rows[1])
	}

	tracked, err := LoadTracked(ctx, svc, u)
	if err != nil {
		t.Fatal(err)
	}
	if len(tracked) != 1 || tracked[0].Date != "2025-06-02" {
		t.Errorf("LoadTracked = %+v", tracked)
	}
}
