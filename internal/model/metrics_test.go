package model

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestProgressRatio_BoundedAndMonotonic(t *testing.T) {
	for _, goal := range []int{-5, 0, 1, 7, 2000, 10000} {
		prev := -1.0
		for value := -100; value <= 25000; value += 37 {
			r := ProgressRatio(value, goal)
			if r < 0 || r > 1 {
				t.Fatalf("ProgressRatio(%d, %d) = %f, outside [0,1]", value, goal, r)
			}
			if r < prev {
				t.Fatalf("ProgressRatio not monotonic at value=%d goal=%d: %f < %f", value, goal, r, prev)
			}
			prev = r
		}
	}
}

func TestProgressRatio_Values(t *testing.T) {
	tests := []struct {
		value, goal int
		want        float64
	}{
		{1000, 2000, 0.5},
		{2000, 2000, 1},
		{2500, 2000, 1},
		{0, 2000, 0},
		{500, 0, 0},
	}
	for _, tt := range tests {
		if got := ProgressRatio(tt.value, tt.goal); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ProgressRatio(%d, %d) = %f, want %f", tt.value, tt.goal, got, tt.want)
		}
	}
}

func TestRemaining_NeverNegative(t *testing.T) {
	for goal := 0; goal <= 3000; goal += 250 {
		for value := 0; value <= 6000; value += 333 {
			got := Remaining(goal, value)
			if got < 0 {
				t.Fatalf("Remaining(%d, %d) = %d, want >= 0", goal, value, got)
			}
			if value < goal && got != goal-value {
				t.Fatalf("Remaining(%d, %d) = %d, want %d", goal, value, got, goal-value)
			}
		}
	}
}

func TestGoalCrossed_EdgeTriggered(t *testing.T) {
	tests := []struct {
		name             string
		prev, next, goal int
		want             bool
	}{
		{"crossing exactly", 1800, 2000, 2000, true},
		{"crossing past", 1800, 2300, 2000, true},
		{"already above", 2000, 2500, 2000, false},
		{"still below", 1000, 1999, 2000, false},
		{"dropping below", 2100, 1900, 2000, false},
		{"zero goal", 0, 10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GoalCrossed(tt.prev, tt.next, tt.goal); got != tt.want {
				t.Errorf("GoalCrossed(%d, %d, %d) = %v, want %v", tt.prev, tt.next, tt.goal, got, tt.want)
			}
		})
	}
}

func TestDerivedStepStats(t *testing.T) {
	if got := Calories(10100); got != 404 {
		t.Errorf("Calories(10100) = %d, want 404", got)
	}
	if got := Calories(12); got != 0 {
		t.Errorf("Calories(12) = %d, want 0", got)
	}
	if got := FormatDistance(DistanceKm(10100)); got != "8.08" {
		t.Errorf("distance for 10100 steps = %s, want 8.08", got)
	}
}

func TestRemainingGlasses(t *testing.T) {
	if got := RemainingGlasses(2000, 1500, 250); got != 2 {
		t.Errorf("RemainingGlasses = %d, want 2", got)
	}
	if got := RemainingGlasses(2000, 1900, 250); got != 1 {
		t.Errorf("RemainingGlasses = %d, want 1 (rounds up)", got)
	}
	if got := RemainingGlasses(2000, 2600, 250); got != 0 {
		t.Errorf("RemainingGlasses = %d, want 0 past goal", got)
	}
}

func TestActivityLevelFor(t *testing.T) {
	tests := map[int]string{
		0:     "Sedentary",
		2499:  "Sedentary",
		2500:  "Light",
		7000:  "Moderate",
		10000: "Active",
		15000: "Very Active",
	}
	for steps, want := range tests {
		if got := ActivityLevelFor(steps).Name; got != want {
			t.Errorf("ActivityLevelFor(%d) = %q, want %q", steps, got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	u := User{WaterGoal: 2000, StepsGoal: 10000}
	snap := Summarize(u,
		WaterIntake{Date: "2025-06-01", Glasses: 4, TotalML: 1000, GlassSize: 250},
		StepsData{Date: "2025-06-01", Steps: 10100},
	)
	if snap.WaterProgress != 0.5 {
		t.Errorf("WaterProgress = %f, want 0.5", snap.WaterProgress)
	}
	if snap.StepsRemaining != 0 || !snap.StepsGoalMet() {
		t.Errorf("steps goal should be met, remaining = %d", snap.StepsRemaining)
	}
	if snap.WaterGoalMet() {
		t.Error("water goal should not be met")
	}
	if snap.GlassesLeft != 4 {
		t.Errorf("GlassesLeft = %d, want 4", snap.GlassesLeft)
	}
}

func TestIntakeFromEntries(t *testing.T) {
	entries := []WaterEntry{{ID: "a", Amount: 250}, {ID: "b", Amount: 500}, {ID: "c", Amount: 0}}
	w := IntakeFromEntries("2025-06-01", 0, entries)
	if w.Glasses != 2 || w.TotalML != 750 {
		t.Errorf("IntakeFromEntries = %+v, want 2 glasses / 750ml", w)
	}
	if w.GlassSize != DefaultGlassSizeML {
		t.Errorf("GlassSize = %d, want default %d", w.GlassSize, DefaultGlassSizeML)
	}
}

func TestGreeting(t *testing.T) {
	day := func(h int) time.Time { return time.Date(2025, 6, 1, h, 0, 0, 0, time.UTC) }
	if got := Greeting("Ana", day(9)); got != "Good Morning, Ana" {
		t.Errorf("got %q", got)
	}
	if got := Greeting("Ana", day(13)); got != "Good Afternoon, Ana" {
		t.Errorf("got %q", got)
	}
	if got := Greeting("Ana", day(20)); got != "Good Evening, Ana" {
		t.Errorf("got %q", got)
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := Registration{
		Name: "Ana", Age: 30, Height: 170, Weight: 65,
		Username: "ana", Password: "secret1", ConfirmPassword: "secret1",
	}
	if err := ValidateRegistration(valid); err != nil {
		t.Fatalf("valid registration rejected: %v", err)
	}

	tests := []struct {
		name  string
		mod   func(*Registration)
		field string
	}{
		{"missing name", func(r *Registration) { r.Name = " " }, "form"},
		{"mismatch", func(r *Registration) { r.ConfirmPassword = "other12" }, "password"},
		{"short password", func(r *Registration) { r.Password, r.ConfirmPassword = "abc", "abc" }, "password"},
		{"age", func(r *Registration) { r.Age = 121 }, "age"},
		{"height", func(r *Registration) { r.Height = 49 }, "height"},
		{"weight", func(r *Registration) { r.Weight = 501 }, "weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mod(&r)
			err := ValidateRegistration(r)
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestValidateWaterGoalRanges(t *testing.T) {
	if err := ValidateWaterGoal(8000); err != nil {
		t.Errorf("quick goal 8000 rejected: %v", err)
	}
	if err := ValidateWaterGoal(400); err == nil {
		t.Error("quick goal 400 accepted")
	}
	p := Profile{Name: "Ana", Age: 30, Height: 170, Weight: 65, WaterGoal: 8000, StepsGoal: 10000, WaterReminderInterval: 2}
	if err := ValidateProfile(p); err == nil {
		t.Error("profile water goal 8000 accepted, want max 5000")
	}
	if err := ValidateWaterAmount(2001); err == nil {
		t.Error("custom amount 2001 accepted")
	}
}

func TestValidateSteps(t *testing.T) {
	for _, n := range []int{0, 12000, MaxDailySteps} {
		if err := ValidateSteps(n); err != nil {
			t.Errorf("ValidateSteps(%d) = %v", n, err)
		}
	}
	for _, n := range []int{-1, MaxDailySteps + 1} {
		if err := ValidateSteps(n); err == nil {
			t.Errorf("ValidateSteps(%d) accepted", n)
		}
	}
}
