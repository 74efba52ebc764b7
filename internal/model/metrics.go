package model

import (
	"fmt"
	"math"
	"time"
)

// Fixed per-step coefficients. Not personalized by height or weight.
const (
	CaloriesPerStep = 0.04
	KmPerStep       = 0.0008
)

// ProgressRatio returns value/goal clamped to [0, 1]. A non-positive goal yields 0.
func ProgressRatio(value, goal int) float64 {
	if goal <= 0 || value <= 0 {
		return 0
	}
	r := float64(value) / float64(goal)
	if r > 1 {
		return 1
	}
	return r
}

// Remaining returns how much is left to reach goal, never negative.
func Remaining(goal, value int) int {
	if goal-value < 0 {
		return 0
	}
	return goal - value
}

// GoalCrossed reports whether an update from prev to next crossed goal upward.
// It is edge-triggered: staying at or above the goal does not count again.
func GoalCrossed(prev, next, goal int) bool {
	if goal <= 0 {
		return false
	}
	return prev < goal && next >= goal
}

// Calories estimates calories burned for a step count.
func Calories(steps int) int {
	return int(math.Round(float64(steps) * CaloriesPerStep))
}

// DistanceKm estimates walked distance in kilometres.
func DistanceKm(steps int) float64 {
	return float64(steps) * KmPerStep
}

// FormatDistance renders a distance with two decimals, e.g. "8.08".
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.2f", km)
}

// RemainingGlasses returns how many glasses of glassSize are still needed.
func RemainingGlasses(goal, total, glassSize int) int {
	if glassSize <= 0 {
		return 0
	}
	left := Remaining(goal, total)
	return (left + glassSize - 1) / glassSize
}

// ActivityLevel classifies a day's step count.
type ActivityLevel struct {
	Name     string
	MinSteps int
}

// ActivityLevels are ordered from lowest to highest threshold.
var ActivityLevels = []ActivityLevel{
	{Name: "Sedentary", MinSteps: 0},
	{Name: "Light", MinSteps: 2500},
	{Name: "Moderate", MinSteps: 5000},
	{Name: "Active", MinSteps: 10000},
	{Name: "Very Active", MinSteps: 15000},
}

// ActivityLevelFor returns the highest level whose threshold steps reaches.
func ActivityLevelFor(steps int) ActivityLevel {
	level := ActivityLevels[0]
	for _, l := range ActivityLevels {
		if steps >= l.MinSteps {
			level = l
		}
	}
	return level
}

// DailySnapshot is everything the dashboard shows for one day.
type DailySnapshot struct {
	Date  string
	Water WaterIntake
	Steps StepsData

	WaterGoal int
	StepsGoal int

	WaterProgress  float64
	StepsProgress  float64
	WaterRemaining int
	StepsRemaining int
	GlassesLeft    int

	Calories   int
	DistanceKm float64
	Activity   ActivityLevel
}

// WaterGoalMet reports whether the water goal is reached.
func (s DailySnapshot) WaterGoalMet() bool {
	return s.WaterGoal > 0 && s.Water.TotalML >= s.WaterGoal
}

// StepsGoalMet reports whether the steps goal is reached.
func (s DailySnapshot) StepsGoalMet() bool {
	return s.StepsGoal > 0 && s.Steps.Steps >= s.StepsGoal
}

// Summarize computes the derived metrics for a day.
func Summarize(u User, water WaterIntake, steps StepsData) DailySnapshot {
	return DailySnapshot{
		Date:           water.Date,
		Water:          water,
		Steps:          steps,
		WaterGoal:      u.WaterGoal,
		StepsGoal:      u.StepsGoal,
		WaterProgress:  ProgressRatio(water.TotalML, u.WaterGoal),
		StepsProgress:  ProgressRatio(steps.Steps, u.StepsGoal),
		WaterRemaining: Remaining(u.WaterGoal, water.TotalML),
		StepsRemaining: Remaining(u.StepsGoal, steps.Steps),
		GlassesLeft:    RemainingGlasses(u.WaterGoal, water.TotalML, water.GlassSize),
		Calories:       Calories(steps.Steps),
		DistanceKm:     DistanceKm(steps.Steps),
		Activity:       ActivityLevelFor(steps.Steps),
	}
}

// Greeting returns a time-of-day greeting for name.
func Greeting(name string, t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good Morning, " + name
	case h < 17:
		return "Good Afternoon, " + name
	default:
		return "Good Evening, " + name
	}
}
