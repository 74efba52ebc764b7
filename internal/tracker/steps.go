package tracker

import (
	"context"
	"fmt"

	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/stepsource"
)

// QuickSteps are the increments offered for one-tap step logging.
var QuickSteps = []int{100, 500, 1000}

// StepsResult is the outcome of a steps change.
type StepsResult struct {
	Steps       model.StepsData
	GoalReached bool
	Source      stepsource.Source
	// SyncErr is the provider failure when SyncSteps fell back to the local count.
	SyncErr error
}

// AddSteps adds n (> 0) steps to date.
func (t *Tracker) AddSteps(ctx context.Context, date string, n int) (StepsResult, error) {
	if n <= 0 {
		return StepsResult{}, model.ValidationError{Field: "steps", Message: "please enter a positive number of steps"}
	}
	prev := t.svc.StepsData(ctx, date)
	// prev.Steps is never negative, so the subtraction cannot wrap.
	if n > model.MaxDailySteps-prev.Steps {
		return StepsResult{}, model.ValidationError{Field: "steps", Message: fmt.Sprintf("a day holds at most %d steps", model.MaxDailySteps)}
	}
	return t.commitSteps(ctx, date, prev.Steps, prev.Steps+n, stepsource.SourceLocal)
}

// SetSteps replaces the step count of date with n (>= 0).
func (t *Tracker) SetSteps(ctx context.Context, date string, n int) (StepsResult, error) {
	if err := model.ValidateSteps(n); err != nil {
		return StepsResult{}, err
	}
	prev := t.svc.StepsData(ctx, date)
	return t.commitSteps(ctx, date, prev.Steps, n, stepsource.SourceLocal)
}

// SyncSteps takes the step count of date from the configured provider. When the
// provider is missing or fails, the local counter is kept and reported as the source.
func (t *Tracker) SyncSteps(ctx context.Context, date string) (StepsResult, error) {
	prev := t.svc.StepsData(ctx, date)
	r := stepsource.Resolve(ctx, t.steps, date, prev.Steps)
	if r.Source == stepsource.SourceLocal {
		return StepsResult{Steps: prev, Source: r.Source, SyncErr: r.Err}, nil
	}
	if err := model.ValidateSteps(r.Steps); err != nil {
		return StepsResult{Steps: prev, Source: stepsource.SourceLocal, SyncErr: err}, nil
	}
	return t.commitSteps(ctx, date, prev.Steps, r.Steps, r.Source)
}

func (t *Tracker) commitSteps(ctx context.Context, date string, prev, next int, src stepsource.Source) (StepsResult, error) {
	u, err := t.User(ctx)
	if err != nil {
		return StepsResult{}, err
	}
	d := model.StepsData{Date: date, Steps: next}
	if err := t.svc.SaveStepsData(ctx, d); err != nil {
		return StepsResult{}, &OpError{Op: OpSteps, Err: err}
	}
	if err := t.saveProgress(ctx, date, t.svc.WaterIntake(ctx, date), d); err != nil {
		return StepsResult{}, &OpError{Op: OpSteps, Err: err}
	}
	return StepsResult{
		Steps:       d,
		GoalReached: model.GoalCrossed(prev, next, u.StepsGoal),
		Source:      src,
	}, nil
}
