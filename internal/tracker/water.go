package tracker

import (
	"context"

	"github.com/google/uuid"

	"github.com/truvida/truvida/internal/model"
)

// WaterResult is the outcome of a water log change.
type WaterResult struct {
	Intake      model.WaterIntake
	Entry       model.WaterEntry // the entry added or removed
	GoalReached bool
}

// AddWater logs a drink on date. An amount of 0 logs one glass of glassSize;
// a glassSize of 0 keeps the day's current glass size.
func (t *Tracker) AddWater(ctx context.Context, date string, amount, glassSize int) (WaterResult, error) {
	u, err := t.User(ctx)
	if err != nil {
		return WaterResult{}, err
	}

	prev := t.svc.WaterIntake(ctx, date)
	size := prev.GlassSize
	if glassSize > 0 {
		size = glassSize
	}
	if size <= 0 {
		size = t.glassSize
	}
	if amount == 0 {
		amount = size
	}
	if err := model.ValidateWaterAmount(amount); err != nil {
		return WaterResult{}, err
	}

	entry := model.WaterEntry{ID: uuid.NewString(), Amount: amount, Timestamp: t.now()}
	entries := append(t.svc.WaterEntries(ctx, date), entry)

	next, err := t.commitWater(ctx, date, size, entries)
	if err != nil {
		return WaterResult{}, err
	}
	return WaterResult{
		Intake:      next,
		Entry:       entry,
		GoalReached: model.GoalCrossed(prev.TotalML, next.TotalML, u.WaterGoal),
	}, nil
}

// RemoveLastWater removes the most recently logged drink on date.
func (t *Tracker) RemoveLastWater(ctx context.Context, date string) (WaterResult, error) {
	entries := t.svc.WaterEntries(ctx, date)
	if len(entries) == 0 {
		return WaterResult{}, ErrNoEntries
	}
	return t.removeWater(ctx, date, entries, len(entries)-1)
}

// RemoveWaterEntry removes the drink with the given id on date.
func (t *Tracker) RemoveWaterEntry(ctx context.Context, date, id string) (WaterResult, error) {
	entries := t.svc.WaterEntries(ctx, date)
	if len(entries) == 0 {
		return WaterResult{}, ErrNoEntries
	}
	for i, e := range entries {
		if e.ID == id {
			return t.removeWater(ctx, date, entries, i)
		}
	}
	return WaterResult{}, ErrEntryNotFound
}

// WaterLog returns the day's drinks, oldest first.
func (t *Tracker) WaterLog(ctx context.Context, date string) []model.WaterEntry {
	return t.svc.WaterEntries(ctx, date)
}

func (t *Tracker) removeWater(ctx context.Context, date string, entries []model.WaterEntry, i int) (WaterResult, error) {
	removed := entries[i]
	kept := make([]model.WaterEntry, 0, len(entries)-1)
	kept = append(kept, entries[:i]...)
	kept = append(kept, entries[i+1:]...)

	size := t.svc.WaterIntake(ctx, date).GlassSize
	next, err := t.commitWater(ctx, date, size, kept)
	if err != nil {
		return WaterResult{}, err
	}
	return WaterResult{Intake: next, Entry: removed}, nil
}

// commitWater writes the log first, then the aggregate snapshot and the day record.
func (t *Tracker) commitWater(ctx context.Context, date string, glassSize int, entries []model.WaterEntry) (model.WaterIntake, error) {
	if err := t.svc.SaveWaterEntries(ctx, date, entries); err != nil {
		return model.WaterIntake{}, &OpError{Op: OpWater, Err: err}
	}
	intake := model.IntakeFromEntries(date, glassSize, entries)
	if err := t.svc.SaveWaterIntake(ctx, intake); err != nil {
		return model.WaterIntake{}, &OpError{Op: OpWater, Err: err}
	}
	if err := t.saveProgress(ctx, date, intake, t.svc.StepsData(ctx, date)); err != nil {
		return model.WaterIntake{}, &OpError{Op: OpWater, Err: err}
	}
	return intake, nil
}
