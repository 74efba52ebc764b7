package storage

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/store"
)

func newTestService() (*Service, *store.Memory) {
	kv := store.NewMemory()
	return New(kv), kv
}

func TestKey(t *testing.T) {
	if got := Key(EntityUser, ""); got != "user" {
		t.Errorf("Key(user) = %q", got)
	}
	if got := Key(EntityWaterIntake, "2025-06-01"); got != "water_intake_2025-06-01" {
		t.Errorf("Key(water_intake) = %q", got)
	}
	if d, ok := DateFromKey(EntityDailyProgress, "daily_progress_2025-06-01"); !ok || d != "2025-06-01" {
		t.Errorf("DateFromKey = %q, %v", d, ok)
	}
	if _, ok := DateFromKey(EntityDailyProgress, "steps_data_2025-06-01"); ok {
		t.Error("DateFromKey matched the wrong entity")
	}
}

func TestUserRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u := model.User{
		ID: "u1", Name: "Ana", Age: 30, Height: 170.5, Weight: 64.2,
		Username: "ana", Password: "hash", WaterGoal: 2000, StepsGoal: 10000,
		NotificationsEnabled: true, WaterReminderInterval: 2,
		CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := svc.SaveUser(ctx, u); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	got := svc.GetUser(ctx)
	if got == nil {
		t.Fatal("GetUser returned nil after save")
	}
	if !reflect.DeepEqual(*got, u) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, u)
	}
}

func TestClearAllData(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_ = svc.SaveUser(ctx, model.User{Name: "Ana"})
	_ = svc.SaveStepsData(ctx, model.StepsData{Date: "2025-06-01", Steps: 10})
	if err := svc.ClearAllData(ctx); err != nil {
		t.Fatalf("ClearAllData: %v", err)
	}
	if u := svc.GetUser(ctx); u != nil {
		t.Errorf("GetUser after clear = %+v, want nil", u)
	}
	if d := svc.StepsData(ctx, "2025-06-01"); d.Steps != 0 {
		t.Errorf("steps after clear = %d, want 0", d.Steps)
	}
}

func TestLazyDefaults(t *testing.T) {
	svc := New(store.NewMemory(), WithDefaultGlassSize(350))
	ctx := context.Background()

	w := svc.WaterIntake(ctx, "2025-06-01")
	want := model.WaterIntake{Date: "2025-06-01", GlassSize: 350}
	if w != want {
		t.Errorf("WaterIntake default = %+v, want %+v", w, want)
	}
	s := svc.StepsData(ctx, "2025-06-01")
	if s != (model.StepsData{Date: "2025-06-01"}) {
		t.Errorf("StepsData default = %+v", s)
	}
	if e := svc.WaterEntries(ctx, "2025-06-01"); len(e) != 0 {
		t.Errorf("WaterEntries default = %v", e)
	}
}

func TestCorruptRecordFailsOpen(t *testing.T) {
	svc, kv := newTestService()
	ctx := context.Background()

	_ = kv.Set(ctx, "user", "{not json")
	_ = kv.Set(ctx, "steps_data_2025-06-01", "[1,2")
	if u := svc.GetUser(ctx); u != nil {
		t.Errorf("corrupt user decoded as %+v", u)
	}
	if d := svc.StepsData(ctx, "2025-06-01"); d.Steps != 0 || d.Date != "2025-06-01" {
		t.Errorf("corrupt steps = %+v, want zero default", d)
	}
}

func TestWaterIntakeDerivedFromLog(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	date := "2025-06-01"

	// A stale aggregate must not win over the log.
	_ = svc.SaveWaterIntake(ctx, model.WaterIntake{Date: date, Glasses: 9, TotalML: 9000, GlassSize: 500})
	_ = svc.SaveWaterEntries(ctx, date, []model.WaterEntry{
		{ID: "a", Amount: 250}, {ID: "b", Amount: 500},
	})

	w := svc.WaterIntake(ctx, date)
	if w.Glasses != 2 || w.TotalML != 750 {
		t.Errorf("WaterIntake = %+v, want 2 glasses / 750ml", w)
	}
	if w.GlassSize != 500 {
		t.Errorf("GlassSize = %d, want stored 500", w.GlassSize)
	}
}

func TestTrackedDates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, d := range []string{"2025-06-03", "2025-06-01"} {
		if err := svc.SaveDailyProgress(ctx, model.DailyProgress{Date: d}); err != nil {
			t.Fatal(err)
		}
	}
	_ = svc.SaveStepsData(ctx, model.StepsData{Date: "2025-06-02", Steps: 5})

	dates, err := svc.TrackedDates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dates, []string{"2025-06-01", "2025-06-03"}) {
		t.Errorf("TrackedDates = %v", dates)
	}
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UpdateUser(ctx, func(u *model.User) {}); err != ErrNoUser {
		t.Fatalf("UpdateUser without user: err = %v, want ErrNoUser", err)
	}
	_ = svc.SaveUser(ctx, model.User{Name: "Ana", WaterGoal: 2000})
	u, err := svc.UpdateUser(ctx, func(u *model.User) { u.WaterGoal = 2500 })
	if err != nil {
		t.Fatal(err)
	}
	if u.WaterGoal != 2500 || svc.GetUser(ctx).WaterGoal != 2500 {
		t.Errorf("water goal not persisted: %+v", svc.GetUser(ctx))
	}
}

func TestClansAndReminderState(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if ids := svc.Clans(ctx); len(ids) != 0 {
		t.Errorf("Clans default = %v", ids)
	}
	_ = svc.SaveClans(ctx, []string{"2", "4"})
	if ids := svc.Clans(ctx); !reflect.DeepEqual(ids, []string{"2", "4"}) {
		t.Errorf("Clans = %v", ids)
	}

	at := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	_ = svc.SaveReminderState(ctx, ReminderState{LastReminder: at})
	if got := svc.ReminderState(ctx).LastReminder; !got.Equal(at) {
		t.Errorf("LastReminder = %v, want %v", got, at)
	}

	if err := svc.ClearReminderState(ctx); err != nil {
		t.Fatal(err)
	}
	if got := svc.ReminderState(ctx).LastReminder; !got.IsZero() {
		t.Errorf("LastReminder after clear = %v", got)
	}
	if err := svc.ClearReminderState(ctx); err != nil {
		t.Errorf("clearing a missing record: %v", err)
	}
}

func TestRecordCount(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if n, err := svc.RecordCount(ctx); err != nil || n != 0 {
		t.Fatalf("RecordCount empty = %d, %v", n, err)
	}
	_ = svc.SaveClans(ctx, []string{"1"})
	_ = svc.SaveStepsData(ctx, model.StepsData{Date: "2025-06-01", Steps: 10})
	if n, _ := svc.RecordCount(ctx); n != 2 {
		t.Errorf("RecordCount = %d, want 2", n)
	}
	if err := svc.Delete(ctx, EntityStepsData, "2025-06-01"); err != nil {
		t.Fatal(err)
	}
	if n, _ := svc.RecordCount(ctx); n != 1 {
		t.Errorf("RecordCount after delete = %d, want 1", n)
	}
}
