// Package storage is the typed persistence layer over a store.Store. It owns the
// key scheme, JSON encoding and the lazy defaults for per-day records.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/store"
)

// Service reads and writes truvida records.
type Service struct {
	kv        store.Store
	log       zerolog.Logger
	glassSize int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for fail-open read problems.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithDefaultGlassSize sets the glass size of lazily created water records.
func WithDefaultGlassSize(ml int) Option {
	return func(s *Service) {
		if ml > 0 {
			s.glassSize = ml
		}
	}
}

// New wraps kv.
func New(kv store.Store, opts ...Option) *Service {
	s := &Service{
		kv:        kv,
		log:       zerolog.Nop(),
		glassSize: model.DefaultGlassSizeML,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save encodes v as JSON under entity/date.
func (s *Service) Save(ctx context.Context, entity, date string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", entity, err)
	}
	if err := s.kv.Set(ctx, Key(entity, date), string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", Key(entity, date), err)
	}
	return nil
}

// Load decodes the record under entity/date into a T. It reports false when the
// key is missing, unreadable or holds invalid JSON.
func Load[T any](ctx context.Context, s *Service, entity, date string) (T, bool) {
	var v T
	key := Key(entity, date)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn().Err(err).Str("key", key).Msg("read failed, treating as empty")
		}
		return v, false
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("corrupt record, treating as empty")
		var zero T
		return zero, false
	}
	return v, true
}

// LoadOr is Load with a caller-supplied default for missing records.
func LoadOr[T any](ctx context.Context, s *Service, entity, date string, def T) T {
	if v, ok := Load[T](ctx, s, entity, date); ok {
		return v
	}
	return def
}

// SaveUser stores the user profile.
func (s *Service) SaveUser(ctx context.Context, u model.User) error {
	return s.Save(ctx, EntityUser, "", u)
}

// GetUser returns the stored profile, or nil if there is none.
func (s *Service) GetUser(ctx context.Context) *model.User {
	u, ok := Load[model.User](ctx, s, EntityUser, "")
	if !ok {
		return nil
	}
	return &u
}

// ErrNoUser is returned by UpdateUser when no profile exists.
var ErrNoUser = errors.New("storage: no user registered")

// UpdateUser applies fn to the stored profile and saves the result.
func (s *Service) UpdateUser(ctx context.Context, fn func(*model.User)) (*model.User, error) {
	u := s.GetUser(ctx)
	if u == nil {
		return nil, ErrNoUser
	}
	fn(u)
	if err := s.SaveUser(ctx, *u); err != nil {
		return nil, err
	}
	return u, nil
}

// WaterEntries returns the day's entry log, oldest first.
func (s *Service) WaterEntries(ctx context.Context, date string) []model.WaterEntry {
	return LoadOr(ctx, s, EntityWaterEntries, date, []model.WaterEntry{})
}

// SaveWaterEntries replaces the day's entry log.
func (s *Service) SaveWaterEntries(ctx context.Context, date string, entries []model.WaterEntry) error {
	if entries == nil {
		entries = []model.WaterEntry{}
	}
	return s.Save(ctx, EntityWaterEntries, date, entries)
}

// WaterIntake returns the day's aggregate, derived from the entry log. Only the
// selected glass size is taken from the stored record.
func (s *Service) WaterIntake(ctx context.Context, date string) model.WaterIntake {
	stored := LoadOr(ctx, s, EntityWaterIntake, date, model.NewWaterIntake(date, s.glassSize))
	return model.IntakeFromEntries(date, stored.GlassSize, s.WaterEntries(ctx, date))
}

// SaveWaterIntake stores the aggregate snapshot.
func (s *Service) SaveWaterIntake(ctx context.Context, w model.WaterIntake) error {
	return s.Save(ctx, EntityWaterIntake, w.Date, w)
}

// StepsData returns the day's steps, zero when nothing is stored.
func (s *Service) StepsData(ctx context.Context, date string) model.StepsData {
	d := LoadOr(ctx, s, EntityStepsData, date, model.StepsData{Date: date})
	d.Date = date
	if d.Steps < 0 {
		d.Steps = 0
	}
	return d
}

// SaveStepsData stores the day's steps.
func (s *Service) SaveStepsData(ctx context.Context, d model.StepsData) error {
	return s.Save(ctx, EntityStepsData, d.Date, d)
}

// DailyProgress assembles the day's records.
func (s *Service) DailyProgress(ctx context.Context, date string) model.DailyProgress {
	return model.DailyProgress{
		Date:        date,
		WaterIntake: s.WaterIntake(ctx, date),
		StepsData:   s.StepsData(ctx, date),
	}
}

// SaveDailyProgress stores the day's summary record.
func (s *Service) SaveDailyProgress(ctx context.Context, p model.DailyProgress) error {
	return s.Save(ctx, EntityDailyProgress, p.Date, p)
}

// TrackedDates lists the dates that have a daily progress record, ascending.
func (s *Service) TrackedDates(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, EntityDailyProgress+"_")
	if err != nil {
		return nil, fmt.Errorf("listing tracked days: %w", err)
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		if d, ok := DateFromKey(EntityDailyProgress, k); ok {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// Clans returns the ids of joined clans.
func (s *Service) Clans(ctx context.Context) []string {
	return LoadOr(ctx, s, EntityClans, "", []string{})
}

// SaveClans stores the joined clan ids.
func (s *Service) SaveClans(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.Save(ctx, EntityClans, "", ids)
}

// ReminderState is the daemon's persisted reminder bookkeeping.
type ReminderState struct {
	LastReminder time.Time `json:"lastReminder"`
}

// ReminderState returns the stored reminder state.
func (s *Service) ReminderState(ctx context.Context) ReminderState {
	return LoadOr(ctx, s, EntityReminder, "", ReminderState{})
}

// SaveReminderState stores the reminder state.
func (s *Service) SaveReminderState(ctx context.Context, st ReminderState) error {
	return s.Save(ctx, EntityReminder, "", st)
}

// ClearReminderState forgets the last reminder time.
func (s *Service) ClearReminderState(ctx context.Context) error {
	return s.Delete(ctx, EntityReminder, "")
}

// Delete removes the record under entity/date. A missing record is not an error.
func (s *Service) Delete(ctx context.Context, entity, date string) error {
	if err := s.kv.Delete(ctx, Key(entity, date)); err != nil {
		return fmt.Errorf("deleting %s: %w", Key(entity, date), err)
	}
	return nil
}

// RecordCount returns the number of stored records.
func (s *Service) RecordCount(ctx context.Context) (int, error) {
	keys, err := s.kv.Keys(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("listing records: %w", err)
	}
	return len(keys), nil
}

// ClearAllData wipes the whole store.
func (s *Service) ClearAllData(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clearing data: %w", err)
	}
	return nil
}
