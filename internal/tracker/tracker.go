// Package tracker implements the user-facing operations of truvida on top of the
// storage service: registration, water and steps logging, goals and the day view.
package tracker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/stepsource"
	"github.com/truvida/truvida/internal/storage"
)

var (
	// ErrNoUser is returned when an operation needs a registered user.
	ErrNoUser = storage.ErrNoUser
	// ErrUsernameTaken is returned when registering over an existing username.
	ErrUsernameTaken = errors.New("tracker: username already exists")
	// ErrInvalidCredentials is returned by Login on a username or password mismatch.
	ErrInvalidCredentials = errors.New("tracker: invalid username or password")
	// ErrNoEntries is returned when removing from an empty water log.
	ErrNoEntries = errors.New("tracker: no water entries to remove")
	// ErrEntryNotFound is returned when removing an unknown water entry.
	ErrEntryNotFound = errors.New("tracker: water entry not found")
)

// Tracker runs operations against one storage service.
type Tracker struct {
	svc       *storage.Service
	steps     stepsource.Provider
	now       func() time.Time
	loc       *time.Location
	glassSize int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the timezone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithStepProvider sets the external step counter used by SyncSteps.
func WithStepProvider(p stepsource.Provider) Option {
	return func(t *Tracker) { t.steps = p }
}

// WithGlassSize sets the glass size used when AddWater is given neither an
// amount nor a glass size and the day has none recorded.
func WithGlassSize(ml int) Option {
	return func(t *Tracker) {
		if ml > 0 {
			t.glassSize = ml
		}
	}
}

// New creates a Tracker over svc.
func New(svc *storage.Service, opts ...Option) *Tracker {
	t := &Tracker{
		svc:       svc,
		now:       time.Now,
		loc:       time.Local,
		glassSize: model.DefaultGlassSizeML,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Service returns the underlying storage service.
func (t *Tracker) Service() *storage.Service { return t.svc }

// Now returns the current time in the tracker's location.
func (t *Tracker) Now() time.Time { return t.now().In(t.loc) }

// Today returns the current date key.
func (t *Tracker) Today() string { return model.DateKey(t.Now()) }

// Location returns the tracker's timezone.
func (t *Tracker) Location() *time.Location { return t.loc }

// User returns the registered user, or ErrNoUser.
func (t *Tracker) User(ctx context.Context) (*model.User, error) {
	u := t.svc.GetUser(ctx)
	if u == nil {
		return nil, ErrNoUser
	}
	return u, nil
}

// Register validates r and creates the user with default goals.
func (t *Tracker) Register(ctx context.Context, r model.Registration) (*model.User, error) {
	if err := model.ValidateRegistration(r); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(r.Username)
	if existing := t.svc.GetUser(ctx); existing != nil && strings.EqualFold(existing.Username, username) {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &OpError{Op: OpRegister, Err: err}
	}

	u := model.User{
		ID:                    uuid.NewString(),
		Name:                  strings.TrimSpace(r.Name),
		Age:                   r.Age,
		Height:                r.Height,
		Weight:                r.Weight,
		Username:              username,
		Password:              string(hash),
		WaterGoal:             model.DefaultWaterGoalML,
		StepsGoal:             model.DefaultStepsGoal,
		NotificationsEnabled:  true,
		WaterReminderInterval: model.DefaultReminderHours,
		CreatedAt:             t.now(),
	}
	if err := t.svc.SaveUser(ctx, u); err != nil {
		return nil, &OpError{Op: OpRegister, Err: err}
	}
	return &u, nil
}

// Login checks username and password against the stored user.
func (t *Tracker) Login(ctx context.Context, username, password string) (*model.User, error) {
	u := t.svc.GetUser(ctx)
	if u == nil {
		return nil, ErrNoUser
	}
	if !strings.EqualFold(u.Username, strings.TrimSpace(username)) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile validates p and applies it to the stored user.
func (t *Tracker) UpdateProfile(ctx context.Context, p model.Profile) (*model.User, error) {
	if err := model.ValidateProfile(p); err != nil {
		return nil, err
	}
	u, err := t.updateUser(ctx, OpProfile, p.Apply)
	if err != nil {
		return nil, err
	}
	// Reminders restart from the next drink once turned back on.
	if !u.NotificationsEnabled {
		if err := t.svc.ClearReminderState(ctx); err != nil {
			return u, &OpError{Op: OpProfile, Err: err}
		}
	}
	return u, nil
}

// SetWaterGoal changes the daily water goal.
func (t *Tracker) SetWaterGoal(ctx context.Context, ml int) (*model.User, error) {
	if err := model.ValidateWaterGoal(ml); err != nil {
		return nil, err
	}
	return t.updateUser(ctx, OpWaterGoal, func(u *model.User) { u.WaterGoal = ml })
}

// SetStepsGoal changes the daily steps goal.
func (t *Tracker) SetStepsGoal(ctx context.Context, n int) (*model.User, error) {
	if err := model.ValidateStepsGoal(n); err != nil {
		return nil, err
	}
	return t.updateUser(ctx, OpStepsGoal, func(u *model.User) { u.StepsGoal = n })
}

func (t *Tracker) updateUser(ctx context.Context, op Op, fn func(*model.User)) (*model.User, error) {
	u, err := t.svc.UpdateUser(ctx, fn)
	if errors.Is(err, storage.ErrNoUser) {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, &OpError{Op: op, Err: err}
	}
	return u, nil
}

// Day returns the derived metrics for date. Without a registered user the
// default goals apply.
func (t *Tracker) Day(ctx context.Context, date string) model.DailySnapshot {
	p := t.svc.DailyProgress(ctx, date)
	return model.Summarize(t.goals(ctx), p.WaterIntake, p.StepsData)
}

// ClearAll deletes every stored record.
func (t *Tracker) ClearAll(ctx context.Context) error {
	if err := t.svc.ClearAllData(ctx); err != nil {
		return &OpError{Op: OpClear, Err: err}
	}
	return nil
}

func (t *Tracker) goals(ctx context.Context) model.User {
	if u := t.svc.GetUser(ctx); u != nil {
		return *u
	}
	return model.User{WaterGoal: model.DefaultWaterGoalML, StepsGoal: model.DefaultStepsGoal}
}

// saveProgress rewrites the day's summary record after a change.
func (t *Tracker) saveProgress(ctx context.Context, date string, w model.WaterIntake, s model.StepsData) error {
	return t.svc.SaveDailyProgress(ctx, model.DailyProgress{Date: date, WaterIntake: w, StepsData: s})
}
