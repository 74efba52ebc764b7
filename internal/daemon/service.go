// Package daemon provides the long-running reminder service and its HTTP API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/storage"
	"github.com/truvida/truvida/internal/tracker"
)

// Event types.
const (
	EventSnapshot      = "snapshot"
	EventProgress      = "progress"
	EventWaterReminder = "water_reminder"
	EventGoalReached   = "goal_reached"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is the day's state for status and event payloads.
type Snapshot struct {
	At           time.Time `json:"at"`
	Date         string    `json:"date"`
	WaterML      int       `json:"water_ml"`
	WaterGoalML  int       `json:"water_goal_ml"`
	Glasses      int       `json:"glasses"`
	Steps        int       `json:"steps"`
	StepsGoal    int       `json:"steps_goal"`
	LastDrinkAt  time.Time `json:"last_drink_at,omitempty"`
	NextReminder time.Time `json:"next_reminder,omitempty"`
}

// Event is published on reminders, goal crossings and progress changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Metric    string    `json:"metric,omitempty"`
	Snapshot  Snapshot  `json:"snapshot"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	User            string    `json:"user,omitempty"`
	Reminders       bool      `json:"reminders"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	tr  *tracker.Tracker
	log zerolog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	user        string
	reminders   bool
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service polling tr.
func New(cfg Config, tr *tracker.Tracker, log zerolog.Logger) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = time.Minute
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	return &Service{
		cfg:       cfg,
		tr:        tr,
		log:       log,
		startedAt: tr.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().Str("addr", s.cfg.Addr).Dur("interval", s.cfg.Interval).Msg("daemon started")

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.log.Info().Msg("daemon stopping")
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	now := s.tr.Now()

	u, err := s.tr.User(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn().Err(err).Msg("poll skipped")
		return
	}

	date := model.DateKey(now)
	day := s.tr.Day(ctx, date)
	svc := s.tr.Service()
	lastDrink := model.LastEntryTime(s.tr.WaterLog(ctx, date))
	state := svc.ReminderState(ctx)

	snap := Snapshot{
		At:          now,
		Date:        date,
		WaterML:     day.Water.TotalML,
		WaterGoalML: day.WaterGoal,
		Glasses:     day.Water.Glasses,
		Steps:       day.Steps.Steps,
		StepsGoal:   day.StepsGoal,
		LastDrinkAt: lastDrink,
	}
	if u.NotificationsEnabled {
		snap.NextReminder = NextReminder(*u, now, lastDrink, state.LastReminder)
	}

	var pending []Event

	s.mu.Lock()
	prev, prevExists := s.snapshot, s.hasSnapshot
	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""
	s.user = u.Name
	s.reminders = u.NotificationsEnabled
	s.mu.Unlock()

	switch {
	case !prevExists:
		pending = append(pending, Event{Type: EventSnapshot, Snapshot: snap})
	case prev.Date == snap.Date:
		if model.GoalCrossed(prev.WaterML, snap.WaterML, snap.WaterGoalML) {
			pending = append(pending, Event{Type: EventGoalReached, Metric: "water", Snapshot: snap,
				Message: tracker.WaterGoalNotice().Message})
		}
		if model.GoalCrossed(prev.Steps, snap.Steps, snap.StepsGoal) {
			pending = append(pending, Event{Type: EventGoalReached, Metric: "steps", Snapshot: snap,
				Message: tracker.StepsGoalNotice().Message})
		}
		if prev.WaterML != snap.WaterML || prev.Steps != snap.Steps {
			pending = append(pending, Event{Type: EventProgress, Snapshot: snap})
		}
	default:
		pending = append(pending, Event{Type: EventSnapshot, Snapshot: snap})
	}

	if ReminderDue(*u, now, lastDrink, state.LastReminder) {
		pending = append(pending, Event{Type: EventWaterReminder, Snapshot: snap, Message: reminderMessage(day)})
		if err := svc.SaveReminderState(ctx, storage.ReminderState{LastReminder: now}); err != nil {
			s.log.Error().Err(err).Msg("saving reminder state")
		}
	}

	for _, ev := range pending {
		ev.Timestamp = now
		s.log.Info().Str("type", ev.Type).Str("metric", ev.Metric).Msg(ev.Message)
		s.publishEvent(ev)
	}
}

func reminderMessage(day model.DailySnapshot) string {
	if day.WaterRemaining == 0 {
		return "Time for some water! 💧"
	}
	return fmt.Sprintf("Time for some water! 💧 %dml to go today.", day.WaterRemaining)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.nextEventID++
	ev.ID = s.nextEventID
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		User:            s.user,
		Reminders:       s.reminders,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: s.tr.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
