package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/truvida/truvida/internal/clan"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/storage"
	"github.com/truvida/truvida/internal/store"
	"github.com/truvida/truvida/internal/tracker"
)

const testDate = "2025-06-01"

func newTestApp(t *testing.T, register bool) (App, *tracker.Tracker) {
	t.Helper()
	now := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	tr := tracker.New(storage.New(store.NewMemory()),
		tracker.WithClock(func() time.Time { return now }),
		tracker.WithLocation(time.UTC),
	)
	if register {
		_, err := tr.Register(context.Background(), model.Registration{
			Name: "Ana", Age: 30, Height: 168, Weight: 60,
			Username: "ana", Password: "secret1", ConfirmPassword: "secret1",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	a := NewApp(Options{Tracker: tr, Clans: clan.NewRegistry(tr.Service()), Days: 7})
	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	a = update(t, a, loadDataCmd(a.tr, a.clans, a.days)())
	return a, tr
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return app
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key, runs the resulting operation and feeds its outcome and
// the follow-up reload back into the app.
func press(t *testing.T, a App, s string) App {
	t.Helper()
	m, cmd := a.Update(key(s))
	a = m.(App)
	if cmd == nil {
		return a
	}
	msg := cmd()
	done, ok := msg.(opDoneMsg)
	if !ok {
		return a
	}
	m, cmd = a.Update(done)
	a = m.(App)
	if cmd != nil {
		a = update(t, a, cmd())
	}
	return a
}

func TestApp_OpensRegisterFormWithoutUser(t *testing.T) {
	a, _ := newTestApp(t, false)
	if a.form == nil || a.formKind != formRegister {
		t.Fatalf("form = %v kind = %v, want register form", a.form, a.formKind)
	}
	if a.View() == "" {
		t.Error("empty view while registering")
	}
}

func TestApp_AddGlassFromWaterTab(t *testing.T) {
	a, tr := newTestApp(t, true)
	if a.form != nil {
		t.Fatal("register form shown for a registered user")
	}

	a = press(t, a, "w")
	if a.activeTab != tabWater {
		t.Fatalf("activeTab = %d, want water", a.activeTab)
	}

	a = press(t, a, "a")
	if got := tr.Day(context.Background(), testDate).Water.TotalML; got != 250 {
		t.Errorf("stored water = %d, want 250", got)
	}
	if a.notice.Title != "Water added" || a.notice.Level != tracker.LevelSuccess {
		t.Errorf("notice = %+v", a.notice)
	}
	if a.data.snap.Water.TotalML != 250 || len(a.data.entries) != 1 {
		t.Errorf("dashboard not reloaded: %+v", a.data.snap.Water)
	}
	if !strings.Contains(a.View(), "250ml") {
		t.Error("view does not show the logged amount")
	}
}

func TestApp_GlassSizeAndUndo(t *testing.T) {
	a, tr := newTestApp(t, true)
	ctx := context.Background()

	a = press(t, a, "w")
	a = press(t, a, "u")
	if a.notice.Title != "Nothing to remove" {
		t.Errorf("undo on empty log: notice = %+v", a.notice)
	}

	a = press(t, a, "right")
	if got := model.GlassSizes[a.glassIdx]; got != 350 {
		t.Fatalf("glass size = %d, want 350", got)
	}
	a = press(t, a, "enter")
	if got := tr.Day(ctx, testDate).Water.TotalML; got != 350 {
		t.Errorf("water = %d, want 350", got)
	}

	a = press(t, a, "u")
	if got := tr.Day(ctx, testDate).Water.TotalML; got != 0 {
		t.Errorf("water after undo = %d, want 0", got)
	}
	if a.notice.Title != "Removed" {
		t.Errorf("notice = %+v", a.notice)
	}
}

func TestApp_QuickSteps(t *testing.T) {
	a, tr := newTestApp(t, true)

	a = press(t, a, "s")
	a = press(t, a, "3")
	a = press(t, a, "2")
	if got := tr.Day(context.Background(), testDate).Steps.Steps; got != 1500 {
		t.Errorf("steps = %d, want 1500", got)
	}
	if a.data.snap.Steps.Steps != 1500 {
		t.Errorf("dashboard steps = %d", a.data.snap.Steps.Steps)
	}
}

func TestApp_JoinClan(t *testing.T) {
	a, tr := newTestApp(t, true)
	reg := clan.NewRegistry(tr.Service())

	a = press(t, a, "c")
	a = press(t, a, "j")
	a = press(t, a, "enter")
	joined := reg.Joined(context.Background())
	if len(joined) != 1 || joined[0].ID != clan.Catalog[1].ID {
		t.Fatalf("joined = %+v, want %s", joined, clan.Catalog[1].Name)
	}
	if !strings.Contains(a.View(), "Leaderboard") {
		t.Error("leaderboard not shown for a joined clan")
	}

	press(t, a, "enter")
	if n := len(reg.Joined(context.Background())); n != 0 {
		t.Errorf("still in %d clans after leaving", n)
	}
}

func TestApp_Navigation(t *testing.T) {
	a, _ := newTestApp(t, true)

	a = press(t, a, "tab")
	if a.activeTab != tabWater {
		t.Errorf("tab: activeTab = %d", a.activeTab)
	}
	a = press(t, a, "p")
	if a.activeTab != tabProfile {
		t.Errorf("p: activeTab = %d", a.activeTab)
	}

	a = update(t, a, tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if a.activeTab != tabHome {
		t.Errorf("click: activeTab = %d, want home", a.activeTab)
	}

	a = press(t, a, "?")
	if !a.showHelp {
		t.Fatal("help not shown")
	}
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Error("help view missing title")
	}
	a = press(t, a, "x")
	if a.showHelp {
		t.Error("help not dismissed")
	}
}

func TestLastDays(t *testing.T) {
	a, tr := newTestApp(t, true)
	if _, err := tr.AddSteps(context.Background(), testDate, 400); err != nil {
		t.Fatal(err)
	}
	a = update(t, a, loadDataCmd(a.tr, a.clans, a.days)())

	week := lastDays(a.data.history, chartDays)
	if len(week) != chartDays {
		t.Fatalf("len = %d", len(week))
	}
	if last := week[len(week)-1]; last.Date != testDate || last.Steps != 400 {
		t.Errorf("newest day = %+v", last)
	}
}
