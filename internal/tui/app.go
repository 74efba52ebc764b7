// Package tui provides the interactive Bubble Tea dashboard for truvida.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/clan"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/tracker"
	"github.com/truvida/truvida/internal/tui/components"
	"github.com/truvida/truvida/internal/tui/theme"
)

// Tab indexes, matching components.Tabs.
const (
	tabHome = iota
	tabWater
	tabSteps
	tabProfile
	tabClans
)

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 140
	minContentHeight = 5
	glassRowLimit    = 16
)

// Options configures NewApp.
type Options struct {
	Tracker *tracker.Tracker
	Clans   *clan.Registry
	Days    int // history window for charts and streaks
}

// App is the root Bubble Tea model.
type App struct {
	tr    *tracker.Tracker
	clans *clan.Registry
	days  int

	data   dayData
	loaded bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	notice   tracker.Notice
	noticeAt time.Time

	// Active huh form, if any. Values are bound through vals.
	form     *huh.Form
	formKind formKind
	vals     *formValues

	glassIdx   int // index into model.GlassSizes
	clanCursor int

	spinner spinner.Model
}

// NewApp creates the dashboard model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	days := opts.Days
	if days < 7 {
		days = 7
	}

	return App{
		tr:       opts.Tracker,
		clans:    opts.Clans,
		days:     days,
		vals:     &formValues{},
		glassIdx: max(slices.Index(model.GlassSizes, model.DefaultGlassSizeML), 0),
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.tr, a.clans, a.days),
		a.spinner.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case dataLoadedMsg:
		a.data = msg.data
		a.loaded = true
		if i := slices.Index(model.GlassSizes, a.data.snap.Water.GlassSize); i >= 0 {
			a.glassIdx = i
		}
		a.clanCursor = min(a.clanCursor, len(clan.Catalog)-1)
		if a.data.user == nil && a.form == nil {
			return a.openForm(formRegister, newRegisterForm(a.vals))
		}
		return a, nil

	case opDoneMsg:
		a.notice = msg.notice
		a.noticeAt = time.Now()
		return a, loadDataCmd(a.tr, a.clans, a.days)

	case tickMsg:
		if !a.noticeAt.IsZero() && time.Since(a.noticeAt) > noticeTTL {
			a.notice = tracker.Notice{}
			a.noticeAt = time.Time{}
		}
		// Reloading picks up midnight rollover and writes from other processes.
		cmds := []tea.Cmd{tickCmd()}
		if a.form == nil {
			cmds = append(cmds, loadDataCmd(a.tr, a.clans, a.days))
		}
		return a, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(a.activeTab, msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		if !a.loaded {
			return a, nil
		}
		return a.updateKey(msg)
	}

	// Forward everything else to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	var (
		handled bool
		next    tea.Model
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case tabWater:
		next, cmd, handled = a.waterKey(key)
	case tabSteps:
		next, cmd, handled = a.stepsKey(key)
	case tabProfile:
		next, cmd, handled = a.profileKey(key)
	case tabClans:
		next, cmd, handled = a.clansKey(key)
	}
	if handled {
		return next, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "r":
		return a, loadDataCmd(a.tr, a.clans, a.days)
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) openForm(kind formKind, f *huh.Form) (tea.Model, tea.Cmd) {
	a.form = f
	a.formKind = kind
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 72)).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.form, a.formKind = nil, formNone
		return a, a.submit(kind)
	case huh.StateAborted:
		kind := a.formKind
		a.form, a.formKind = nil, formNone
		if kind == formRegister {
			// Nothing works without a profile.
			return a, tea.Quit
		}
		return a, nil
	}
	return a, cmd
}

// submit turns a completed form into the matching operation.
func (a App) submit(kind formKind) tea.Cmd {
	v := a.vals
	date := a.data.date
	switch kind {
	case formRegister:
		return registerCmd(a.tr, v.registration())
	case formProfile:
		return updateProfileCmd(a.tr, v.profile(), "Profile saved")
	case formWaterAmount:
		return addWaterCmd(a.tr, date, atoi(v.amount), 0)
	case formWaterGoal:
		return setGoalCmd(a.tr, true, atoi(v.amount))
	case formStepsAdd:
		return addStepsCmd(a.tr, date, atoi(v.amount))
	case formStepsSet:
		return setStepsCmd(a.tr, date, atoi(v.amount))
	case formStepsGoal:
		return setGoalCmd(a.tr, false, atoi(v.amount))
	case formReset:
		if v.proceed {
			return resetCmd(a.tr)
		}
	}
	return nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  truvida needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(
			lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ truvida") + "\n\n" +
				a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Loading today..."),
		)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewForm() string {
	header := components.RenderTabBar(a.activeTab, a.width)
	body := a.form.View()
	return lipgloss.JoinVertical(lipgloss.Left, header, "",
		lipgloss.PlaceHorizontal(a.width, lipgloss.Center, body))
}

func (a App) viewHelp() string {
	t := theme.Active

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"h w s p c", "Jump to tab"},
			{"tab", "Next tab"},
			{"r", "Reload"},
			{"q", "Quit"},
		}},
		{"Water", [][2]string{
			{"a enter", "Drink one glass"},
			{"← →", "Change glass size"},
			{"m", "Custom amount"},
			{"u", "Undo last drink"},
			{"g", "Set water goal"},
		}},
		{"Steps", [][2]string{
			{"1 2 3", "Add 100 / 500 / 1000"},
			{"m", "Add steps"},
			{"t", "Set today's total"},
			{"y", "Sync from provider"},
			{"g", "Set steps goal"},
		}},
		{"Profile & Clans", [][2]string{
			{"e", "Edit profile"},
			{"n", "Toggle reminders"},
			{"x", "Delete all data"},
			{"j k enter", "Browse, join or leave clans"},
		}},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, kv := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", kv[0])), descStyle.Render(kv[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("Press any key to close"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)

	right := a.data.date
	if a.data.user != nil {
		right = a.data.user.Name + " · " + right
	}
	noticeText := a.notice.Title
	if a.notice.Message != "" {
		noticeText += ": " + a.notice.Message
	}
	statusBar := components.RenderStatusBar(w, a.notice.Level.String(), noticeText, right)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabHome:
		content = a.renderHomeTab(cw)
	case tabWater:
		content = a.renderWaterTab(cw)
	case tabSteps:
		content = a.renderStepsTab(cw)
	case tabProfile:
		content = a.renderProfileTab(cw)
	case tabClans:
		content = a.renderClansTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.PlaceHorizontal(w, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// hints renders a row of "[k] action" key hints.
func hints(pairs ...string) string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, keyStyle.Render("["+pairs[i]+"]")+descStyle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
