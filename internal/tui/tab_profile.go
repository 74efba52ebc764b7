package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/tui/components"
	"github.com/truvida/truvida/internal/tui/theme"
)

func (a App) profileKey(key string) (tea.Model, tea.Cmd, bool) {
	u := a.data.user
	switch key {
	case "e":
		if u == nil {
			return a, nil, true
		}
		m, cmd := a.openForm(formProfile, newProfileForm(a.vals, *u))
		return m, cmd, true
	case "n":
		if u == nil {
			return a, nil, true
		}
		p := model.ProfileOf(*u)
		p.NotificationsEnabled = !p.NotificationsEnabled
		title := "Reminders off"
		if p.NotificationsEnabled {
			title = "Reminders on"
		}
		return a, updateProfileCmd(a.tr, p, title), true
	case "x":
		m, cmd := a.openForm(formReset, newResetForm(a.vals))
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) renderProfileTab(cw int) string {
	t := theme.Active
	u := a.data.user
	if u == nil {
		return components.ContentCard("Profile", "Not registered.", cw)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	onStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	offStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-18s", label)) + valueStyle.Render(value)
	}

	reminders := offStyle.Render("off")
	if u.NotificationsEnabled {
		reminders = onStyle.Render(fmt.Sprintf("every %dh", u.WaterReminderInterval))
	}

	about := strings.Join([]string{
		row("Name", u.Name),
		row("Username", u.Username),
		row("Age", fmt.Sprintf("%d", u.Age)),
		row("Height", fmt.Sprintf("%.0f cm", u.Height)),
		row("Weight", fmt.Sprintf("%.1f kg", u.Weight)),
		row("Member since", u.CreatedAt.In(a.tr.Location()).Format("Jan 2, 2006")),
	}, "\n")

	goals := strings.Join([]string{
		row("Water goal", cli.FormatML(u.WaterGoal)),
		row("Steps goal", cli.FormatSteps(u.StepsGoal)),
		labelStyle.Render(fmt.Sprintf("%-18s", "Water reminders")) + reminders,
		row("Tracked days", fmt.Sprintf("%d", a.data.summary.ActiveDays)),
	}, "\n")

	footer := hints("e", "edit", "n", "reminders", "x", "delete all data")

	if a.isCompactLayout() {
		return components.ContentCard("About You", about, cw) + "\n" +
			components.ContentCard("Goals", goals, cw) + "\n " + footer
	}
	widths := components.LayoutRow(cw, 2)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		components.ContentCard("About You", about, widths[0]),
		components.ContentCard("Goals", goals, widths[1]),
	) + "\n " + footer
}
