package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/clan"
	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/tui/components"
	"github.com/truvida/truvida/internal/tui/theme"
)

func (a App) clansKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.clanCursor = min(a.clanCursor+1, len(clan.Catalog)-1)
		return a, nil, true
	case "k", "up":
		a.clanCursor = max(a.clanCursor-1, 0)
		return a, nil, true
	case "enter", " ":
		if a.clanCursor >= len(a.data.clans) {
			return a, nil, true
		}
		m := a.data.clans[a.clanCursor]
		return a, clanCmd(a.clans, m.ID, !m.Joined), true
	}
	return a, nil, false
}

func (a App) renderClansTab(cw int) string {
	t := theme.Active

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	joinedStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)

	var lines []string
	for i, m := range a.data.clans {
		cursor := "  "
		style := nameStyle
		if i == a.clanCursor {
			cursor = cursorStyle.Render("▸ ")
			style = style.Bold(true)
		}
		status := dimStyle.Render("join")
		if m.Joined {
			status = joinedStyle.Render("joined ✓")
		}
		lines = append(lines, cursor+style.Render(fmt.Sprintf("%-22s", m.Title()))+
			dimStyle.Render(fmt.Sprintf("%-6s %3d members  avg %s steps  ", m.Code, m.Members, cli.FormatSteps(m.AvgSteps)))+
			status)
	}
	lines = append(lines, "", hints("j/k", "move", "enter", "join / leave"))
	list := components.ContentCard("Clans", strings.Join(lines, "\n"), cw)

	if a.clanCursor >= len(a.data.clans) {
		return list
	}
	sel := a.data.clans[a.clanCursor]
	if !sel.Joined {
		return list + "\n" + components.ContentCard(sel.Title(),
			dimStyle.Render("Join this clan to see its leaderboard."), cw)
	}
	return list + "\n" + components.ContentCard(sel.Title()+" · Leaderboard", a.renderLeaderboard(sel.Clan), cw)
}

func (a App) renderLeaderboard(c clan.Clan) string {
	t := theme.Active
	s := a.data.snap

	name := "You"
	if a.data.user != nil {
		name = a.data.user.Name
	}
	rows := clan.Leaderboard(c, clan.Standing{
		Name:        name,
		Steps:       s.Steps.Steps,
		StepsTarget: s.StepsGoal,
		Water:       s.Water.TotalML,
	})

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	youStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	medals := []string{"🥇", "🥈", "🥉"}

	lines := make([]string, len(rows))
	for i, r := range rows {
		rank := fmt.Sprintf("%2d.", r.Rank)
		if i < len(medals) {
			rank = medals[i] + " "
		}
		style := rowStyle
		label := r.Name
		if r.You {
			style = youStyle
			label += " (you)"
		}
		lines[i] = rank + " " + style.Render(fmt.Sprintf("%-16s %8s steps  %7s", label, cli.FormatSteps(r.Steps), cli.FormatML(r.Water)))
	}
	return strings.Join(lines, "\n")
}
