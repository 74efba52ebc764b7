package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/cli"
	"github.com/truvida/truvida/internal/model"
	"github.com/truvida/truvida/internal/tracker"
	"github.com/truvida/truvida/internal/tui/components"
	"github.com/truvida/truvida/internal/tui/theme"
)

func (a App) stepsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "1", "2", "3":
		n := tracker.QuickSteps[int(key[0]-'1')]
		return a, addStepsCmd(a.tr, a.data.date, n), true
	case "m":
		m, cmd := a.openForm(formStepsAdd, newAmountForm(a.vals, "Steps to add", "", positive))
		return m, cmd, true
	case "t":
		m, cmd := a.openForm(formStepsSet,
			newAmountForm(a.vals, "Today's total steps", fmt.Sprint(a.data.snap.Steps.Steps), nonNegative))
		return m, cmd, true
	case "y":
		return a, syncStepsCmd(a.tr, a.data.date), true
	case "g":
		m, cmd := a.openForm(formStepsGoal,
			newAmountForm(a.vals, "Daily steps goal", fmt.Sprint(a.data.snap.StepsGoal), model.ValidateStepsGoal))
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) renderStepsTab(cw int) string {
	t := theme.Active
	s := a.data.snap

	bigStyle := lipgloss.NewStyle().Foreground(components.GoalColor(s.StepsProgress, t.Steps)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(bigStyle.Render(cli.FormatSteps(s.Steps.Steps)))
	b.WriteString(mutedStyle.Render(" of " + cli.FormatSteps(s.StepsGoal) + " steps"))
	b.WriteString("\n\n")
	b.WriteString(components.GoalBar("Progress", s.StepsProgress, t.Steps, 8, max(cw-24, 10)))
	b.WriteString("\n")
	if s.StepsGoalMet() {
		b.WriteString(lipgloss.NewStyle().Foreground(t.GoalMet).Bold(true).Render("Goal reached! 🎉"))
	} else {
		b.WriteString(mutedStyle.Render(cli.FormatSteps(s.StepsRemaining) + " steps to go"))
	}
	b.WriteString("\n\n")

	quick := make([]string, 0, len(tracker.QuickSteps)*2+8)
	for i, n := range tracker.QuickSteps {
		quick = append(quick, fmt.Sprint(i+1), "+"+cli.FormatSteps(n))
	}
	quick = append(quick, "m", "add", "t", "set total", "y", "sync", "g", "goal")
	b.WriteString(hints(quick...))

	counter := components.ContentCard("Activity", b.String(), cw)

	stats := components.MetricRow([]components.Metric{
		{Label: "Calories", Value: fmt.Sprintf("%d kcal", s.Calories), Color: t.Orange},
		{Label: "Distance", Value: model.FormatDistance(s.DistanceKm) + " km", Color: t.Blue},
		{Label: "Activity", Value: s.Activity.Name, Sub: nextLevelHint(s.Steps.Steps)},
	}, cw)

	return counter + "\n" + stats
}

// nextLevelHint names the next activity level and how far away it is.
func nextLevelHint(steps int) string {
	for _, l := range model.ActivityLevels {
		if l.MinSteps > steps {
			return fmt.Sprintf("%s at %s", l.Name, cli.FormatSteps(l.MinSteps))
		}
	}
	return "top level"
}
