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

const maxLogRows = 8

func (a App) waterKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "a", "enter", "+":
		return a, addWaterCmd(a.tr, a.data.date, 0, model.GlassSizes[a.glassIdx]), true
	case "u", "backspace":
		return a, undoWaterCmd(a.tr, a.data.date), true
	case "left", "[":
		a.glassIdx = max(a.glassIdx-1, 0)
		return a, nil, true
	case "right", "]":
		a.glassIdx = min(a.glassIdx+1, len(model.GlassSizes)-1)
		return a, nil, true
	case "m":
		m, cmd := a.openForm(formWaterAmount,
			newAmountForm(a.vals, "Custom amount (ml)", "", model.ValidateWaterAmount))
		return m, cmd, true
	case "g":
		m, cmd := a.openForm(formWaterGoal,
			newAmountForm(a.vals, "Daily water goal (ml)", fmt.Sprint(a.data.snap.WaterGoal), model.ValidateWaterGoal))
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) renderWaterTab(cw int) string {
	t := theme.Active
	s := a.data.snap
	glass := model.GlassSizes[a.glassIdx]

	bigStyle := lipgloss.NewStyle().Foreground(components.GoalColor(s.WaterProgress, t.Water)).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(bigStyle.Render(cli.FormatML(s.Water.TotalML)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" of %s · %d glasses", cli.FormatML(s.WaterGoal), s.Water.Glasses)))
	b.WriteString("\n\n")
	b.WriteString(components.GoalBar("Progress", s.WaterProgress, t.Water, 8, max(cw-24, 10)))
	b.WriteString("\n\n")

	target := s.Water.Glasses + model.RemainingGlasses(s.WaterGoal, s.Water.TotalML, glass)
	b.WriteString(components.GlassRow(s.Water.Glasses, target, glassRowLimit))
	b.WriteString("\n")
	if s.WaterGoalMet() {
		b.WriteString(lipgloss.NewStyle().Foreground(t.GoalMet).Bold(true).Render("Goal reached! 🎉"))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s to go · about %d more glasses of %s",
			cli.FormatML(s.WaterRemaining), model.RemainingGlasses(s.WaterGoal, s.Water.TotalML, glass), cli.FormatML(glass))))
	}
	b.WriteString("\n\n")
	b.WriteString(glassPicker(a.glassIdx))
	b.WriteString("\n\n")
	b.WriteString(hints("a", "drink", "←→", "glass", "m", "custom", "u", "undo", "g", "goal"))

	intake := components.ContentCard("Hydration", b.String(), cw)
	return intake + "\n" + components.ContentCard("Today's Log", a.renderWaterLog(), cw)
}

func glassPicker(selected int) string {
	t := theme.Active
	on := lipgloss.NewStyle().Foreground(t.Water).Background(t.SurfaceHover).Bold(true)
	off := lipgloss.NewStyle().Foreground(t.TextMuted)

	parts := make([]string, len(model.GlassSizes))
	for i, ml := range model.GlassSizes {
		label := " " + cli.FormatML(ml) + " "
		if i == selected {
			parts[i] = on.Render(label)
		} else {
			parts[i] = off.Render(label)
		}
	}
	return lipgloss.NewStyle().Foreground(t.TextDim).Render("Glass ") + strings.Join(parts, " ")
}

func (a App) renderWaterLog() string {
	t := theme.Active
	entries := a.data.entries
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No drinks logged yet today.")
	}

	timeStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amountStyle := lipgloss.NewStyle().Foreground(t.Water).Bold(true)
	agoStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var lines []string
	for i := len(entries) - 1; i >= 0 && len(lines) < maxLogRows; i-- {
		e := entries[i]
		lines = append(lines,
			timeStyle.Render(e.Timestamp.In(a.tr.Location()).Format("15:04"))+"  "+
				amountStyle.Render(fmt.Sprintf("%-7s", "+"+cli.FormatML(e.Amount)))+"  "+
				agoStyle.Render(cli.FormatAgo(e.Timestamp, a.data.now)))
	}
	if hidden := len(entries) - len(lines); hidden > 0 {
		lines = append(lines, agoStyle.Render(fmt.Sprintf("… %d earlier", hidden)))
	}
	return strings.Join(lines, "\n")
}
