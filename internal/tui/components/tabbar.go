package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/truvida/truvida/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune // shortcut, always the lowercase first letter of Name
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Home", Key: 'h'},
	{Name: "Water", Key: 'w'},
	{Name: "Steps", Key: 's'},
	{Name: "Profile", Key: 'p'},
	{Name: "Clans", Key: 'c'},
}

// tabLabel is the unstyled text of a tab. Inactive tabs show their shortcut
// as "[H]ome".
func tabLabel(i, activeIdx int) string {
	name := Tabs[i].Name
	if i == activeIdx {
		return " " + name + " "
	}
	return " [" + name[:1] + "]" + name[1:] + " "
}

// TabWidth returns the rendered width of tab i.
func TabWidth(i, activeIdx int) int {
	return lipgloss.Width(tabLabel(i, activeIdx))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border)

	parts := make([]string, len(Tabs))
	for i := range Tabs {
		if i == activeIdx {
			parts[i] = activeStyle.Render(tabLabel(i, activeIdx))
		} else {
			parts[i] = inactiveStyle.Render(tabLabel(i, activeIdx))
		}
	}
	row := strings.Join(parts, sepStyle.Render("│"))
	return lipgloss.NewStyle().Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab under column x, or -1.
func TabAtX(activeIdx, x int) int {
	pos := 0
	for i := range Tabs {
		w := TabWidth(i, activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}
