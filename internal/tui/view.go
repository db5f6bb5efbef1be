package tui

import (
	"fmt"
	"strings"
)

// recentLayers caps how many finished layers stay listed under the bar.
const recentLayers = 5

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("basemap " + m.style))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.percent()))
	fmt.Fprintf(&b, "  %d/%d layers\n", len(m.done), m.total)

	start := max(0, len(m.done)-recentLayers)
	for _, l := range m.done[start:] {
		b.WriteString(okStyle.Render("✓ "))
		b.WriteString(l.Name)
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d features, %s", l.Stats.Features, shortDuration(l.Duration))))
		b.WriteByte('\n')
	}
	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render("✗ " + m.err.Error()))
		b.WriteByte('\n')
	case m.current != "":
		b.WriteString(dimStyle.Render("… " + m.current))
		b.WriteByte('\n')
	}
	return b.String()
}
