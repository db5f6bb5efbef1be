package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"nebasemap/internal/basemap"
)

var summaryColumns = []table.Column{
	{Title: "Layer", Width: 28},
	{Title: "Records", Width: 8},
	{Title: "Features", Width: 8},
	{Title: "Dropped", Width: 8},
	{Title: "Skipped", Width: 8},
	{Title: "Elements", Width: 8},
	{Title: "Time", Width: 9},
}

// Summary tabulates a render report, one row per layer plus the graticule
// and a total line.
func Summary(rep basemap.Report) string {
	rows := make([]table.Row, 0, len(rep.Layers)+2)
	for _, l := range rep.Layers {
		rows = append(rows, summaryRow(l.Name, l))
	}
	if rep.Graticule != nil {
		rows = append(rows, summaryRow("graticule", *rep.Graticule))
	}
	tot := rep.Totals()
	rows = append(rows, table.Row{
		"total",
		strconv.Itoa(tot.Records),
		strconv.Itoa(tot.Features),
		strconv.Itoa(tot.Dropped),
		strconv.Itoa(tot.Skipped),
		strconv.Itoa(rep.Elements),
		shortDuration(rep.Duration),
	})

	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(borderCol).BorderBottom(true)
	st.Selected = lipgloss.NewStyle()
	t := table.New(
		table.WithColumns(summaryColumns),
		table.WithRows(rows),
		table.WithStyles(st),
		table.WithHeight(len(rows)+2),
	)
	head := Title(fmt.Sprintf("style %s", rep.Style))
	return head + "\n" + t.View()
}

func summaryRow(name string, l basemap.LayerReport) table.Row {
	return table.Row{
		name,
		strconv.Itoa(l.Stats.Records),
		strconv.Itoa(l.Stats.Features),
		strconv.Itoa(l.Stats.Dropped),
		strconv.Itoa(l.Stats.Skipped),
		strconv.Itoa(l.Elements),
		shortDuration(l.Duration),
	}
}

func shortDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(100 * time.Microsecond).String()
	}
	return d.String()
}
