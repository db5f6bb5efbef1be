// Package tui is the terminal side of the basemap tool: a live progress view
// while layers render, a summary table and a braille preview of the result.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"nebasemap/internal/basemap"
)

type layerStartedMsg struct {
	index, total int
	name         string
}

type layerDoneMsg struct {
	index, total int
	report       basemap.LayerReport
}

type renderDoneMsg struct{ err error }

// Model tracks a render in flight.
type Model struct {
	width int

	style   string
	total   int
	current string
	done    []basemap.LayerReport

	bar progress.Model

	finished    bool
	interrupted bool
	err         error
}

func newModel(styleName string, total int) Model {
	return Model{
		style: styleName,
		total: total,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// percent is the share of layers finished.
func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(len(m.done)) / float64(m.total)
}
