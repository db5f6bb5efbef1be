package tui

import tea "github.com/charmbracelet/bubbletea"

const maxBarWidth = 60

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-4, 10), maxBarWidth)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.interrupted = true
			return m, tea.Quit
		}
	case layerStartedMsg:
		m.total = msg.total
		m.current = msg.name
	case layerDoneMsg:
		m.total = msg.total
		m.done = append(m.done, msg.report)
		m.current = ""
	case renderDoneMsg:
		m.finished = true
		m.err = msg.err
		m.current = ""
		return m, tea.Quit
	}
	return m, nil
}
