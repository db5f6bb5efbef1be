package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"nebasemap/internal/basemap"
)

// ErrInterrupted is returned when the user quits the progress view before
// the render finished.
var ErrInterrupted = errors.New("render interrupted")

// programObserver forwards composer callbacks into the running program.
type programObserver struct{ p *tea.Program }

func (o programObserver) LayerStarted(index, total int, name string) {
	o.p.Send(layerStartedMsg{index: index, total: total, name: name})
}

func (o programObserver) LayerDone(index, total int, report basemap.LayerReport) {
	o.p.Send(layerDoneMsg{index: index, total: total, report: report})
}

// RunWithProgress runs render on its own goroutine while a progress view
// follows it. render receives the observer to hand to the composer. The
// render's own error is returned once it finishes.
func RunWithProgress(styleName string, layers int, render func(basemap.Observer) error, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(newModel(styleName, layers), opts...)
	errc := make(chan error, 1)
	go func() {
		err := render(programObserver{p})
		errc <- err
		p.Send(renderDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.interrupted {
		return ErrInterrupted
	}
	return <-errc
}
