// Package tui is an interactive claiming-age explorer: it loads a session
// file, computes benefits for each worker, and lets the user step the
// claiming age month by month to see the effect on the monthly benefit.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ssgo/internal/calculation"
	"github.com/rgehrsitz/ssgo/internal/config"
	"github.com/rgehrsitz/ssgo/internal/domain"
)

// Model is the application state: the shared engine, its workers, the
// currently selected worker and claiming age, and the by-age benefit
// table.
type Model struct {
	configPath string

	engine  *calculation.Engine
	workers []*calculation.Worker

	selected int
	claimAge domain.Age

	table table.Model

	width  int
	height int

	err error
}

// configLoadedMsg carries the constructed engine and workers.
type configLoadedMsg struct {
	engine  *calculation.Engine
	workers []*calculation.Worker
}

// errMsg carries a fatal load error.
type errMsg struct {
	err error
}

// NewModel creates the application model for a session file path.
func NewModel(configPath string) Model {
	columns := []table.Column{
		{Title: "Claim age", Width: 12},
		{Title: "Multiplier", Width: 12},
		{Title: "Monthly benefit", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
		table.WithFocused(true),
	)
	return Model{
		configPath: configPath,
		table:      t,
		width:      80,
		height:     24,
	}
}

// Init loads the session file.
func (m Model) Init() tea.Cmd {
	return loadSessionCmd(m.configPath)
}

func loadSessionCmd(path string) tea.Cmd {
	return func() tea.Msg {
		session, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return errMsg{err: err}
		}
		engine, workers, err := config.BuildEngine(session)
		if err != nil {
			return errMsg{err: err}
		}
		if len(workers) == 0 {
			return errMsg{err: fmt.Errorf("no workers in %s", path)}
		}
		return configLoadedMsg{engine: engine, workers: workers}
	}
}

// worker returns the currently selected worker, or nil before load.
func (m Model) worker() *calculation.Worker {
	if m.selected < 0 || m.selected >= len(m.workers) {
		return nil
	}
	return m.workers[m.selected]
}
