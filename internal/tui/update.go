package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

var (
	minClaimAge = domain.Age{Years: domain.BenefitAge}
	maxClaimAge = domain.Age{Years: 70}
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case configLoadedMsg:
		m.engine = msg.engine
		m.workers = msg.workers
		m.selected = 0
		m.claimAge = m.workers[0].CollectionStartAge()
		m.refresh()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "left", "h":
		m.stepClaimAge(-1)
		return m, nil
	case "right", "l":
		m.stepClaimAge(1)
		return m, nil
	case "shift+left", "H":
		m.stepClaimAge(-12)
		return m, nil
	case "shift+right", "L":
		m.stepClaimAge(12)
		return m, nil

	case "tab":
		if len(m.workers) > 0 {
			m.selected = (m.selected + 1) % len(m.workers)
			m.claimAge = m.workers[m.selected].CollectionStartAge()
			m.refresh()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// stepClaimAge moves the claiming age by a number of months, clamped to
// the statutory 62-70 window, and re-derives the worker.
func (m *Model) stepClaimAge(months int) {
	w := m.worker()
	if w == nil {
		return
	}
	age := domain.NewAge(m.claimAge.Years, m.claimAge.Months+months)
	if age.Cmp(minClaimAge) < 0 {
		age = minClaimAge
	}
	if age.Cmp(maxClaimAge) > 0 {
		age = maxClaimAge
	}
	m.claimAge = age
	m.refresh()
}

// refresh re-derives the selected worker at the chosen claiming age and
// rebuilds the by-age table. The worker mutators invalidate their own
// caches; the engine itself is never touched here.
func (m *Model) refresh() {
	w := m.worker()
	if w == nil {
		return
	}
	w.SetCollectionStartAge(m.claimAge)

	rows := make([]table.Row, 0, (maxClaimAge.Years-minClaimAge.Years)*2+1)
	for years := minClaimAge.Years; years <= maxClaimAge.Years; years++ {
		for _, months := range []int{0, 6} {
			if years == maxClaimAge.Years && months > 0 {
				break
			}
			age := domain.Age{Years: years, Months: months}
			mult := w.BenefitMultiplier(age)
			benefit := w.MonthlyBenefitAt(age)
			rows = append(rows, table.Row{
				age.String(),
				mult.StringFixed(4),
				fmt.Sprintf("$%s", benefit.StringFixed(0)),
			})
		}
	}
	m.table.SetRows(rows)
}
