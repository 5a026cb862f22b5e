package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the explorer: a summary panel for the selected worker and
// the by-age benefit table.
func (m Model) View() string {
	if m.err != nil {
		return AppStyle.Render(ErrorStyle.Render("Error: " + m.err.Error()))
	}
	w := m.worker()
	if w == nil {
		return AppStyle.Render(SubtitleStyle.Render("Loading session..."))
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("Social Security Benefit Explorer"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Worker %d of %d (tab to switch)", m.selected+1, len(m.workers))))
	b.WriteString("\n\n")

	base, bp1, bp2 := w.BaseBenefit()
	summary := strings.Join([]string{
		metric("Name", w.Name()),
		metric("Full retirement age", w.FullRetirementAge().String()),
		metric("AIME", "$"+w.AIME().StringFixed(0)),
		metric("Bend points", fmt.Sprintf("$%s / $%s", bp1.StringFixed(0), bp2.StringFixed(0))),
		metric("Base benefit", "$"+base.StringFixed(2)),
		metric("Claiming age", HighlightStyle.Render(m.claimAge.String())),
		metric("Monthly benefit", HighlightStyle.Render("$"+w.MonthlyBenefitAtStart().StringFixed(0))),
	}, "\n")
	b.WriteString(BorderStyle.Render(summary))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(StatusBarStyle.Render("←/→ month  shift+←/→ year  tab worker  q quit"))

	return AppStyle.Render(b.String())
}

func metric(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		MetricLabelStyle.Render(label),
		MetricValueStyle.Render(value))
}
