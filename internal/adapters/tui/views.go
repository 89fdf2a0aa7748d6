package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.active {
	case viewResult:
		content = m.viewResult()
	case viewEdit:
		content = m.viewEdit()
	default:
		content = m.viewSelect()
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
}

func (m Model) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorAccent))
}

func (m Model) helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
}

func (m Model) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorError))
}

// viewSelect renders the duration-selection list.
func (m Model) viewSelect() string {
	var sections []string

	sections = append(sections, m.titleStyle().Render(fmt.Sprintf("%s Spur", m.theme.IconApp)))
	sections = append(sections, m.helpStyle().Render("How many minutes do you have?"))
	sections = append(sections, "")

	activeStyle := m.accentStyle().Bold(true)
	dimStyle := m.helpStyle()

	for i, minutes := range m.durations {
		label := fmt.Sprintf("%3d min", minutes)
		if i == m.cursor {
			sections = append(sections, activeStyle.Render("▸ "+label))
		} else {
			sections = append(sections, dimStyle.Render("  "+label))
		}
	}

	if m.statusMsg != "" {
		sections = append(sections, "")
		sections = append(sections, m.errorStyle().Render(m.statusMsg))
	}

	sections = append(sections, "")
	sections = append(sections, m.helpStyle().Render("↑/↓ navigate · enter pick · [e]dit · [q]uit"))

	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

// viewResult renders the suggested activity and the countdown.
func (m Model) viewResult() string {
	var sections []string

	sections = append(sections, m.titleStyle().Render(fmt.Sprintf("%s Spur", m.theme.IconApp)))
	sections = append(sections, m.accentStyle().Bold(true).Render(m.pick.Activity))
	sections = append(sections, m.helpStyle().Render(fmt.Sprintf("%d minutes", m.pick.Minutes)))
	sections = append(sections, "")

	timerStyle := m.accentStyle().Bold(true)
	sections = append(sections, timerStyle.Render(formatSeconds(m.timer.Remaining)))

	elapsed := m.timer.Total - m.timer.Remaining
	var frac float64
	if m.timer.Total > 0 {
		frac = float64(elapsed) / float64(m.timer.Total)
	}
	if m.justDone {
		frac = 1.0
	}
	sections = append(sections, m.progress.ViewAs(frac))

	sections = append(sections, "")
	if m.justDone {
		sections = append(sections, m.accentStyle().Render("Time's up!"))
		sections = append(sections, "")
		sections = append(sections, m.helpStyle().Render("[s]tart again  [n]ew suggestion  [b]ack  [q]uit"))
	} else if m.timer.IsRunning() {
		sections = append(sections, m.helpStyle().Render("[r]eset  [b]ack  [q]uit"))
	} else {
		sections = append(sections, m.helpStyle().Render("[s]tart  [n]ew suggestion  [b]ack  [q]uit"))
	}

	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

// viewEdit renders the bucket/activity editor.
func (m Model) viewEdit() string {
	var b strings.Builder

	b.WriteString(m.titleStyle().Render(fmt.Sprintf("%s Edit activities", m.theme.IconApp)))
	b.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := m.accentStyle().Bold(true)
	dimStyle := m.helpStyle()
	buckets := m.svc.Buckets()

	for i, row := range m.rows {
		selected := i == m.editCursor
		var line string

		if row.index < 0 {
			line = fmt.Sprintf("%d min", row.minutes)
			if selected {
				b.WriteString(activeStyle.Render("▸ "+line) + "\n")
			} else {
				b.WriteString(headerStyle.Render("  "+line) + "\n")
			}
			continue
		}

		if selected && m.editingLabel {
			b.WriteString("    ▸ " + m.input.View() + "\n")
			continue
		}

		line = buckets[row.minutes][row.index]
		if selected {
			b.WriteString(activeStyle.Render("    ▸ "+line) + "\n")
		} else {
			b.WriteString(dimStyle.Render("      "+line) + "\n")
		}
	}

	b.WriteString("\n")

	switch {
	case m.addingBucket:
		b.WriteString("New bucket: " + m.input.View() + "\n")
		b.WriteString(dimStyle.Render("enter save · esc cancel") + "\n")
	case m.confirmDelete:
		row := m.currentRow()
		count := len(buckets[row.minutes])
		warn := fmt.Sprintf("Delete the %d min bucket and its %d activities? [d] confirm · any other key cancels", row.minutes, count)
		b.WriteString(m.errorStyle().Render(warn) + "\n")
	case m.editingLabel:
		b.WriteString(dimStyle.Render("enter save · esc cancel") + "\n")
	default:
		b.WriteString(dimStyle.Render("↑/↓ navigate · enter rename · [a]dd activity · [n]ew bucket · [d]elete · esc back") + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString(m.errorStyle().Render(m.statusMsg) + "\n")
	}

	return b.String()
}
