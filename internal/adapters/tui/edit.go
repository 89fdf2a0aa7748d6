package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvidal/spur/internal/domain"
)

// editRow is one row of the flattened edit list: either a bucket header
// (index == -1) or an activity within a bucket.
type editRow struct {
	minutes int
	index   int
}

// enterEdit switches to the edit view, rebuilding all rows from the
// current store state.
func (m *Model) enterEdit() {
	m.active = viewEdit
	m.editCursor = 0
	m.editingLabel = false
	m.addingBucket = false
	m.confirmDelete = false
	m.statusMsg = ""
	m.rebuildRows()
}

// rebuildRows flattens the bucket mapping into display rows, buckets
// sorted ascending, activities in insertion order.
func (m *Model) rebuildRows() {
	buckets := m.svc.Buckets()
	m.rows = m.rows[:0]
	for _, minutes := range buckets.Keys() {
		m.rows = append(m.rows, editRow{minutes: minutes, index: -1})
		for i := range buckets[minutes] {
			m.rows = append(m.rows, editRow{minutes: minutes, index: i})
		}
	}
	if m.editCursor >= len(m.rows) {
		m.editCursor = len(m.rows) - 1
	}
	if m.editCursor < 0 {
		m.editCursor = 0
	}
}

// updateEdit handles keys on the edit view.
func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingLabel {
		return m.updateLabelInput(msg)
	}
	if m.addingBucket {
		return m.updateBucketInput(msg)
	}

	row := m.currentRow()

	if m.confirmDelete {
		switch msg.String() {
		case "d", "y":
			m.confirmDelete = false
			if err := m.svc.DeleteBucket(m.ctx, row.minutes); err != nil {
				m.statusMsg = err.Error()
			} else {
				m.afterMutation()
			}
		default:
			m.confirmDelete = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.active = viewSelect
		m.statusMsg = ""
	case "up", "k":
		if m.editCursor > 0 {
			m.editCursor--
		}
		m.statusMsg = ""
	case "down", "j":
		if m.editCursor < len(m.rows)-1 {
			m.editCursor++
		}
		m.statusMsg = ""
	case "enter":
		if row.index >= 0 {
			m.editingLabel = true
			m.input.SetValue(m.svc.Buckets()[row.minutes][row.index])
			m.input.CursorEnd()
			m.input.Focus()
			return m, textinput.Blink
		}
	case "a":
		if err := m.svc.AddActivity(m.ctx, row.minutes); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.afterMutation()
		}
	case "n":
		m.addingBucket = true
		m.input.SetValue("")
		m.input.Placeholder = "minutes (1-999)"
		m.input.Focus()
		return m, textinput.Blink
	case "d":
		if row.index >= 0 {
			switch err := m.svc.DeleteActivity(m.ctx, row.minutes, row.index); err {
			case nil:
				m.afterMutation()
			default:
				m.statusMsg = err.Error()
			}
		} else {
			// Bucket deletion is destructive: take it through a
			// confirmation step first.
			if len(m.svc.Buckets()) == 1 {
				m.statusMsg = domain.ErrLastBucket.Error()
			} else {
				m.confirmDelete = true
			}
		}
	}
	return m, nil
}

// updateLabelInput handles keys while an activity label is being edited.
func (m Model) updateLabelInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		row := m.currentRow()
		label := strings.TrimSpace(m.input.Value())
		if label != "" {
			m.svc.UpdateActivity(m.ctx, row.minutes, row.index, label)
		}
		m.editingLabel = false
		m.input.Blur()
		m.afterMutation()
		return m, nil
	case "esc":
		m.editingLabel = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateBucketInput handles keys while a new bucket duration is typed.
func (m Model) updateBucketInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.addingBucket = false
		m.input.Blur()
		m.input.Placeholder = ""

		minutes, err := strconv.Atoi(value)
		if err != nil {
			m.statusMsg = domain.ErrBucketRange.Error()
			return m, nil
		}
		if err := m.svc.AddBucket(m.ctx, minutes); err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.afterMutation()
		return m, nil
	case "esc":
		m.addingBucket = false
		m.input.Blur()
		m.input.Placeholder = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// afterMutation re-renders both lists that depend on store state: the
// edit rows and the duration-selection entries.
func (m *Model) afterMutation() {
	m.statusMsg = ""
	m.rebuildRows()
	m.refreshDurations()
}

// currentRow returns the row under the edit cursor.
func (m Model) currentRow() editRow {
	if len(m.rows) == 0 || m.editCursor >= len(m.rows) {
		return editRow{index: -1}
	}
	return m.rows[m.editCursor]
}
