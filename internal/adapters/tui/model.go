// Package tui provides the terminal user interface implementation
// using the Bubbletea framework. It owns the screen state: exactly one
// of the duration-select, result, and edit views is active at a time.
package tui

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvidal/spur/internal/config"
	"github.com/mvidal/spur/internal/domain"
	"github.com/mvidal/spur/internal/services"
)

// view identifies the active screen.
type view int

const (
	viewSelect view = iota
	viewResult
	viewEdit
)

// tickMsg is sent once per second while a countdown is running. The
// generation number makes stale ticks cancellable: any navigation or
// reset bumps the model's generation, and ticks carrying an old number
// are dropped, so at most one tick loop is ever live.
type tickMsg struct {
	gen int
}

// Model is the Bubbletea model for the full application.
type Model struct {
	ctx   context.Context
	svc   *services.ActivityService
	theme config.ThemeConfig

	width  int
	height int

	active    view
	durations []int // sorted bucket keys, rebuilt after every mutation
	cursor    int

	// Result view state.
	pick     *domain.Pick
	timer    *domain.Timer
	timerGen int
	justDone bool // completion flash until the next action
	progress progress.Model

	// Edit view state.
	rows          []editRow
	editCursor    int
	input         textinput.Model
	editingLabel  bool
	addingBucket  bool
	confirmDelete bool
	statusMsg     string

	// onTimeUp fires exactly once per completed countdown.
	onTimeUp func(*domain.Pick)
}

// NewModel creates the TUI model over the given service.
func NewModel(ctx context.Context, svc *services.ActivityService, theme *config.ThemeConfig) Model {
	ti := textinput.New()
	ti.CharLimit = 80
	ti.Width = 40

	resolved := resolveTheme(theme)
	return Model{
		ctx:       ctx,
		svc:       svc,
		theme:     resolved,
		active:    viewSelect,
		durations: svc.Buckets().Keys(),
		progress:  progress.New(progress.WithGradient(resolved.TimerGradientStart, resolved.TimerGradientEnd)),
		input:     ti,
	}
}

// SetOnTimeUp sets the completion notification callback.
func (m *Model) SetOnTimeUp(fn func(*domain.Pick)) {
	m.onTimeUp = fn
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, svc *services.ActivityService, theme *config.ThemeConfig, onTimeUp func(*domain.Pick)) error {
	m := NewModel(ctx, svc, theme)
	m.SetOnTimeUp(onTimeUp)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 8
		return m, nil

	case tickMsg:
		if msg.gen != m.timerGen {
			return m, nil // cancelled loop, drop it
		}
		if m.timer == nil || !m.timer.IsRunning() {
			return m, nil
		}
		if m.timer.Tick() {
			m.justDone = true
			m.svc.CompletePick(m.ctx, m.pick.ID)
			if m.onTimeUp != nil {
				m.onTimeUp(m.pick)
			}
			return m, nil
		}
		return m, tickCmd(m.timerGen)

	case tea.KeyMsg:
		switch m.active {
		case viewSelect:
			return m.updateSelect(msg)
		case viewResult:
			return m.updateResult(msg)
		case viewEdit:
			return m.updateEdit(msg)
		}
	}

	return m, nil
}

// updateSelect handles keys on the duration-selection view.
func (m Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.durations)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.durations) == 0 {
			return m, nil
		}
		return m.startSelection(m.durations[m.cursor])
	case "e":
		m.enterEdit()
	}
	return m, nil
}

// startSelection picks an activity and switches to the result view with
// a fresh idle timer. Any previous tick loop is orphaned by the
// generation bump.
func (m Model) startSelection(minutes int) (tea.Model, tea.Cmd) {
	pick, err := m.svc.Pick(m.ctx, minutes)
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}

	m.pick = pick
	m.timer = domain.NewTimer(minutes * 60)
	m.timerGen++
	m.justDone = false
	m.statusMsg = ""
	m.active = viewResult
	return m, nil
}

// updateResult handles keys on the result/timer view.
func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s":
		if m.timer.Start() {
			m.justDone = false
			m.timerGen++
			return m, tickCmd(m.timerGen)
		}
	case "r":
		m.timer.Reset()
		m.timerGen++ // orphan the running tick loop
		m.justDone = false
	case "n":
		// Another suggestion from the same bucket.
		return m.startSelection(m.pick.Minutes)
	case "esc", "b":
		m.leaveResult()
	}
	return m, nil
}

// leaveResult returns to the duration list. The timer is discarded, not
// persisted, and its tick loop is orphaned.
func (m *Model) leaveResult() {
	m.timerGen++
	m.timer = nil
	m.pick = nil
	m.justDone = false
	m.active = viewSelect
}

// refreshDurations rebuilds the duration list from the store. Buckets
// are dynamic, so every mutation is followed by this.
func (m *Model) refreshDurations() {
	m.durations = m.svc.Buckets().Keys()
	if m.cursor >= len(m.durations) {
		m.cursor = len(m.durations) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// tickCmd schedules the next countdown tick for the given generation.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// formatSeconds formats a second count as MM:SS.
func formatSeconds(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// resolveTheme fills any empty string fields in the given ThemeConfig
// with defaults. If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}
