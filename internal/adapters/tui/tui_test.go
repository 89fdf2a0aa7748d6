package tui

// Key-flow tests for the three-view model. Each test exercises a
// complete user interaction so regressions in key dispatch, guard
// conditions, or tick handling fail fast here.

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvidal/spur/internal/adapters/storage"
	"github.com/mvidal/spur/internal/domain"
	"github.com/mvidal/spur/internal/services"
)

func key(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := services.NewActivityService(store)
	svc.Load(context.Background())

	m := NewModel(context.Background(), svc, nil)
	m.width = 80
	m.height = 24
	return m
}

// resultModel drives a model to the result view via the 5 min bucket.
func resultModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	m.cursor = 1 // durations are [1 5 10 20 40]
	result, _ := m.Update(key("enter"))
	updated := result.(Model)
	if updated.active != viewResult {
		t.Fatal("enter should switch to the result view")
	}
	return updated
}

func TestSelect_Navigation(t *testing.T) {
	m := newTestModel(t)

	result, _ := m.Update(key("down"))
	updated := result.(Model)
	if updated.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", updated.cursor)
	}

	result, _ = updated.Update(key("up"))
	updated = result.(Model)
	if updated.cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", updated.cursor)
	}

	result, _ = updated.Update(key("up"))
	updated = result.(Model)
	if updated.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", updated.cursor)
	}
}

func TestSelect_EnterPicksFromBucket(t *testing.T) {
	m := resultModel(t)

	if m.pick == nil {
		t.Fatal("no pick after enter")
	}
	if m.pick.Minutes != 5 {
		t.Errorf("pick minutes = %d, want 5", m.pick.Minutes)
	}
	if m.timer == nil || m.timer.Total != 5*60 {
		t.Errorf("timer not initialized to 300 seconds")
	}
	if m.timer.State != domain.TimerIdle {
		t.Error("timer should start idle, not running")
	}
}

func TestResult_StartRunsCountdown(t *testing.T) {
	m := resultModel(t)

	result, cmd := m.Update(key("s"))
	updated := result.(Model)
	if !updated.timer.IsRunning() {
		t.Error("[s] should start the timer")
	}
	if cmd == nil {
		t.Error("[s] should schedule the first tick")
	}
}

func TestResult_TickDecrements(t *testing.T) {
	m := resultModel(t)
	result, _ := m.Update(key("s"))
	updated := result.(Model)

	result, cmd := updated.Update(tickMsg{gen: updated.timerGen})
	updated = result.(Model)
	if updated.timer.Remaining != 5*60-1 {
		t.Errorf("remaining = %d after one tick, want %d", updated.timer.Remaining, 5*60-1)
	}
	if cmd == nil {
		t.Error("a mid-run tick should schedule the next one")
	}
}

func TestResult_StaleTickDropped(t *testing.T) {
	m := resultModel(t)
	result, _ := m.Update(key("s"))
	updated := result.(Model)

	result, cmd := updated.Update(tickMsg{gen: updated.timerGen - 1})
	updated = result.(Model)
	if updated.timer.Remaining != 5*60 {
		t.Errorf("stale tick moved the timer to %d", updated.timer.Remaining)
	}
	if cmd != nil {
		t.Error("a stale tick must not reschedule")
	}
}

func TestResult_CompletionFiresOnce(t *testing.T) {
	m := resultModel(t)

	fired := 0
	m.SetOnTimeUp(func(*domain.Pick) { fired++ })

	result, _ := m.Update(key("s"))
	updated := result.(Model)
	updated.timer.Remaining = 1

	result, cmd := updated.Update(tickMsg{gen: updated.timerGen})
	updated = result.(Model)

	if fired != 1 {
		t.Errorf("onTimeUp fired %d times, want 1", fired)
	}
	if !updated.justDone {
		t.Error("completion should set justDone")
	}
	if cmd != nil {
		t.Error("the completing tick must stop the loop")
	}
	if updated.timer.State != domain.TimerIdle {
		t.Errorf("timer state = %v after completion, want idle", updated.timer.State)
	}
}

func TestResult_ResetOrphansTickLoop(t *testing.T) {
	m := resultModel(t)
	result, _ := m.Update(key("s"))
	updated := result.(Model)
	staleGen := updated.timerGen

	result, _ = updated.Update(tickMsg{gen: staleGen})
	updated = result.(Model)

	result, _ = updated.Update(key("r"))
	updated = result.(Model)
	if updated.timer.Remaining != 5*60 {
		t.Errorf("[r] remaining = %d, want full duration", updated.timer.Remaining)
	}
	if updated.timer.IsRunning() {
		t.Error("[r] should leave the timer idle")
	}

	// The old loop's next tick arrives after the reset.
	result, cmd := updated.Update(tickMsg{gen: staleGen})
	updated = result.(Model)
	if updated.timer.Remaining != 5*60 || cmd != nil {
		t.Error("tick from the pre-reset loop should be dropped")
	}
}

func TestResult_NewSuggestionSameBucket(t *testing.T) {
	m := resultModel(t)
	result, _ := m.Update(key("n"))
	updated := result.(Model)

	if updated.active != viewResult {
		t.Error("[n] should stay on the result view")
	}
	if updated.pick == nil || updated.pick.Minutes != 5 {
		t.Error("[n] should re-pick from the same bucket")
	}
	if updated.timer.State != domain.TimerIdle || updated.timer.Remaining != 5*60 {
		t.Error("[n] should hand out a fresh idle timer")
	}
}

func TestResult_BackDiscardsTimer(t *testing.T) {
	m := resultModel(t)
	result, _ := m.Update(key("s"))
	updated := result.(Model)
	staleGen := updated.timerGen

	result, _ = updated.Update(key("b"))
	updated = result.(Model)
	if updated.active != viewSelect {
		t.Error("[b] should return to the select view")
	}
	if updated.timer != nil || updated.pick != nil {
		t.Error("[b] should discard the timer and pick")
	}

	result, cmd := updated.Update(tickMsg{gen: staleGen})
	if cmd != nil {
		t.Error("ticks from a discarded timer should be dropped")
	}
	_ = result
}

func TestEdit_EnterAndLeave(t *testing.T) {
	m := newTestModel(t)
	result, _ := m.Update(key("e"))
	updated := result.(Model)
	if updated.active != viewEdit {
		t.Fatal("[e] should open the edit view")
	}
	if len(updated.rows) == 0 {
		t.Fatal("edit view should have rows")
	}

	result, _ = updated.Update(key("esc"))
	updated = result.(Model)
	if updated.active != viewSelect {
		t.Error("esc should return to the select view")
	}
}

func TestEdit_AddActivity(t *testing.T) {
	m := newTestModel(t)
	result, _ := m.Update(key("e"))
	updated := result.(Model)

	before := len(updated.rows)
	result, _ = updated.Update(key("a"))
	updated = result.(Model)
	if len(updated.rows) != before+1 {
		t.Errorf("rows = %d after [a], want %d", len(updated.rows), before+1)
	}
}

func TestEdit_DeleteBucketNeedsConfirm(t *testing.T) {
	m := newTestModel(t)
	result, _ := m.Update(key("e"))
	updated := result.(Model)

	// Cursor starts on the first bucket header.
	result, _ = updated.Update(key("d"))
	updated = result.(Model)
	if !updated.confirmDelete {
		t.Fatal("[d] on a bucket should ask for confirmation")
	}
	if len(updated.svc.Buckets()) != 5 {
		t.Fatal("[d] must not delete before confirmation")
	}

	result, _ = updated.Update(key("d"))
	updated = result.(Model)
	if updated.confirmDelete {
		t.Error("confirmation flag should clear after the second [d]")
	}
	if len(updated.svc.Buckets()) != 4 {
		t.Errorf("buckets = %d after confirmed delete, want 4", len(updated.svc.Buckets()))
	}
	if len(updated.durations) != 4 {
		t.Errorf("durations list not refreshed after delete")
	}
}

func TestEdit_DeleteBucketAborted(t *testing.T) {
	m := newTestModel(t)
	result, _ := m.Update(key("e"))
	updated := result.(Model)

	result, _ = updated.Update(key("d"))
	updated = result.(Model)
	result, _ = updated.Update(key("x"))
	updated = result.(Model)

	if updated.confirmDelete {
		t.Error("any other key should cancel the confirmation")
	}
	if len(updated.svc.Buckets()) != 5 {
		t.Error("an aborted delete must not touch the data")
	}
}

func TestEdit_RenameActivity(t *testing.T) {
	m := newTestModel(t)
	result, _ := m.Update(key("e"))
	updated := result.(Model)

	// Move onto the first activity row under the first header.
	result, _ = updated.Update(key("down"))
	updated = result.(Model)
	result, _ = updated.Update(key("enter"))
	updated = result.(Model)
	if !updated.editingLabel {
		t.Fatal("enter on an activity should start label editing")
	}

	updated.input.SetValue("Renamed activity")
	result, _ = updated.Update(key("enter"))
	updated = result.(Model)
	if updated.editingLabel {
		t.Error("enter should finish label editing")
	}

	row := updated.rows[1]
	if got := updated.svc.Buckets()[row.minutes][row.index]; got != "Renamed activity" {
		t.Errorf("activity label = %q, want %q", got, "Renamed activity")
	}
}

func TestEdit_AddBucket(t *testing.T) {
	m := newTestModel(t)
	result, _ := m.Update(key("e"))
	updated := result.(Model)

	result, _ = updated.Update(key("n"))
	updated = result.(Model)
	if !updated.addingBucket {
		t.Fatal("[n] should start bucket entry")
	}

	updated.input.SetValue("15")
	result, _ = updated.Update(key("enter"))
	updated = result.(Model)

	if _, ok := updated.svc.Buckets()[15]; !ok {
		t.Error("a 15 min bucket should exist")
	}
	if len(updated.durations) != 6 {
		t.Errorf("durations = %v, want the new bucket included", updated.durations)
	}
}

func TestEdit_AddBucketRejectsGarbage(t *testing.T) {
	m := newTestModel(t)
	result, _ := m.Update(key("e"))
	updated := result.(Model)

	result, _ = updated.Update(key("n"))
	updated = result.(Model)
	updated.input.SetValue("soon")
	result, _ = updated.Update(key("enter"))
	updated = result.(Model)

	if updated.statusMsg == "" {
		t.Error("non-numeric bucket input should surface an error")
	}
	if len(updated.svc.Buckets()) != 5 {
		t.Error("rejected input must not create a bucket")
	}
}

func TestView_RendersEachScreen(t *testing.T) {
	m := newTestModel(t)

	if view := m.View(); !strings.Contains(view, "min") {
		t.Error("select view should list durations")
	}

	rm := resultModel(t)
	view := rm.View()
	if !strings.Contains(view, rm.pick.Activity) {
		t.Error("result view should show the picked activity")
	}
	if !strings.Contains(view, "05:00") {
		t.Error("result view should show the formatted countdown")
	}

	result, _ := m.Update(key("e"))
	em := result.(Model)
	if view := em.View(); !strings.Contains(view, "Edit activities") {
		t.Error("edit view should show its title")
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{300, "05:00"},
		{3599, "59:59"},
	}

	for _, tt := range tests {
		if got := formatSeconds(tt.seconds); got != tt.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
