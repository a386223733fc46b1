package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/garden/internal/daily"
	"github.com/sadopc/garden/internal/store"
)

func newTestDaily(t *testing.T) *daily.Store {
	t.Helper()
	db, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := daily.New(db, nil)
	if err := s.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and returns its message, or nil.
func drain(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ============================================================
// Helpers
// ============================================================

func TestScoreBar(t *testing.T) {
	tests := []struct {
		v    int
		full int
	}{
		{-3, 0},
		{0, 0},
		{5, 5},
		{10, 10},
		{14, 10},
	}
	for _, tt := range tests {
		bar := scoreBar(tt.v)
		if got := strings.Count(bar, "█"); got != tt.full {
			t.Errorf("scoreBar(%d) full = %d, want %d", tt.v, got, tt.full)
		}
		if got := len([]rune(bar)); got != 10 {
			t.Errorf("scoreBar(%d) width = %d, want 10", tt.v, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if clamp(0, 1, 10) != 1 || clamp(11, 1, 10) != 10 || clamp(4, 1, 10) != 4 {
		t.Fatal("clamp out of range")
	}
}

func TestShortDate(t *testing.T) {
	if got := shortDate("Fri Oct 16 2026"); got != "Fri 16" {
		t.Fatalf("got %q", got)
	}
	if got := shortDate("garbage"); got != "garbage" {
		t.Fatalf("got %q", got)
	}
}

func TestRefreshCmd(t *testing.T) {
	s := newTestDaily(t)
	msg, ok := drain(refreshCmd(s)).(snapshotMsg)
	if !ok {
		t.Fatal("refreshCmd should produce a snapshotMsg")
	}
	if len(msg.snap.Board.All()) != 9 {
		t.Fatalf("expected default board, got %d tasks", len(msg.snap.Board.All()))
	}
}

func TestErrorCmd(t *testing.T) {
	msg := drain(errorCmd(daily.ErrUnknownTask)).(statusMsg)
	if !msg.isError || !strings.Contains(msg.text, "unknown task") {
		t.Fatalf("unexpected status %+v", msg)
	}
}

// ============================================================
// Tasks view
// ============================================================

func TestTasksToggle(t *testing.T) {
	s := newTestDaily(t)
	m := newTasksModel(s)
	m.setSnapshot(s.Snapshot())

	// Second task in display order is morning/m2.
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatal("toggle should refresh")
	}
	m.setSnapshot(drain(cmd).(snapshotMsg).snap)

	if !m.board.Morning[1].Completed {
		t.Fatal("m2 should be completed")
	}
	if m.board.Morning[0].Completed {
		t.Fatal("m1 should be untouched")
	}
	if s.Completion() != 11 {
		t.Fatalf("expected 11%%, got %d", s.Completion())
	}
}

func TestTasksCursorBounds(t *testing.T) {
	s := newTestDaily(t)
	m := newTasksModel(s)
	m.setSnapshot(s.Snapshot())

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatal("cursor should not go above the first task")
	}
	for i := 0; i < 20; i++ {
		m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.refs())-1 {
		t.Fatalf("cursor should stop at last task, got %d", m.cursor)
	}
	if ref := m.refs()[m.cursor]; ref.section != daily.Evening || ref.id != "e2" {
		t.Fatalf("last ref should be evening/e2, got %+v", ref)
	}
}

// ============================================================
// Dump view
// ============================================================

func TestDumpAddAndDelete(t *testing.T) {
	s := newTestDaily(t)
	m := newDumpModel(s)
	m.setSize(80, 30)
	m.setSnapshot(s.Snapshot())

	m, _ = m.update(runes("n"))
	if !m.typing {
		t.Fatal("n should open the input")
	}

	m.input.SetValue("  call the dentist  ")
	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	m.setSnapshot(drain(cmd).(snapshotMsg).snap)

	if !m.typing {
		t.Fatal("input should stay open after adding")
	}
	if len(m.items) != 1 || m.items[0].Text != "call the dentist" {
		t.Fatalf("unexpected items %+v", m.items)
	}

	// Blank input adds nothing.
	m.input.SetValue("   ")
	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	m.setSnapshot(drain(cmd).(snapshotMsg).snap)
	if len(m.items) != 1 {
		t.Fatalf("blank input should be ignored, got %d items", len(m.items))
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.typing {
		t.Fatal("esc should close the input")
	}

	m, cmd = m.update(runes("d"))
	m.setSnapshot(drain(cmd).(snapshotMsg).snap)
	if len(m.items) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(m.items))
	}
	if len(s.Snapshot().Scratch) != 0 {
		t.Fatal("delete should reach the store")
	}
}

func TestDumpDeleteOnEmptyList(t *testing.T) {
	s := newTestDaily(t)
	m := newDumpModel(s)
	m.setSnapshot(s.Snapshot())

	_, cmd := m.update(runes("d"))
	if cmd != nil {
		t.Fatal("delete on empty list should do nothing")
	}
}

func TestDumpEmptyState(t *testing.T) {
	s := newTestDaily(t)
	m := newDumpModel(s)
	m.setSize(80, 30)
	m.setSnapshot(s.Snapshot())

	if !strings.Contains(m.view(), "Empty head, happy life?") {
		t.Fatal("empty dump should show the placeholder text")
	}
}

// ============================================================
// Reflect view
// ============================================================

func TestReflectAdjust(t *testing.T) {
	s := newTestDaily(t)
	m := newReflectModel(s)
	m.setSnapshot(s.Snapshot())

	// Mood 5 -> 6
	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyRight})
	m.setSnapshot(drain(cmd).(snapshotMsg).snap)
	if m.draft.Mood != 6 {
		t.Fatalf("expected mood 6, got %d", m.draft.Mood)
	}

	// Energy 5 -> 4
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = m.update(tea.KeyMsg{Type: tea.KeyLeft})
	m.setSnapshot(drain(cmd).(snapshotMsg).snap)
	if m.draft.Energy != 4 {
		t.Fatalf("expected energy 4, got %d", m.draft.Energy)
	}
}

func TestReflectAdjustClamps(t *testing.T) {
	s := newTestDaily(t)
	if err := s.UpdateReflectionField(daily.FieldFocus, "10"); err != nil {
		t.Fatal(err)
	}
	m := newReflectModel(s)
	m.setSnapshot(s.Snapshot())
	m.cursor = 2

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyRight})
	m.setSnapshot(drain(cmd).(snapshotMsg).snap)
	if m.draft.Focus != 10 {
		t.Fatalf("focus should stay at 10, got %d", m.draft.Focus)
	}
}

func TestReflectSave(t *testing.T) {
	s := newTestDaily(t)
	m := newReflectModel(s)
	m.setSnapshot(s.Snapshot())

	_, cmd := m.update(runes("s"))
	saved, ok := drain(cmd).(savedMsg)
	if !ok {
		t.Fatal("save should produce a savedMsg")
	}
	if saved.entry.Mood != 5 || saved.entry.CompletionPercentage != 0 {
		t.Fatalf("unexpected entry %+v", saved.entry)
	}
	if len(s.Snapshot().History) != 1 {
		t.Fatal("history should have one entry")
	}
}

func TestReflectNotesForm(t *testing.T) {
	s := newTestDaily(t)
	m := newReflectModel(s)
	m.setSize(80, 30)
	m.setSnapshot(s.Snapshot())

	m, _ = m.update(runes("e"))
	if !m.formActive || m.form == nil {
		t.Fatal("e should open the notes form")
	}
	if m.view() == "" {
		t.Fatal("form view should render")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.formActive {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Stats view
// ============================================================

func TestStatsMetricCycle(t *testing.T) {
	m := newStatsModel(7)
	m.setSize(100, 30)

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.metric != metricCompletion {
		t.Fatalf("left from mood should wrap to growth, got %d", m.metric)
	}
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRight})
	if m.metric != metricMood {
		t.Fatalf("right should wrap back to mood, got %d", m.metric)
	}
}

func TestStatsDefaultDays(t *testing.T) {
	if newStatsModel(0).days != 7 {
		t.Fatal("non-positive days should fall back to 7")
	}
}

func TestStatsTrend(t *testing.T) {
	m := newStatsModel(2)
	m.setSize(100, 30)
	if !strings.Contains(m.view(), "No reflections saved yet") {
		t.Fatal("empty history should show a hint")
	}

	snap := daily.Snapshot{History: []daily.HistoryEntry{
		{Date: "Wed Oct 14 2026", Mood: 3},
		{Date: "Thu Oct 15 2026", Mood: 6},
		{Date: "Fri Oct 16 2026", Mood: 8},
	}}
	m.setSnapshot(snap)
	if len(m.trend) != 2 || m.trend[0].Mood != 6 {
		t.Fatalf("trend should keep the last 2 days, got %+v", m.trend)
	}
	if m.view() == "" {
		t.Fatal("stats view should render")
	}
}

func TestMetricValue(t *testing.T) {
	e := daily.HistoryEntry{Mood: 1, Energy: 2, Focus: 3, CompletionPercentage: 44}
	want := []float64{1, 2, 3, 44}
	for i, w := range want {
		if got := statsMetric(i).value(e); got != w {
			t.Errorf("metric %s = %v, want %v", metricNames[i], got, w)
		}
	}
}

// ============================================================
// App model
// ============================================================

func newTestApp(t *testing.T) (App, *daily.Store) {
	t.Helper()
	s := newTestDaily(t)
	app := NewApp(s, nil, 7)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(App), s
}

func TestNewApp(t *testing.T) {
	s := newTestDaily(t)
	app := NewApp(s, nil, 7)

	if app.activeView != viewGarden {
		t.Fatal("default view should be garden")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestDaily(t)
	app := NewApp(s, nil, 7)
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppTabSwitching(t *testing.T) {
	app, _ := newTestApp(t)

	keysToViews := []struct {
		key  string
		view viewState
	}{
		{"2", viewTasks},
		{"3", viewDump},
		{"4", viewReflect},
		{"5", viewStats},
		{"1", viewGarden},
	}
	for _, kv := range keysToViews {
		model, cmd := app.Update(runes(kv.key))
		app = model.(App)
		if app.activeView != kv.view {
			t.Fatalf("key %s: expected view %d, got %d", kv.key, kv.view, app.activeView)
		}
		if _, ok := drain(cmd).(snapshotMsg); !ok {
			t.Fatalf("key %s: switching views should refresh", kv.key)
		}
	}

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(App).activeView != viewTasks {
		t.Fatal("tab should move to the next view")
	}

	app.activeView = viewStats
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(App).activeView != viewGarden {
		t.Fatal("tab should wrap around")
	}
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := app.Update(runes("q"))
	if _, ok := drain(cmd).(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestAppTypingCapturesKeys(t *testing.T) {
	app, _ := newTestApp(t)
	app.activeView = viewDump

	model, _ := app.Update(runes("n"))
	app = model.(App)
	if !app.isFormActive() {
		t.Fatal("dump input should capture keys")
	}

	// Digits and q go to the input instead of switching or quitting.
	model, _ = app.Update(runes("q"))
	app = model.(App)
	model, _ = app.Update(runes("2"))
	app = model.(App)
	if app.activeView != viewDump {
		t.Fatal("tab keys should not switch views while typing")
	}
	if app.dump.input.Value() != "q2" {
		t.Fatalf("expected typed text, got %q", app.dump.input.Value())
	}
}

func TestAppSnapshotDistribution(t *testing.T) {
	app, s := newTestApp(t)
	if err := s.ToggleTask(daily.Day, "d1"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.AddScratchItem("water plants"); err != nil {
		t.Fatal(err)
	}

	model, _ := app.Update(snapshotMsg{snap: s.Snapshot()})
	app = model.(App)

	if app.garden.snap.Completion != 11 {
		t.Fatalf("garden completion = %d", app.garden.snap.Completion)
	}
	if !app.tasks.board.Day[0].Completed {
		t.Fatal("tasks view should see the toggle")
	}
	if len(app.dump.items) != 1 {
		t.Fatal("dump view should see the item")
	}
	if app.reflect.draft.Mood != 5 {
		t.Fatal("reflect view should see the draft")
	}
}

func TestAppSavedMessage(t *testing.T) {
	app, _ := newTestApp(t)
	entry := daily.HistoryEntry{Date: "Fri Oct 16 2026", CompletionPercentage: 56}
	model, cmd := app.Update(savedMsg{entry: entry})
	app = model.(App)
	if app.status != "Reflection saved for Fri Oct 16 2026 (growth 56%) 🌱" || app.isErr {
		t.Fatalf("unexpected status %q", app.status)
	}
	if !strings.Contains(app.renderFooter(), "growth 56%") {
		t.Fatal("footer should show the saved growth")
	}
	if _, ok := drain(cmd).(snapshotMsg); !ok {
		t.Fatal("save should trigger a refresh")
	}
}

func TestAppSaveFlow(t *testing.T) {
	app, s := newTestApp(t)
	if err := s.ToggleTask(daily.Morning, "m1"); err != nil {
		t.Fatal(err)
	}
	model, _ := app.Update(runes("4"))
	app = model.(App)
	model, _ = app.Update(snapshotMsg{snap: s.Snapshot()})
	app = model.(App)

	_, cmd := app.Update(runes("s"))
	msg := drain(cmd)
	model, _ = app.Update(msg)
	app = model.(App)
	if !strings.Contains(app.status, "(growth 11%)") {
		t.Fatalf("status should carry the saved entry, got %q", app.status)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t)
	model, _ := app.Update(statusMsg{text: "disk full", isError: true})
	app = model.(App)
	if !strings.Contains(app.renderFooter(), "disk full") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppTickSameDay(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := app.Update(tickMsg{})
	if cmd == nil {
		t.Fatal("tick should reschedule itself")
	}
}

func TestAppViewStates(t *testing.T) {
	app, s := newTestApp(t)
	if _, err := s.CommitReflection(); err != nil {
		t.Fatal(err)
	}
	model, _ := app.Update(snapshotMsg{snap: s.Snapshot()})
	app = model.(App)

	for _, v := range []viewState{viewGarden, viewTasks, viewDump, viewReflect, viewStats} {
		app.activeView = v
		if output := app.View(); output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)
	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
