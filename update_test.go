package main

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) model {
	t.Helper()
	config := defaultConfig()
	config.Confirmations = false
	m := initialModel(config)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(model)
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestTickAdvancesWhileRunning(t *testing.T) {
	m := testModel(t)
	if !m.running {
		t.Fatal("model not running at startup")
	}
	next, cmd := m.Update(tickMsg{tag: m.tickTag})
	m = next.(model)
	if cmd == nil {
		t.Error("tick did not schedule the next frame")
	}
	if m.chain.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1", m.chain.Ticks())
	}
}

func TestStopDropsPendingTick(t *testing.T) {
	m := testModel(t)
	tag := m.tickTag
	m = press(t, m, " ")
	if m.running {
		t.Fatal("space did not stop the animation")
	}
	next, cmd := m.Update(tickMsg{tag: tag})
	m = next.(model)
	if cmd != nil || m.chain.Ticks() != 0 {
		t.Errorf("tick after stop: cmd %v, ticks %d", cmd != nil, m.chain.Ticks())
	}
	m.stop()
	m.stop()
	if m.running {
		t.Error("stop is not idempotent")
	}
}

func TestStartIsIdempotent(t *testing.T) {
	m := testModel(t)
	m.stop()
	first := m.start()
	tag := m.tickTag
	second := m.start()
	if first == nil {
		t.Error("start from stopped returned no tick")
	}
	if second != nil || m.tickTag != tag {
		t.Error("second start scheduled another tick loop")
	}
	// a tick left over from before the restart is ignored
	next, cmd := m.Update(tickMsg{tag: tag - 1})
	if cmd != nil || next.(model).chain.Ticks() != 0 {
		t.Error("stale tick was processed")
	}
}

func TestSingleStepOnlyWhenStopped(t *testing.T) {
	m := testModel(t)
	m = press(t, m, ".")
	if m.chain.Ticks() != 0 {
		t.Errorf("step while running advanced to %d", m.chain.Ticks())
	}
	m = press(t, m, " ", ".", ".")
	if m.chain.Ticks() != 2 {
		t.Errorf("ticks = %d, want 2", m.chain.Ticks())
	}
}

func TestAppendAndRemove(t *testing.T) {
	m := testModel(t)
	n := m.chain.Len()
	m = press(t, m, "a")
	if m.chain.Len() != n+1 {
		t.Fatalf("len = %d after append, want %d", m.chain.Len(), n+1)
	}
	tail, _ := m.chain.Tail()
	if m.selected != tail {
		t.Errorf("new segment not selected")
	}
	m = press(t, m, "x")
	if m.chain.Len() != n {
		t.Fatalf("len = %d after remove, want %d", m.chain.Len(), n)
	}
	if _, ok := m.chain.Segment(m.selected); !ok {
		t.Error("selection points at a removed segment")
	}
}

func TestRemoveEverySegment(t *testing.T) {
	m := testModel(t)
	for m.chain.Len() > 0 {
		m = press(t, m, "x")
	}
	m = press(t, m, "x")
	if m.errorMessage == "" {
		t.Error("removing from an empty chain gave no message")
	}
	m = press(t, m, "a")
	if m.chain.Len() != 1 {
		t.Errorf("len = %d, want 1", m.chain.Len())
	}
}

func TestEditUndoRedo(t *testing.T) {
	m := testModel(t)
	before, _ := m.chain.Segment(m.selected)

	m = press(t, m, "+", "]")
	edited, _ := m.chain.Segment(m.selected)
	if edited.Length != before.Length+lengthStep {
		t.Errorf("length = %v, want %v", edited.Length, before.Length+lengthStep)
	}
	if math.Abs(edited.Angle-(before.Angle+angleStep*math.Pi/180)) > 1e-9 {
		t.Errorf("angle = %v", edited.Angle)
	}

	m = press(t, m, "u", "u")
	undone, _ := m.chain.Segment(m.selected)
	if undone.Length != before.Length || math.Abs(undone.Angle-before.Angle) > 1e-9 {
		t.Errorf("undo left length %v angle %v", undone.Length, undone.Angle)
	}

	m = press(t, m, "U")
	redone, _ := m.chain.Segment(m.selected)
	if redone.Length != edited.Length {
		t.Errorf("redo length = %v, want %v", redone.Length, edited.Length)
	}
}

func TestStructuralEditClearsHistory(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "+")
	if len(m.undoStack) != 1 {
		t.Fatalf("undo stack = %d, want 1", len(m.undoStack))
	}
	m = press(t, m, "a")
	if len(m.undoStack) != 0 || len(m.redoStack) != 0 {
		t.Error("append kept edit history")
	}
}

func TestTrailCapacityKeys(t *testing.T) {
	m := testModel(t)
	start := m.chain.MaxTrails()
	m = press(t, m, "t")
	if m.chain.MaxTrails() != start+trailStep {
		t.Errorf("capacity = %d, want %d", m.chain.MaxTrails(), start+trailStep)
	}
	m = press(t, m, "u")
	if m.chain.MaxTrails() != start {
		t.Errorf("undo capacity = %d, want %d", m.chain.MaxTrails(), start)
	}
	for i := 0; i < start/trailStep+3; i++ {
		m = press(t, m, "T")
	}
	if m.chain.MaxTrails() != 0 {
		t.Errorf("capacity = %d, want clamp to 0", m.chain.MaxTrails())
	}
}

func TestAngleInputInDegrees(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "A", "9", "0", "enter")
	s, _ := m.chain.Segment(m.selected)
	if math.Abs(s.Angle-math.Pi/2) > 1e-9 {
		t.Errorf("angle = %v, want pi/2", s.Angle)
	}

	m = press(t, m, "A", "n", "a", "n", "enter")
	if m.errorMessage == "" {
		t.Error("NaN angle accepted")
	}
	s, _ = m.chain.Segment(m.selected)
	if math.Abs(s.Angle-math.Pi/2) > 1e-9 {
		t.Errorf("angle changed to %v by rejected input", s.Angle)
	}
}

func TestColorInput(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "#", "00ff00", "enter")
	s, _ := m.chain.Segment(m.selected)
	if hexColor(s.LineColor) != "#00ff00" {
		t.Errorf("line color = %s", hexColor(s.LineColor))
	}
	m = press(t, m, "@", "zz", "enter")
	if m.errorMessage == "" {
		t.Error("bad color accepted")
	}
}

func TestSelectionCycles(t *testing.T) {
	m := testModel(t)
	ids := m.chain.IDs()
	m.selected = ids[len(ids)-1]
	m = press(t, m, "tab")
	if m.selected != ids[0] {
		t.Errorf("tab from tail selected %v, want head %v", m.selected, ids[0])
	}
	m.cycleSelection(-1)
	if m.selected != ids[len(ids)-1] {
		t.Errorf("reverse from head selected %v, want tail", m.selected)
	}
}

func TestTickScaleKeys(t *testing.T) {
	m := testModel(t)
	base := m.chain.TickScale()
	m = press(t, m, "m")
	if m.chain.TickScale() != base*2 {
		t.Errorf("tick scale = %v, want %v", m.chain.TickScale(), base*2)
	}
	m = press(t, m, "u")
	if m.chain.TickScale() != base {
		t.Errorf("undo tick scale = %v, want %v", m.chain.TickScale(), base)
	}
}

func TestParseSegmentParams(t *testing.T) {
	base := segmentParams{Length: 1, Velocity: 2}
	p, err := parseSegmentParams("length=30 speed=-1.5 angle=180 line=#ff0000", base)
	if err != nil {
		t.Fatal(err)
	}
	if p.Length != 30 || p.Velocity != -1.5 || math.Abs(p.Angle-math.Pi) > 1e-9 {
		t.Errorf("parsed %+v", p)
	}
	if hexColor(p.LineColor) != "#ff0000" {
		t.Errorf("line color = %s", hexColor(p.LineColor))
	}

	for _, bad := range []string{"", "length", "length=NaN", "speed=+Inf", "mass=3", "line=#12"} {
		if _, err := parseSegmentParams(bad, base); err == nil {
			t.Errorf("parseSegmentParams(%q) accepted", bad)
		}
	}
}

func TestSegmentParamsRoundTrip(t *testing.T) {
	m := testModel(t)
	s, _ := m.chain.Segment(m.selected)
	want := paramsOf(s)
	got, err := parseSegmentParams(want.String(), segmentParams{})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Angle-want.Angle) > 1e-9 || got.Length != want.Length || got.LineColor != want.LineColor {
		t.Errorf("round trip %+v -> %+v", want, got)
	}
}

func TestNoOpEditsKeepHistory(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "+", "u")
	if len(m.redoStack) != 1 {
		t.Fatalf("redo stack = %d, want 1", len(m.redoStack))
	}

	// zero angle, then reset again: the second r changes nothing
	m = press(t, m, "r")
	undo := len(m.undoStack)
	m = press(t, m, "r")
	if len(m.undoStack) != undo {
		t.Errorf("repeated reset recorded an action: %d -> %d", undo, len(m.undoStack))
	}

	if err := m.chain.SetLength(m.selected, 0); err != nil {
		t.Fatal(err)
	}
	undo = len(m.undoStack)
	m = press(t, m, "-")
	if len(m.undoStack) != undo {
		t.Error("shrinking a zero-length segment recorded an action")
	}
}

func TestNoOpTickScaleKeepsHistory(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "m", "u")
	if len(m.redoStack) != 1 {
		t.Fatalf("redo stack = %d, want 1", len(m.redoStack))
	}
	m.setTickScale(m.chain.TickScale())
	if len(m.undoStack) != 0 || len(m.redoStack) != 1 {
		t.Errorf("same tick scale touched history: undo %d redo %d", len(m.undoStack), len(m.redoStack))
	}
}
