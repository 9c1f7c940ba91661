package ui

import (
	"testing"

	"github.com/piwi3910/TipPlace/internal/model"
)

func configWithGap(gap float64) model.Config {
	cfg := model.DefaultConfig()
	cfg.Gap = gap
	return cfg
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	// Push initial state (before changing the gap)
	h.Push(MakeSnapshot(model.DefaultConfig(), nil, "initial"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	current := MakeSnapshot(configWithGap(20), nil, "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Config.Gap != model.DefaultGap {
		t.Errorf("expected gap %v after undo, got %v", model.DefaultGap, restored.Config.Gap)
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(configWithGap(8), nil, "gap 8"))
	h.Push(MakeSnapshot(configWithGap(12), nil, "gap 12"))
	current := MakeSnapshot(configWithGap(16), nil, "gap 16")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if restored.Config.Gap != 12 {
		t.Errorf("expected gap 12, got %v", restored.Config.Gap)
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if redone.Config.Gap != 16 {
		t.Errorf("expected gap 16 after redo, got %v", redone.Config.Gap)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(model.DefaultConfig(), nil, "defaults"))
	current := MakeSnapshot(configWithGap(20), nil, "gap 20")

	if _, ok := h.Undo(current); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(configWithGap(4), nil, "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(model.DefaultConfig(), nil, ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Undo(MakeSnapshot(model.DefaultConfig(), nil, "current")); ok {
		t.Error("undo on empty history should return false")
	}
}

func TestRedoEmpty(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Redo(MakeSnapshot(model.DefaultConfig(), nil, "current")); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(model.DefaultConfig(), nil, "a"))
	h.Push(MakeSnapshot(model.DefaultConfig(), nil, "b"))
	h.Undo(MakeSnapshot(model.DefaultConfig(), nil, "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.RecentReports = []string{"a.pdf"}
	scenarios := []model.Scenario{
		model.NewScenario("one", model.Size{Width: 800, Height: 600}, model.NewRect(10, 10, 20, 20), model.Size{Width: 50, Height: 20}),
	}
	snap := MakeSnapshot(cfg, scenarios, "test")

	cfg.RecentReports[0] = "changed.pdf"
	scenarios[0].Label = "Modified"

	if snap.Config.RecentReports[0] != "a.pdf" {
		t.Error("snapshot config should be independent of the original")
	}
	if snap.Scenarios[0].Label != "one" {
		t.Error("snapshot scenarios should be independent of the original")
	}
}

func TestCopyNilSlices(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.RecentReports = nil
	snap := MakeSnapshot(cfg, nil, "nil test")
	if snap.Scenarios != nil {
		t.Error("nil scenarios should stay nil")
	}
	if snap.Config.RecentReports != nil {
		t.Error("nil recent reports should stay nil")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(configWithGap(0), nil, "gap 0"))
	h.Push(MakeSnapshot(configWithGap(1), nil, "gap 1"))
	h.Push(MakeSnapshot(configWithGap(2), nil, "gap 2"))
	current := MakeSnapshot(configWithGap(3), nil, "gap 3")

	s := current
	for want := 2.0; want >= 0; want-- {
		var ok bool
		s, ok = h.Undo(s)
		if !ok || s.Config.Gap != want {
			t.Fatalf("undo: expected gap %v, got %v", want, s.Config.Gap)
		}
	}
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	for want := 1.0; want <= 3; want++ {
		var ok bool
		s, ok = h.Redo(s)
		if !ok || s.Config.Gap != want {
			t.Fatalf("redo: expected gap %v, got %v", want, s.Config.Gap)
		}
	}
	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
