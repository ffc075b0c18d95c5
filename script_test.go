package trellis

import (
	"strings"
	"testing"
)

// --- Parsing ---

func TestLoadPointerScript(t *testing.T) {
	src := `{"steps": [
		{"action": "move", "x": 10, "y": 20},
		{"action": "click", "x": 10, "y": 20},
		{"action": "wait", "frames": 5}
	]}`
	s, err := LoadPointerScript([]byte(src))
	if err != nil {
		t.Fatalf("LoadPointerScript: %v", err)
	}
	if s.Done() {
		t.Error("Done() = true before the first step")
	}
}

func TestLoadPointerScriptRejectsBadJSON(t *testing.T) {
	_, err := LoadPointerScript([]byte("{"))
	if err == nil || !strings.Contains(err.Error(), "parse pointer script") {
		t.Errorf("err = %v, want a parse error", err)
	}
}

func TestLoadPointerScriptRejectsEmpty(t *testing.T) {
	_, err := LoadPointerScript([]byte(`{"steps": []}`))
	if err == nil || !strings.Contains(err.Error(), "no steps") {
		t.Errorf("err = %v, want no steps", err)
	}
}

func TestLoadPointerScriptRejectsUnknownAction(t *testing.T) {
	_, err := LoadPointerScript([]byte(`{"steps": [{"action": "hover"}]}`))
	if err == nil || !strings.Contains(err.Error(), `unknown action "hover"`) {
		t.Errorf("err = %v, want unknown action", err)
	}
}

// --- Stepping ---

func TestScriptMoveStep(t *testing.T) {
	g := NewGui()
	g.SetScreenSize(800, 600)
	s, err := LoadPointerScript([]byte(`{"steps": [{"action": "move", "x": 10, "y": 20}]}`))
	if err != nil {
		t.Fatal(err)
	}

	s.Step(g)
	if g.state.pointerX != 10 || g.state.pointerY != 20 {
		t.Errorf("pointer = (%v, %v), want (10, 20)", g.state.pointerX, g.state.pointerY)
	}
	if !s.Done() {
		t.Error("Done() = false after the last step")
	}
}

func TestScriptClickSpansTwoFrames(t *testing.T) {
	g := NewGui()
	g.SetScreenSize(800, 600)
	s, err := LoadPointerScript([]byte(`{"steps": [{"action": "click", "x": 10, "y": 10}]}`))
	if err != nil {
		t.Fatal(err)
	}

	s.Step(g)
	if !g.state.pointerDown {
		t.Error("button up after the click frame, want held")
	}
	if s.Done() {
		t.Error("Done() = true with the release still pending")
	}

	s.Step(g)
	if g.state.pointerDown {
		t.Error("button still down after the release frame")
	}
	if !s.Done() {
		t.Error("Done() = false after the release frame")
	}
}

func TestScriptWaitCountsTheWaitFrame(t *testing.T) {
	g := NewGui()
	g.SetScreenSize(800, 600)
	src := `{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "move", "x": 5, "y": 5}
	]}`
	s, err := LoadPointerScript([]byte(src))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		s.Step(g)
		if g.state.pointerX != 0 {
			t.Fatalf("pointer moved during wait frame %d", i+1)
		}
	}
	s.Step(g)
	if g.state.pointerX != 5 {
		t.Errorf("pointerX = %v, want 5 after the wait", g.state.pointerX)
	}
	if !s.Done() {
		t.Error("Done() = false at the end")
	}
}

func TestScriptStepAfterDoneIsNoOp(t *testing.T) {
	g := NewGui()
	s, err := LoadPointerScript([]byte(`{"steps": [{"action": "press"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.Step(g)
	if !s.Done() {
		t.Fatal("Done() = false after the only step")
	}
	s.Step(g)
	s.Step(g)
}

// --- Replay against widgets ---

func TestScriptClickActivatesButton(t *testing.T) {
	g := NewGui()
	g.SetStyle(g.Root(), Style{AlignItems: AlignStart})
	h := NewButton(g, "Click")
	g.AddChild(g.Root(), WidgetNode(g, h))
	g.SetScreenSize(800, 600)

	count := 0
	WithWidget(g, h, func(b *Button) {
		b.OnPress(func(*Gui) { count++ })
	})

	s, err := LoadPointerScript([]byte(`{"steps": [{"action": "click", "x": 64, "y": 16}]}`))
	if err != nil {
		t.Fatal(err)
	}
	for !s.Done() {
		s.Step(g)
		g.Update()
	}

	if count != 1 {
		t.Errorf("count = %d, want 1 after the scripted click", count)
	}
}
