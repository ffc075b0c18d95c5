package trellis

import (
	"testing"

	"github.com/phanxgames/trellis/glyph"
)

type recordedRect struct {
	pos   Point
	size  Size
	color Color
}

type recordRenderer struct {
	rects    []recordedRect
	sections []glyph.Section
}

func (r *recordRenderer) QueueRect(pos Point, size Size, color Color) {
	r.rects = append(r.rects, recordedRect{pos: pos, size: size, color: color})
}

func (r *recordRenderer) QueueText(section glyph.Section) {
	r.sections = append(r.sections, section)
}

func (r *recordRenderer) PtToPx(_ glyph.FontID, pt float32) float32 {
	return pt * 96 / 72
}

func testFrame() (*Frame, *recordRenderer, *Theme) {
	rec := &recordRenderer{}
	theme := DefaultTheme()
	return &Frame{r: rec, theme: &theme}, rec, &theme
}

// --- Frame primitives ---

func TestDrawRectAppliesTranslation(t *testing.T) {
	f, rec, theme := testFrame()
	f.Translate(100, 200)
	f.SetColor(ThemeBorder)
	f.DrawRect(Point{X: 5, Y: 6}, Size{W: 10, H: 20})

	if len(rec.rects) != 1 {
		t.Fatalf("got %d rects, want 1", len(rec.rects))
	}
	r := rec.rects[0]
	if r.pos != (Point{X: 105, Y: 206}) {
		t.Errorf("pos = %+v, want (105, 206)", r.pos)
	}
	if r.size != (Size{W: 10, H: 20}) {
		t.Errorf("size = %+v, want 10x20", r.size)
	}
	if r.color != theme.Border {
		t.Errorf("color = %+v, want border color %+v", r.color, theme.Border)
	}
}

func TestSaveRestore(t *testing.T) {
	f, rec, _ := testFrame()
	f.Translate(10, 10)
	f.Save()
	f.Translate(5, 5)
	f.DrawRect(Point{}, Size{W: 1, H: 1})
	f.Restore()
	f.DrawRect(Point{}, Size{W: 1, H: 1})

	if p := rec.rects[0].pos; p != (Point{X: 15, Y: 15}) {
		t.Errorf("nested pos = %+v, want (15, 15)", p)
	}
	if p := rec.rects[1].pos; p != (Point{X: 10, Y: 10}) {
		t.Errorf("restored pos = %+v, want (10, 10)", p)
	}
}

func TestRestoreWithoutSavePanics(t *testing.T) {
	f, _, _ := testFrame()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
	}()
	f.Restore()
}

// --- Borders ---

func TestDrawBorderUniform(t *testing.T) {
	f, rec, _ := testFrame()
	f.SetColor(ThemeBorder)
	f.DrawBorder(Size{W: 100, H: 50}, EdgesAll(1))

	want := []recordedRect{
		{pos: Point{X: 0, Y: 0}, size: Size{W: 100, H: 1}},   // top
		{pos: Point{X: 99, Y: 0}, size: Size{W: 1, H: 50}},   // right
		{pos: Point{X: 0, Y: 49}, size: Size{W: 100, H: 1}},  // bottom
		{pos: Point{X: 0, Y: 0}, size: Size{W: 1, H: 50}},    // left
	}
	if len(rec.rects) != len(want) {
		t.Fatalf("got %d rects, want %d", len(rec.rects), len(want))
	}
	for i, w := range want {
		if rec.rects[i].pos != w.pos || rec.rects[i].size != w.size {
			t.Errorf("edge %d = %+v %+v, want %+v %+v",
				i, rec.rects[i].pos, rec.rects[i].size, w.pos, w.size)
		}
	}
}

func TestDrawBorderSingleEdge(t *testing.T) {
	f, rec, _ := testFrame()
	f.DrawBorder(Size{W: 100, H: 50}, Edges{Top: 4})

	if len(rec.rects) != 1 {
		t.Fatalf("got %d rects, want 1", len(rec.rects))
	}
	r := rec.rects[0]
	// A 4px stroke centered on the half-pixel inset extends past both corners.
	if r.pos != (Point{X: -1.5, Y: -1.5}) || r.size != (Size{W: 103, H: 4}) {
		t.Errorf("rect = %+v %+v, want (-1.5, -1.5) 103x4", r.pos, r.size)
	}
}

func TestDrawBorderZeroWidthSkipsEverything(t *testing.T) {
	f, rec, _ := testFrame()
	f.DrawBorder(Size{W: 100, H: 50}, Edges{})
	if len(rec.rects) != 0 {
		t.Errorf("got %d rects, want 0", len(rec.rects))
	}
}

// --- Text ---

func TestDrawTextAnchors(t *testing.T) {
	f, rec, _ := testFrame()
	f.Translate(10, 20)
	box := Size{W: 100, H: 50}

	text := NewText("hi")
	text.VAlign = glyph.VAlignTop
	f.DrawText(Point{}, box, &text)

	text.HAlign = glyph.HAlignCenter
	text.VAlign = glyph.VAlignCenter
	f.DrawText(Point{}, box, &text)

	text.HAlign = glyph.HAlignRight
	text.VAlign = glyph.VAlignBottom
	f.DrawText(Point{}, box, &text)

	if len(rec.sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(rec.sections))
	}
	if s := rec.sections[0]; s.X != 10 || s.Y != 20 {
		t.Errorf("top-left anchor = (%v, %v), want (10, 20)", s.X, s.Y)
	}
	if s := rec.sections[1]; s.X != 60 || s.Y != 45 {
		t.Errorf("center anchor = (%v, %v), want (60, 45)", s.X, s.Y)
	}
	if s := rec.sections[2]; s.X != 110 || s.Y != 70 {
		t.Errorf("bottom-right anchor = (%v, %v), want (110, 70)", s.X, s.Y)
	}
}

func TestDrawTextRun(t *testing.T) {
	f, rec, theme := testFrame()
	f.SetColor(ThemeForeground)
	text := NewText("hi")
	text.PtSize = 12
	f.DrawText(Point{}, Size{W: 100, H: 50}, &text)

	s := rec.sections[0]
	if len(s.Runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(s.Runs))
	}
	run := s.Runs[0]
	if run.Content != "hi" {
		t.Errorf("content = %q, want %q", run.Content, "hi")
	}
	if run.Scale != 16 {
		t.Errorf("scale = %v, want 16 for 12pt at 96dpi", run.Scale)
	}
	want := [4]float32{theme.Foreground.R, theme.Foreground.G, theme.Foreground.B, theme.Foreground.A}
	if run.Color != want {
		t.Errorf("color = %v, want %v", run.Color, want)
	}
	if s.W != 100 || s.H != 50 {
		t.Errorf("section bounds = %vx%v, want 100x50", s.W, s.H)
	}
}

func TestDrawTextResolvesKey(t *testing.T) {
	rec := &recordRenderer{}
	theme := DefaultTheme()
	f := &Frame{r: rec, theme: &theme, strings: Strings{"greet": "Hello"}}

	text := NewTextKey("greet")
	f.DrawText(Point{}, Size{W: 100, H: 50}, &text)
	missing := NewTextKey("absent")
	f.DrawText(Point{}, Size{W: 100, H: 50}, &missing)

	if got := rec.sections[0].Runs[0].Content; got != "Hello" {
		t.Errorf("resolved content = %q, want %q", got, "Hello")
	}
	if got := rec.sections[1].Runs[0].Content; got != "absent" {
		t.Errorf("missing key content = %q, want the key itself", got)
	}
}

func TestDrawTextNilStringsFallsBackToKey(t *testing.T) {
	f, rec, _ := testFrame()
	text := NewTextKey("greet")
	f.DrawText(Point{}, Size{W: 100, H: 50}, &text)

	if got := rec.sections[0].Runs[0].Content; got != "greet" {
		t.Errorf("content = %q, want %q", got, "greet")
	}
}

// --- Tree walking ---

type paintView struct {
	sizes []Size
}

func (v *paintView) Render(f *Frame, size Size) {
	v.sizes = append(v.sizes, size)
	f.DrawRect(Point{}, Size{W: 1, H: 1})
}

func TestRenderPaintsParentBeforeChild(t *testing.T) {
	g := NewGui()
	v := ButtonVisual()
	parent := g.CreateNode(absStyle(10, 20, 100, 50), &v)
	child := g.CreateNode(absStyle(5, 5, 10, 10), &v)
	g.AddChild(g.Root(), parent)
	g.AddChild(parent, child)
	g.SetScreenSize(800, 600)

	rec := &recordRenderer{}
	g.Render(rec)

	if len(rec.rects) != 2 {
		t.Fatalf("got %d rects, want 2", len(rec.rects))
	}
	if r := rec.rects[0]; r.pos != (Point{X: 10, Y: 20}) || r.size != (Size{W: 100, H: 50}) {
		t.Errorf("parent rect = %+v %+v", r.pos, r.size)
	}
	if r := rec.rects[1]; r.pos != (Point{X: 15, Y: 25}) || r.size != (Size{W: 10, H: 10}) {
		t.Errorf("child rect = %+v %+v, want translated to (15, 25)", r.pos, r.size)
	}
}

func TestRenderLayerOrderWithinNode(t *testing.T) {
	g := NewGui()
	v := Visual{
		Background:  ThemeButtonNormal,
		Border:      ThemeBorder,
		BorderWidth: EdgesAll(1),
	}
	n := g.CreateNode(absStyle(0, 0, 100, 50), &v)
	g.AddChild(g.Root(), n)
	g.SetScreenSize(800, 600)

	rec := &recordRenderer{}
	g.Render(rec)

	if len(rec.rects) != 5 {
		t.Fatalf("got %d rects, want background + 4 border edges", len(rec.rects))
	}
	theme := g.Theme()
	if rec.rects[0].color != theme.ButtonNormal {
		t.Errorf("first rect color = %+v, want background", rec.rects[0].color)
	}
	for i := 1; i < 5; i++ {
		if rec.rects[i].color != theme.Border {
			t.Errorf("rect %d color = %+v, want border", i, rec.rects[i].color)
		}
	}
}

func TestRenderSkipsNodeWithoutVisual(t *testing.T) {
	g := NewGui()
	n := g.CreateNode(absStyle(0, 0, 100, 50), nil)
	g.AddChild(g.Root(), n)
	g.SetScreenSize(800, 600)

	rec := &recordRenderer{}
	g.Render(rec)

	if len(rec.rects) != 0 || len(rec.sections) != 0 {
		t.Errorf("got %d rects and %d sections, want none", len(rec.rects), len(rec.sections))
	}
}

func TestRenderForegroundRunsView(t *testing.T) {
	g := NewGui()
	v := DefaultVisual()
	n := g.CreateNode(absStyle(30, 40, 100, 50), &v)
	g.AddChild(g.Root(), n)
	g.SetScreenSize(800, 600)

	pv := &paintView{}
	g.SetView(n, pv)

	rec := &recordRenderer{}
	g.Render(rec)

	if len(pv.sizes) != 1 || pv.sizes[0] != (Size{W: 100, H: 50}) {
		t.Fatalf("view sizes = %v, want one 100x50 call", pv.sizes)
	}
	// The frame is pre-translated to the node's corner.
	if r := rec.rects[0]; r.pos != (Point{X: 30, Y: 40}) {
		t.Errorf("view rect at %+v, want (30, 40)", r.pos)
	}
}

func TestRenderSkipsViewWithoutForeground(t *testing.T) {
	g := NewGui()
	n := g.CreateNode(absStyle(0, 0, 100, 50), &Visual{Background: ThemeButtonNormal})
	g.AddChild(g.Root(), n)
	g.SetScreenSize(800, 600)

	pv := &paintView{}
	g.SetView(n, pv)

	rec := &recordRenderer{}
	g.Render(rec)

	if len(pv.sizes) != 0 {
		t.Errorf("view ran %d times, want 0 with Foreground unset", len(pv.sizes))
	}
}
