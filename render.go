package trellis

import "github.com/phanxgames/trellis/glyph"

// Renderer is the draw sink the render walker paints into. QuadRenderer
// implements it on ebiten; tests substitute a recorder.
type Renderer interface {
	// QueueRect queues a solid rectangle in screen coordinates.
	QueueRect(pos Point, size Size, color Color)
	// QueueText queues a laid-out text section.
	QueueText(section glyph.Section)
	// PtToPx converts a point size to the pixel scale used by text runs.
	// Panics on an unknown font.
	PtToPx(font glyph.FontID, pt float32) float32
}

// View paints a node's foreground. The frame is already translated to the
// node's top-left corner and its color is set to the visual's foreground,
// so a minimal View just draws at the origin within size.
type View interface {
	Render(f *Frame, size Size)
}

// Frame is the painting context handed to Views: a translation stack over
// a Renderer plus the active theme and localization table. All draw
// methods take coordinates local to the current translation.
type Frame struct {
	r       Renderer
	theme   *Theme
	strings Strings

	trans Point
	stack []Point
	color Color
}

// Save pushes the current translation.
func (f *Frame) Save() {
	f.stack = append(f.stack, f.trans)
}

// Restore pops the translation pushed by the matching Save.
func (f *Frame) Restore() {
	n := len(f.stack)
	if n == 0 {
		panic("trellis: Frame.Restore without matching Save")
	}
	f.trans = f.stack[n-1]
	f.stack = f.stack[:n-1]
}

// Translate offsets the current translation.
func (f *Frame) Translate(tx, ty float32) {
	f.trans.X += tx
	f.trans.Y += ty
}

// SetColor resolves a theme slot into the current draw color.
func (f *Frame) SetColor(tc ThemeColor) {
	f.color = f.theme.Color(tc)
}

// DrawRect fills a rectangle with the current color.
func (f *Frame) DrawRect(pos Point, size Size) {
	f.r.QueueRect(Point{X: f.trans.X + pos.X, Y: f.trans.Y + pos.Y}, size, f.color)
}

// DrawBorder strokes the edges of a box of the given size at the origin,
// one stroke per edge with its own width. Strokes run along a half-pixel
// inset so a 1px border lands on pixel centers; zero-width edges are
// skipped.
func (f *Frame) DrawBorder(size Size, border Edges) {
	pb := pathBuilder{r: f.r, trans: f.trans, color: f.color}
	pb.moveTo(0.5, 0.5)
	if border.Top > 0 {
		pb.setLineWidth(border.Top)
		pb.lineTo(size.W-0.5, 0.5)
	} else {
		pb.moveTo(size.W-0.5, 0.5)
	}
	if border.Right > 0 {
		pb.setLineWidth(border.Right)
		pb.lineTo(size.W-0.5, size.H-0.5)
	} else {
		pb.moveTo(size.W-0.5, size.H-0.5)
	}
	if border.Bottom > 0 {
		pb.setLineWidth(border.Bottom)
		pb.lineTo(0.5, size.H-0.5)
	} else {
		pb.moveTo(0.5, size.H-0.5)
	}
	if border.Left > 0 {
		pb.setLineWidth(border.Left)
		pb.lineTo(0.5, 0.5)
	}
}

// DrawText queues a text block anchored inside the box (pos, size). The
// anchor point follows the text's alignment: centered text anchors on the
// box center, right-aligned text on the right edge, and so on. Keyed text
// is resolved through the localization table at draw time.
func (f *Frame) DrawText(pos Point, size Size, t *Text) {
	value := t.Value
	if t.Key != "" {
		value = f.strings.Lookup(t.Key)
	}
	x := f.trans.X + pos.X
	switch t.HAlign {
	case glyph.HAlignCenter:
		x += size.W / 2
	case glyph.HAlignRight:
		x += size.W
	}
	y := f.trans.Y + pos.Y
	switch t.VAlign {
	case glyph.VAlignCenter:
		y += size.H / 2
	case glyph.VAlignBottom:
		y += size.H
	}
	f.r.QueueText(glyph.Section{
		X: x, Y: y,
		W: size.W, H: size.H,
		HAlign: t.HAlign,
		VAlign: t.VAlign,
		Runs: []glyph.Run{{
			Content: value,
			Font:    t.Font,
			Scale:   f.r.PtToPx(t.Font, t.PtSize),
			Color:   [4]float32{f.color.R, f.color.G, f.color.B, f.color.A},
		}},
	})
}

// Render walks the tree in paint order, feeding r. For each node: background
// fill, border strokes, foreground View, then the children front to back.
// Hit-testing walks the same order in reverse, so the node drawn on top is
// the node hit first.
func (g *Gui) Render(r Renderer) {
	f := &Frame{r: r, theme: &g.theme, strings: g.strings}
	g.renderNode(f, g.root)
}

func (g *Gui) renderNode(f *Frame, id NodeId) {
	s := &g.slots[id.index]
	box := boxOf(s.flex)
	f.Save()
	f.Translate(box.X, box.Y)

	if v := s.visual; v != nil {
		size := Size{W: box.W, H: box.H}
		if v.Background != ThemeNone {
			f.SetColor(v.Background)
			f.DrawRect(Point{}, size)
		}
		if v.Border != ThemeNone {
			f.SetColor(v.Border)
			f.DrawBorder(size, v.BorderWidth)
		}
		if v.Foreground != ThemeNone && s.view != nil {
			f.SetColor(v.Foreground)
			s.view.Render(f, size)
		}
	}

	for _, child := range s.children {
		g.renderNode(f, child)
	}

	f.Restore()
}

// pathBuilder turns axis-aligned path segments into filled rectangles. A
// segment covers the line_width band centered on it and extends half the
// width past each endpoint, so perpendicular strokes meeting at a corner
// tile it without a gap.
type pathBuilder struct {
	r         Renderer
	trans     Point
	start     Point
	lineWidth float32
	color     Color
}

func (pb *pathBuilder) setLineWidth(w float32) {
	pb.lineWidth = w
}

func (pb *pathBuilder) moveTo(x, y float32) {
	pb.start = Point{X: x, Y: y}
}

func (pb *pathBuilder) lineTo(x, y float32) {
	ext := pb.lineWidth / 2
	if abs32(x-pb.start.X) > abs32(y-pb.start.Y) {
		// Horizontal
		rx := min(x, pb.start.X) - ext
		ry := pb.start.Y - ext
		rw := (max(x, pb.start.X) + ext) - rx
		pb.r.QueueRect(
			Point{X: pb.trans.X + rx, Y: pb.trans.Y + ry},
			Size{W: rw, H: pb.lineWidth},
			pb.color,
		)
	} else {
		// Vertical
		rx := pb.start.X - ext
		ry := min(y, pb.start.Y) - ext
		rh := (max(y, pb.start.Y) + ext) - ry
		pb.r.QueueRect(
			Point{X: pb.trans.X + rx, Y: pb.trans.Y + ry},
			Size{W: pb.lineWidth, H: rh},
			pb.color,
		)
	}
	pb.moveTo(x, y)
}
