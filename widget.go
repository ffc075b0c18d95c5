package trellis

import (
	"github.com/phanxgames/trellis/cell"
	"github.com/phanxgames/trellis/glyph"
)

// Widget is a node-bound behavior: it paints the node's foreground and
// receives its pointer transitions. Widgets live in the Gui's shared
// arena, so every render and dispatch borrows them through the fail-fast
// cell wrapper.
type Widget interface {
	Node() NodeId
	View
	Control
}

// CreateWidget allocates a node with the given style and visual, builds a
// widget bound to it, and registers the widget as the node's paint and
// pointer capability. The returned handle addresses the widget in the
// Gui's arena; the node is detached until added to a parent.
func CreateWidget[W Widget](g *Gui, style Style, visual *Visual, build func(NodeId) W) cell.Handle[Widget] {
	node := g.CreateNode(style, visual)
	h := g.widgets.Insert(build(node))
	s := g.slot(node, "CreateWidget")
	s.widget = h
	s.view = widgetView{g: g, h: h}
	s.control = widgetControl{g: g, h: h}
	return h
}

// WithWidget borrows the widget behind h as its concrete type W for the
// duration of fn. It panics if the widget is gone, if it is already
// borrowed, or if it is not a W.
func WithWidget[W Widget](g *Gui, h cell.Handle[Widget], fn func(W)) {
	g.widgets.With(h, func(w *Widget) {
		fn((*w).(W))
	})
}

// WidgetNode returns the node the widget behind h is bound to.
func WidgetNode(g *Gui, h cell.Handle[Widget]) NodeId {
	var node NodeId
	g.widgets.With(h, func(w *Widget) {
		node = (*w).Node()
	})
	return node
}

// widgetView and widgetControl adapt an arena handle into the node
// capability slots. Each paint or dispatch borrows the widget for the
// duration of the call, so reentrant access panics at the point of misuse
// instead of corrupting the widget.
type widgetView struct {
	g *Gui
	h cell.Handle[Widget]
}

func (v widgetView) Render(f *Frame, size Size) {
	v.g.widgets.With(v.h, func(w *Widget) {
		(*w).Render(f, size)
	})
}

type widgetControl struct {
	g *Gui
	h cell.Handle[Widget]
}

func (c widgetControl) HandlePointer(g *Gui, state PointerState) {
	c.g.widgets.With(c.h, func(w *Widget) {
		(*w).HandlePointer(g, state)
	})
}

// baseButton is the activation latch shared by button-like widgets. A
// widget activates when its state returns to Over while the latch is set:
// press then release over the widget. Releasing elsewhere clears the latch
// without activating, and dragging back in while still held re-arms it.
type baseButton struct {
	wasPressed bool
}

// setPointerState runs the latch, invoking onActivate on a release-over,
// and returns the visual matching the new state.
func (b *baseButton) setPointerState(state PointerState, onActivate func()) Visual {
	if state == PointerOver && b.wasPressed {
		onActivate()
	}
	b.wasPressed = state == PointerPress

	v := ButtonVisual()
	switch state {
	case PointerOver:
		v.Background = ThemeButtonOver
	case PointerPress:
		v.Background = ThemeButtonPress
	}
	return v
}

// Button is a push button with a centered label child. Press callbacks are
// posted to the command queue, so they run during the next Gui.Update
// rather than nested inside pointer dispatch.
type Button struct {
	node     NodeId
	base     baseButton
	label    cell.Handle[Widget]
	isToggle bool
	on       bool
	onPress  []func(*Gui)
}

// NewButton creates a push button.
func NewButton(g *Gui, label string) cell.Handle[Widget] {
	return newButton(g, label, false, false)
}

// NewToggleButton creates a button that latches on and off. The toggle
// state thickens the border, and every activation flips it before the
// press callbacks run.
func NewToggleButton(g *Gui, label string, on bool) cell.Handle[Widget] {
	return newButton(g, label, true, on)
}

func newButton(g *Gui, label string, isToggle, on bool) cell.Handle[Widget] {
	labelHandle := NewLabel(g, label)
	labelNode := WidgetNode(g, labelHandle)
	WithWidget(g, labelHandle, func(l *Label) {
		l.SetHAlign(glyph.HAlignCenter)
		l.SetVAlign(glyph.VAlignCenter)
	})
	g.SetStyle(labelNode, Style{Grow: 1})

	style := Style{MinWidth: Px(128), MinHeight: Px(32)}
	visual := ButtonVisual()
	h := CreateWidget(g, style, &visual, func(node NodeId) *Button {
		return &Button{node: node, label: labelHandle, isToggle: isToggle, on: on}
	})
	g.AddChild(WidgetNode(g, h), labelNode)
	return h
}

// Node implements Widget.
func (b *Button) Node() NodeId { return b.node }

// Label returns the handle of the button's label widget.
func (b *Button) Label() cell.Handle[Widget] { return b.label }

// On returns the toggle state. Always false for plain buttons.
func (b *Button) On() bool { return b.on }

// OnPress registers a callback posted when the button activates.
func (b *Button) OnPress(fn func(*Gui)) {
	b.onPress = append(b.onPress, fn)
}

// Render paints the button border: 1px, or 3px while toggled on.
func (b *Button) Render(f *Frame, size Size) {
	width := float32(1)
	if b.isToggle && b.on {
		width = 3
	}
	f.DrawBorder(size, EdgesAll(width))
}

// HandlePointer implements Control.
func (b *Button) HandlePointer(g *Gui, state PointerState) {
	v := b.base.setPointerState(state, func() {
		if b.isToggle {
			b.on = !b.on
		}
		for _, fn := range b.onPress {
			g.Post(fn)
		}
		g.emit(Event{Kind: EventPress, Node: b.node, On: b.on})
	})
	g.SetVisual(b.node, &v)
}

// Checkbox is a two-state box, or a two-position rocker switch. Change
// callbacks receive the new state and are posted to the command queue.
type Checkbox struct {
	node     NodeId
	base     baseButton
	on       bool
	rocker   bool
	onChange []func(*Gui, bool)
}

// NewCheckbox creates a checkbox with the given initial state.
func NewCheckbox(g *Gui, on bool) cell.Handle[Widget] {
	return newCheckbox(g, Size{W: 24, H: 24}, on, false)
}

// NewRocker creates a rocker switch: the mark sits at the right while on,
// at the left while off.
func NewRocker(g *Gui, on bool) cell.Handle[Widget] {
	return newCheckbox(g, Size{W: 48, H: 24}, on, true)
}

func newCheckbox(g *Gui, minSize Size, on, rocker bool) cell.Handle[Widget] {
	style := Style{MinWidth: Px(minSize.W), MinHeight: Px(minSize.H)}
	visual := ButtonVisual()
	return CreateWidget(g, style, &visual, func(node NodeId) *Checkbox {
		return &Checkbox{node: node, on: on, rocker: rocker}
	})
}

// Node implements Widget.
func (c *Checkbox) Node() NodeId { return c.node }

// On returns the current state.
func (c *Checkbox) On() bool { return c.on }

// SetOn sets the state without running change callbacks.
func (c *Checkbox) SetOn(on bool) { c.on = on }

// OnChange registers a callback posted with the new state on every flip.
func (c *Checkbox) OnChange(fn func(*Gui, bool)) {
	c.onChange = append(c.onChange, fn)
}

// Render paints a 1px border and the state mark: a half-size inner box for
// a checkbox, a half-height square at the 25% or 75% center for a rocker.
func (c *Checkbox) Render(f *Frame, size Size) {
	f.DrawBorder(size, EdgesAll(1))
	if c.on {
		if c.rocker {
			f.DrawRect(
				Point{X: size.W*0.75 - size.H/4, Y: size.H / 4},
				Size{W: size.H / 2, H: size.H / 2},
			)
		} else {
			f.DrawRect(
				Point{X: size.W / 4, Y: size.H / 4},
				Size{W: size.W / 2, H: size.H / 2},
			)
		}
	} else if c.rocker {
		f.DrawRect(
			Point{X: size.W*0.25 - size.H/4, Y: size.H / 4},
			Size{W: size.H / 2, H: size.H / 2},
		)
	}
}

// HandlePointer implements Control.
func (c *Checkbox) HandlePointer(g *Gui, state PointerState) {
	v := c.base.setPointerState(state, func() {
		c.on = !c.on
		on := c.on
		for _, fn := range c.onChange {
			cb := fn
			g.Post(func(g *Gui) { cb(g, on) })
		}
		g.emit(Event{Kind: EventChange, Node: c.node, On: on})
	})
	g.SetVisual(c.node, &v)
}

// Label is a text widget. It has no background, so it never takes the
// pointer highlight, and its text may be a literal value or a key resolved
// through the Gui's localization table.
type Label struct {
	node NodeId
	text Text
}

// NewLabel creates a label displaying value.
func NewLabel(g *Gui, value string) cell.Handle[Widget] {
	return newLabel(g, NewText(value))
}

// NewLabelKey creates a label whose text is looked up in the Strings
// table at draw time.
func NewLabelKey(g *Gui, key string) cell.Handle[Widget] {
	return newLabel(g, NewTextKey(key))
}

func newLabel(g *Gui, text Text) cell.Handle[Widget] {
	visual := DefaultVisual()
	return CreateWidget(g, Style{}, &visual, func(node NodeId) *Label {
		return &Label{node: node, text: text}
	})
}

// Node implements Widget.
func (l *Label) Node() NodeId { return l.node }

// Render draws the label text anchored in the node's box.
func (l *Label) Render(f *Frame, size Size) {
	f.DrawText(Point{}, size, &l.text)
}

// HandlePointer implements Control; labels ignore the pointer.
func (l *Label) HandlePointer(*Gui, PointerState) {}

// Text returns the current literal text.
func (l *Label) Text() string { return l.text.Value }

// SetText sets literal text, clearing any localization key.
func (l *Label) SetText(value string) {
	l.text.Value = value
	l.text.Key = ""
}

// SetKey sets a localization key, shadowing the literal text.
func (l *Label) SetKey(key string) { l.text.Key = key }

// SetFont selects the brush font the label draws with.
func (l *Label) SetFont(font glyph.FontID) { l.text.Font = font }

// SetPtSize sets the text size in points.
func (l *Label) SetPtSize(pt float32) { l.text.PtSize = pt }

// SetHAlign anchors the text horizontally within the label's box.
func (l *Label) SetHAlign(a glyph.HAlign) { l.text.HAlign = a }

// SetVAlign anchors the text vertically within the label's box.
func (l *Label) SetVAlign(a glyph.VAlign) { l.text.VAlign = a }
