package trellis

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 values at once and applies them to a
// Gui each frame. Create one via the convenience constructors (TweenPosition,
// TweenSize, TweenColor) and call Update(dt) yourself; there is no global
// animation manager. Groups bound to a node stop immediately when the node
// is destroyed.
type TweenGroup struct {
	gui    *Gui
	node   NodeId
	tweens [4]*gween.Tween
	count  int
	apply  func(g *Gui, vals [4]float32)
	Done   bool
}

// Update advances all tweens by dt seconds and applies the new values. When
// the group is bound to a node that is no longer alive, Done is set and no
// writes occur.
func (t *TweenGroup) Update(dt float32) {
	if t.Done {
		return
	}

	if t.node != (NodeId{}) && !t.gui.Alive(t.node) {
		t.Done = true
		return
	}

	var vals [4]float32
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone
	t.apply(t.gui, vals)
}

// TweenPosition animates the node's Left and Top insets to the given
// coordinates. The node should use PositionAbsolute, since relative nodes
// ignore insets. Starting values are the node's current insets; auto
// resolves as 0.
func TweenPosition(g *Gui, node NodeId, toX, toY float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	style := g.Style(node)
	t := &TweenGroup{gui: g, node: node, count: 2}
	t.tweens[0] = gween.New(style.Left.v, toX, duration, fn)
	t.tweens[1] = gween.New(style.Top.v, toY, duration, fn)
	t.apply = func(g *Gui, vals [4]float32) {
		s := g.Style(node)
		s.Left = Px(vals[0])
		s.Top = Px(vals[1])
		g.SetStyle(node, s)
	}
	return t
}

// TweenSize animates the node's Width and Height to the target size,
// starting from the current layout box. Call Gui.Layout after Update to see
// the intermediate sizes take effect.
func TweenSize(g *Gui, node NodeId, to Size, duration float32, fn ease.TweenFunc) *TweenGroup {
	box := g.Box(node)
	t := &TweenGroup{gui: g, node: node, count: 2}
	t.tweens[0] = gween.New(box.W, to.W, duration, fn)
	t.tweens[1] = gween.New(box.H, to.H, duration, fn)
	t.apply = func(g *Gui, vals [4]float32) {
		s := g.Style(node)
		s.Width = Px(vals[0])
		s.Height = Px(vals[1])
		g.SetStyle(node, s)
	}
	return t
}

// TweenColor animates all four components of a theme slot to the target
// color. Every visual referencing the slot follows along on its next paint.
func TweenColor(g *Gui, slot ThemeColor, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := g.theme.Color(slot)
	t := &TweenGroup{gui: g, count: 4}
	t.tweens[0] = gween.New(from.R, to.R, duration, fn)
	t.tweens[1] = gween.New(from.G, to.G, duration, fn)
	t.tweens[2] = gween.New(from.B, to.B, duration, fn)
	t.tweens[3] = gween.New(from.A, to.A, duration, fn)
	t.apply = func(g *Gui, vals [4]float32) {
		g.theme.SetColor(slot, Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]})
	}
	return t
}
