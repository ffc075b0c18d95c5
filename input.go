package trellis

// PointerState is the relationship between the pointer and one control.
type PointerState uint8

const (
	// PointerNone: the pointer is elsewhere.
	PointerNone PointerState = iota
	// PointerOver: the pointer is over the control with the button up.
	PointerOver
	// PointerPress: the pointer is over the control with the button down.
	PointerPress
)

// Control receives pointer-state transitions for its node. Handlers may
// update visuals directly but must post tree mutations with Gui.Post.
type Control interface {
	HandlePointer(g *Gui, state PointerState)
}

// Highlight returns the currently highlighted node, or the zero NodeId.
// The highlight is always a live, hit-testable node.
func (g *Gui) Highlight() NodeId { return g.state.highlight }

// HandlePointerMotion feeds a pointer position in screen coordinates. When
// the topmost hit-testable node under the pointer changes, the old
// highlight's control receives PointerNone and the new one PointerOver, or
// PointerPress if the button is down.
func (g *Gui) HandlePointerMotion(x, y float32) {
	g.state.pointerX = x
	g.state.pointerY = y

	highlight := g.hitTest(x, y)
	if highlight == g.state.highlight {
		return
	}
	if old := g.state.highlight; old != (NodeId{}) {
		if c := g.slot(old, "HandlePointerMotion").control; c != nil {
			c.HandlePointer(g, PointerNone)
		}
	}
	if highlight != (NodeId{}) {
		if c := g.slot(highlight, "HandlePointerMotion").control; c != nil {
			state := PointerOver
			if g.state.pointerDown {
				state = PointerPress
			}
			c.HandlePointer(g, state)
		}
	}
	g.state.highlight = highlight
	g.emit(Event{Kind: EventHighlight, Node: highlight})
}

// HandlePointerButton feeds the primary button state. Repeated calls with
// an unchanged value are ignored, so each press and release is delivered
// exactly once. The highlighted control, if any, receives PointerPress or
// PointerOver.
func (g *Gui) HandlePointerButton(pressed bool) {
	if g.state.pointerDown == pressed {
		return
	}
	g.state.pointerDown = pressed
	if h := g.state.highlight; h != (NodeId{}) {
		if c := g.slot(h, "HandlePointerButton").control; c != nil {
			state := PointerOver
			if pressed {
				state = PointerPress
			}
			c.HandlePointer(g, state)
		}
	}
}

// hitTest returns the topmost hit-testable node under (x, y), or the zero
// NodeId.
func (g *Gui) hitTest(x, y float32) NodeId {
	id, _ := g.hitNode(g.root, x, y)
	return id
}

// hitNode recurses in inverse paint order: children above their parent,
// last child first, the node itself last. Coordinates outside a node's box
// never reach its children, so children are clipped to their ancestors for
// hit-testing. Bounds are half-open on the right and bottom.
func (g *Gui) hitNode(id NodeId, x, y float32) (NodeId, bool) {
	s := &g.slots[id.index]
	box := boxOf(s.flex)
	x -= box.X
	y -= box.Y
	if x < 0 || y < 0 || x >= box.W || y >= box.H {
		return NodeId{}, false
	}
	for i := len(s.children) - 1; i >= 0; i-- {
		if hit, ok := g.hitNode(s.children[i], x, y); ok {
			return hit, true
		}
	}
	if s.visual.canHighlight() {
		return id, true
	}
	return NodeId{}, false
}
