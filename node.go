package trellis

import (
	"fmt"

	"github.com/kjk/flex"

	"github.com/phanxgames/trellis/cell"
)

// NodeId identifies a node in a Gui. Ids are generational: destroying a
// node invalidates every outstanding copy of its id, and a later reuse of
// the slot mints a fresh generation, so a stale id can never alias a new
// node. The zero NodeId names no node.
type NodeId struct {
	index uint32
	gen   uint32
}

// String implements fmt.Stringer for diagnostics.
func (id NodeId) String() string {
	return fmt.Sprintf("node(%d:%d)", id.index, id.gen)
}

// nodeSlot is the registry entry behind a NodeId. The flex node carries
// the layout state; everything else hangs off the slot directly.
type nodeSlot struct {
	gen  uint32
	live bool

	flex   *flex.Node
	style  Style
	visual *Visual

	view    View
	control Control
	widget  cell.Handle[Widget]

	parent   NodeId
	children []NodeId
}

// slot resolves id or panics, naming the operation that tripped on the
// stale id.
func (g *Gui) slot(id NodeId, op string) *nodeSlot {
	if int(id.index) < len(g.slots) {
		s := &g.slots[id.index]
		if s.live && s.gen == id.gen {
			return s
		}
	}
	panic(fmt.Sprintf("trellis: %s: %v is not alive", op, id))
}

// alloc claims a registry slot for a new detached node.
func (g *Gui) alloc(style Style, visual *Visual) NodeId {
	var idx uint32
	if n := len(g.freeSlots); n > 0 {
		idx = g.freeSlots[n-1]
		g.freeSlots = g.freeSlots[:n-1]
	} else {
		g.slots = append(g.slots, nodeSlot{})
		idx = uint32(len(g.slots) - 1)
	}
	s := &g.slots[idx]
	s.gen++
	s.live = true
	s.flex = g.layout.newLeaf(&style)
	s.style = style
	if visual != nil {
		vv := *visual
		s.visual = &vv
	}
	return NodeId{index: idx, gen: s.gen}
}

// CreateNode allocates a detached node with the given style and an
// optional visual. Attach it with AddChild.
func (g *Gui) CreateNode(style Style, visual *Visual) NodeId {
	return g.alloc(style, visual)
}

// Alive reports whether id still names a live node.
func (g *Gui) Alive(id NodeId) bool {
	if int(id.index) >= len(g.slots) {
		return false
	}
	s := &g.slots[id.index]
	return s.live && s.gen == id.gen
}

// AddChild attaches child under parent, after any existing children. The
// child must be detached, and the edge must not form a cycle.
func (g *Gui) AddChild(parent, child NodeId) {
	p := g.slot(parent, "AddChild")
	c := g.slot(child, "AddChild")
	if parent == child {
		panic("trellis: AddChild: cannot attach a node to itself")
	}
	if c.parent != (NodeId{}) {
		panic(fmt.Sprintf("trellis: AddChild: %v is already attached", child))
	}
	if g.inSubtree(parent, child) {
		panic("trellis: AddChild: attach would create a cycle")
	}
	g.layout.insertChild(p.flex, c.flex, len(p.children))
	p.children = append(p.children, child)
	c.parent = parent
}

// RemoveChild detaches child from parent. The subtree stays alive and can
// be reattached later. A pointer highlight inside the detached subtree is
// cleared.
func (g *Gui) RemoveChild(parent, child NodeId) {
	p := g.slot(parent, "RemoveChild")
	c := g.slot(child, "RemoveChild")
	if c.parent != parent {
		panic(fmt.Sprintf("trellis: RemoveChild: %v is not a child of %v", child, parent))
	}
	g.layout.removeChild(p.flex, c.flex)
	p.children = removeId(p.children, child)
	c.parent = NodeId{}
	g.dropHighlightIn(child)
}

// Destroy removes node and its whole subtree: layout entries, visuals,
// capabilities, and widgets. Every id into the subtree goes stale. A
// pointer highlight inside the subtree is cleared. The root cannot be
// destroyed.
func (g *Gui) Destroy(node NodeId) {
	if node == g.root {
		panic("trellis: Destroy: cannot destroy the root node")
	}
	s := g.slot(node, "Destroy")
	if s.parent != (NodeId{}) {
		p := g.slot(s.parent, "Destroy")
		g.layout.removeChild(p.flex, s.flex)
		p.children = removeId(p.children, node)
	}
	g.dropHighlightIn(node)
	g.freeSubtree(node)
}

func (g *Gui) freeSubtree(id NodeId) {
	s := &g.slots[id.index]
	for _, child := range s.children {
		g.freeSubtree(child)
	}
	if !s.widget.IsZero() {
		g.widgets.Remove(s.widget)
	}
	*s = nodeSlot{gen: s.gen}
	g.freeSlots = append(g.freeSlots, id.index)
}

// inSubtree reports whether node sits in the subtree rooted at root,
// including node == root.
func (g *Gui) inSubtree(node, root NodeId) bool {
	for id := node; id != (NodeId{}); id = g.slots[id.index].parent {
		if id == root {
			return true
		}
	}
	return false
}

// dropHighlightIn clears the pointer highlight if it sits inside the
// subtree rooted at id.
func (g *Gui) dropHighlightIn(id NodeId) {
	h := g.state.highlight
	if h == (NodeId{}) {
		return
	}
	if g.inSubtree(h, id) {
		g.state.highlight = NodeId{}
	}
}

// removeId deletes id from ids preserving order.
func removeId(ids []NodeId, id NodeId) []NodeId {
	for i, v := range ids {
		if v == id {
			copy(ids[i:], ids[i+1:])
			ids[len(ids)-1] = NodeId{}
			return ids[:len(ids)-1]
		}
	}
	return ids
}

// SetStyle replaces the node's style. Call Layout to recompute boxes.
func (g *Gui) SetStyle(node NodeId, style Style) {
	s := g.slot(node, "SetStyle")
	s.style = style
	applyStyle(s.flex, &style)
}

// Style returns the node's current style.
func (g *Gui) Style(node NodeId) Style {
	return g.slot(node, "Style").style
}

// Box returns the node's computed layout box, positioned relative to its
// parent. Boxes are valid after Layout or SetScreenSize.
func (g *Gui) Box(node NodeId) Rect {
	return boxOf(g.slot(node, "Box").flex)
}

// Parent returns the node's parent, or the zero NodeId when detached.
func (g *Gui) Parent(node NodeId) NodeId {
	return g.slot(node, "Parent").parent
}

// Children returns the node's children in paint order. The slice is
// internal: callers must not modify it.
func (g *Gui) Children(node NodeId) []NodeId {
	return g.slot(node, "Children").children
}

// SetVisual replaces the node's visual; nil clears it. The visual is
// copied. Removing the background from the highlighted node also clears
// the highlight, since the node is no longer hit-testable.
func (g *Gui) SetVisual(node NodeId, v *Visual) {
	s := g.slot(node, "SetVisual")
	if v == nil {
		s.visual = nil
	} else {
		vv := *v
		s.visual = &vv
	}
	if g.state.highlight == node && !s.visual.canHighlight() {
		g.state.highlight = NodeId{}
	}
}

// Visual returns a copy of the node's visual, or nil when unset.
func (g *Gui) Visual(node NodeId) *Visual {
	s := g.slot(node, "Visual")
	if s.visual == nil {
		return nil
	}
	vv := *s.visual
	return &vv
}

// SetView sets the node's paint capability; nil clears it. The view runs
// during the foreground pass when the node's visual enables one.
func (g *Gui) SetView(node NodeId, v View) {
	g.slot(node, "SetView").view = v
}

// SetControl sets the node's pointer capability; nil clears it.
func (g *Gui) SetControl(node NodeId, c Control) {
	g.slot(node, "SetControl").control = c
}
