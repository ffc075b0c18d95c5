package trellis

import "github.com/phanxgames/trellis/cell"

// EventKind discriminates Gui events.
type EventKind uint8

const (
	// EventHighlight fires when the pointer highlight moves. Node is the
	// new highlight, zero when the pointer left every control.
	EventHighlight EventKind = iota
	// EventPress fires when a button activates. For toggle buttons On
	// carries the new latch state.
	EventPress
	// EventChange fires when a checkbox or rocker flips. On carries the
	// new state.
	EventChange
)

// Event is one Gui interaction, for the optional ECS bridge.
type Event struct {
	Kind EventKind
	Node NodeId
	On   bool
}

// EventSink receives Gui events. Sinks must only record or enqueue;
// calling back into the Gui from EmitEvent is not supported.
type EventSink interface {
	EmitEvent(Event)
}

// guiState is the pointer-facing state of a Gui.
type guiState struct {
	screenW, screenH   float32
	pointerX, pointerY float32
	pointerDown        bool
	highlight          NodeId
}

// Gui owns a tree of styled nodes and everything attached to them: flex
// layout, visuals, paint and pointer capabilities, widgets, and the
// pointer highlight. A Gui is not safe for concurrent use.
type Gui struct {
	layout    *layoutTree
	slots     []nodeSlot
	freeSlots []uint32
	root      NodeId

	widgets *cell.Arena[Widget]

	theme   Theme
	strings Strings
	state   guiState

	commands []func(*Gui)
	spare    []func(*Gui)

	sink EventSink
}

// NewGui creates a Gui with the default theme and an empty root node. The
// root always spans the screen.
func NewGui() *Gui {
	g := &Gui{
		layout:  newLayoutTree(),
		widgets: cell.NewArena[Widget](),
		theme:   DefaultTheme(),
	}
	g.root = g.alloc(Style{}, nil)
	return g
}

// Root returns the root node.
func (g *Gui) Root() NodeId { return g.root }

// Theme returns the active theme.
func (g *Gui) Theme() Theme { return g.theme }

// SetTheme replaces the active theme.
func (g *Gui) SetTheme(t Theme) { g.theme = t }

// SetStrings installs the localization table used to resolve Text keys.
func (g *Gui) SetStrings(s Strings) { g.strings = s }

// SetEventSink sets the optional event bridge.
func (g *Gui) SetEventSink(sink EventSink) { g.sink = sink }

func (g *Gui) emit(ev Event) {
	if g.sink != nil {
		g.sink.EmitEvent(ev)
	}
}

// Post queues fn to run during the next Update. Posting is the safe way to
// mutate the tree from widget callbacks: commands never run nested inside
// pointer dispatch or painting.
func (g *Gui) Post(fn func(*Gui)) {
	g.commands = append(g.commands, fn)
}

// Update drains the command queue in post order. Commands posted while
// draining run on the next Update, so a command that re-posts cannot
// starve the frame.
func (g *Gui) Update() {
	cmds := g.commands
	g.commands = g.spare[:0]
	for _, fn := range cmds {
		fn(g)
	}
	g.spare = cmds[:0]
}

// SetScreenSize records the viewport and recomputes layout. The root node
// is pinned to the screen dimensions.
func (g *Gui) SetScreenSize(w, h float32) {
	g.state.screenW = w
	g.state.screenH = h
	g.Layout()
}

// ScreenSize returns the viewport last passed to SetScreenSize.
func (g *Gui) ScreenSize() (w, h float32) {
	return g.state.screenW, g.state.screenH
}

// Layout recomputes the flex layout of the whole tree against the current
// screen size.
func (g *Gui) Layout() {
	s := g.slot(g.root, "Layout")
	s.style.Width = Px(g.state.screenW)
	s.style.Height = Px(g.state.screenH)
	applyStyle(s.flex, &s.style)
	g.layout.compute(s.flex, g.state.screenW, g.state.screenH)
}
