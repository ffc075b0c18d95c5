package trellis

import "github.com/kjk/flex"

// layoutTree wraps the flexbox engine. Parent/child bookkeeping lives in
// the Gui registry; the adapter only creates engine nodes, translates
// styles, and runs the solver.
type layoutTree struct {
	config *flex.Config
}

func newLayoutTree() *layoutTree {
	return &layoutTree{config: flex.NewConfig()}
}

func (lt *layoutTree) newLeaf(st *Style) *flex.Node {
	n := flex.NewNodeWithConfig(lt.config)
	applyStyle(n, st)
	return n
}

func (lt *layoutTree) insertChild(parent, child *flex.Node, idx int) {
	parent.InsertChild(child, idx)
}

func (lt *layoutTree) removeChild(parent, child *flex.Node) {
	parent.RemoveChild(child)
}

// compute solves the tree rooted at root for a definite viewport.
func (lt *layoutTree) compute(root *flex.Node, w, h float32) {
	flex.CalculateLayout(root, w, h, flex.DirectionLTR)
}

// boxOf returns a node's solved box, positioned relative to its parent.
func boxOf(n *flex.Node) Rect {
	return Rect{
		X: n.LayoutGetLeft(),
		Y: n.LayoutGetTop(),
		W: n.LayoutGetWidth(),
		H: n.LayoutGetHeight(),
	}
}

// applyStyle pushes every Style field to the engine node. Fields are
// reapplied wholesale so values from a previous style cannot leak through.
func applyStyle(n *flex.Node, st *Style) {
	setDim(st.Width, n.StyleSetWidth, n.StyleSetWidthPercent, n.StyleSetWidthAuto)
	setDim(st.Height, n.StyleSetHeight, n.StyleSetHeightPercent, n.StyleSetHeightAuto)
	setLength(st.MinWidth, n.StyleSetMinWidth, n.StyleSetMinWidthPercent)
	setLength(st.MinHeight, n.StyleSetMinHeight, n.StyleSetMinHeightPercent)
	setLength(st.MaxWidth, n.StyleSetMaxWidth, n.StyleSetMaxWidthPercent)
	setLength(st.MaxHeight, n.StyleSetMaxHeight, n.StyleSetMaxHeightPercent)

	n.StyleSetFlexDirection(flexDirection(st.Direction))
	n.StyleSetJustifyContent(flexJustify(st.Justify))
	n.StyleSetAlignItems(flexAlign(st.AlignItems, flex.AlignStretch))
	n.StyleSetAlignSelf(flexAlign(st.AlignSelf, flex.AlignAuto))
	n.StyleSetFlexWrap(flexWrap(st.Wrap))

	n.StyleSetFlexGrow(st.Grow)
	n.StyleSetFlexShrink(st.Shrink)
	setLength(st.Basis, n.StyleSetFlexBasis, n.StyleSetFlexBasisPercent)

	if st.Position == PositionAbsolute {
		n.StyleSetPositionType(flex.PositionTypeAbsolute)
	} else {
		n.StyleSetPositionType(flex.PositionTypeRelative)
	}
	setInset(n, flex.EdgeLeft, st.Left)
	setInset(n, flex.EdgeTop, st.Top)
	setInset(n, flex.EdgeRight, st.Right)
	setInset(n, flex.EdgeBottom, st.Bottom)

	setEdges(st.Padding, n.StyleSetPadding)
	setEdges(st.Margin, n.StyleSetMargin)
	setEdges(st.Border, n.StyleSetBorder)
}

func setDim(d Dim, px, pct func(float32), auto func()) {
	switch d.unit {
	case dimPx:
		px(d.v)
	case dimPct:
		pct(d.v)
	default:
		auto()
	}
}

// setLength applies dimensions that have no auto setter in the engine;
// auto resets the value to undefined.
func setLength(d Dim, px, pct func(float32)) {
	switch d.unit {
	case dimPx:
		px(d.v)
	case dimPct:
		pct(d.v)
	default:
		px(flex.Undefined)
	}
}

func setInset(n *flex.Node, edge flex.Edge, d Dim) {
	switch d.unit {
	case dimPx:
		n.StyleSetPosition(edge, d.v)
	case dimPct:
		n.StyleSetPositionPercent(edge, d.v)
	default:
		n.StyleSetPosition(edge, flex.Undefined)
	}
}

func setEdges(e Edges, set func(flex.Edge, float32)) {
	set(flex.EdgeTop, e.Top)
	set(flex.EdgeRight, e.Right)
	set(flex.EdgeBottom, e.Bottom)
	set(flex.EdgeLeft, e.Left)
}

func flexDirection(d Direction) flex.FlexDirection {
	switch d {
	case DirectionColumn:
		return flex.FlexDirectionColumn
	case DirectionRowReverse:
		return flex.FlexDirectionRowReverse
	case DirectionColumnReverse:
		return flex.FlexDirectionColumnReverse
	default:
		return flex.FlexDirectionRow
	}
}

func flexJustify(j Justify) flex.Justify {
	switch j {
	case JustifyCenter:
		return flex.JustifyCenter
	case JustifyEnd:
		return flex.JustifyFlexEnd
	case JustifySpaceBetween:
		return flex.JustifySpaceBetween
	case JustifySpaceAround:
		return flex.JustifySpaceAround
	default:
		return flex.JustifyFlexStart
	}
}

func flexAlign(a Align, auto flex.Align) flex.Align {
	switch a {
	case AlignStart:
		return flex.AlignFlexStart
	case AlignCenter:
		return flex.AlignCenter
	case AlignEnd:
		return flex.AlignFlexEnd
	case AlignStretch:
		return flex.AlignStretch
	case AlignBaseline:
		return flex.AlignBaseline
	default:
		return auto
	}
}

func flexWrap(w Wrap) flex.Wrap {
	switch w {
	case WrapWrap:
		return flex.WrapWrap
	case WrapReverse:
		return flex.WrapWrapReverse
	default:
		return flex.WrapNoWrap
	}
}
