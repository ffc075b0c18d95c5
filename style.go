package trellis

// Dim is a styled dimension: auto (the zero value), a pixel length, or a
// percentage of the parent's extent.
type Dim struct {
	unit dimUnit
	v    float32
}

type dimUnit uint8

const (
	dimAuto dimUnit = iota
	dimPx
	dimPct
)

// Px returns a fixed pixel dimension.
func Px(v float32) Dim { return Dim{unit: dimPx, v: v} }

// Pct returns a percentage dimension; 100 is the full parent extent.
func Pct(v float32) Dim { return Dim{unit: dimPct, v: v} }

// Auto is the unset dimension.
var Auto Dim

// Edges holds per-edge values in logical pixels, for padding, margins, and
// border widths.
type Edges struct {
	Top, Right, Bottom, Left float32
}

// EdgesAll returns Edges with every edge set to v.
func EdgesAll(v float32) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

// Direction is the main axis of a flex container.
type Direction uint8

const (
	DirectionRow Direction = iota
	DirectionColumn
	DirectionRowReverse
	DirectionColumnReverse
)

// Justify distributes children along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// Align positions children on the cross axis. AlignAuto defers to the
// engine default: stretch for AlignItems, the parent's AlignItems for
// AlignSelf.
type Align uint8

const (
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
	AlignStretch
	AlignBaseline
)

// Wrap controls line wrapping in a flex container.
type Wrap uint8

const (
	WrapNone Wrap = iota
	WrapWrap
	WrapReverse
)

// Position selects normal flow or absolute placement through the
// Left/Top/Right/Bottom insets.
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

// Style declares the flexbox layout of one node. The zero value is a
// row-direction container that hugs its content.
type Style struct {
	Width, Height       Dim
	MinWidth, MinHeight Dim
	MaxWidth, MaxHeight Dim

	Direction  Direction
	Justify    Justify
	AlignItems Align
	AlignSelf  Align
	Wrap       Wrap

	Grow   float32
	Shrink float32
	Basis  Dim

	Position                 Position
	Left, Top, Right, Bottom Dim

	Padding Edges
	Margin  Edges
	Border  Edges
}
