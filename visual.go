package trellis

import "github.com/phanxgames/trellis/glyph"

// ThemeColor names a slot in a Theme. The zero value ThemeNone marks a
// visual layer as absent.
type ThemeColor uint8

const (
	ThemeNone ThemeColor = iota
	ThemeBackground
	ThemeButtonNormal
	ThemeButtonOver
	ThemeButtonPress
	ThemeButtonDisable
	ThemeBorder
	ThemeForeground
)

// Theme maps ThemeColor slots to concrete colors. Visuals reference slots,
// so swapping the theme restyles the whole tree on the next frame.
type Theme struct {
	Background    Color
	ButtonNormal  Color
	ButtonOver    Color
	ButtonPress   Color
	ButtonDisable Color
	Border        Color
	Foreground    Color
}

// DefaultTheme returns the built-in grayscale theme.
func DefaultTheme() Theme {
	return Theme{
		Background:    gray(0.153),
		ButtonNormal:  gray(0.216),
		ButtonOver:    gray(0.278),
		ButtonPress:   gray(0.341),
		ButtonDisable: gray(0.216),
		Border:        gray(0.906),
		Foreground:    gray(0.906),
	}
}

func gray(v float32) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// Color resolves a theme slot. ThemeNone resolves to transparent black.
func (t *Theme) Color(tc ThemeColor) Color {
	switch tc {
	case ThemeBackground:
		return t.Background
	case ThemeButtonNormal:
		return t.ButtonNormal
	case ThemeButtonOver:
		return t.ButtonOver
	case ThemeButtonPress:
		return t.ButtonPress
	case ThemeButtonDisable:
		return t.ButtonDisable
	case ThemeBorder:
		return t.Border
	case ThemeForeground:
		return t.Foreground
	}
	return Color{}
}

// SetColor replaces a theme slot. Setting ThemeNone is a no-op.
func (t *Theme) SetColor(tc ThemeColor, c Color) {
	switch tc {
	case ThemeBackground:
		t.Background = c
	case ThemeButtonNormal:
		t.ButtonNormal = c
	case ThemeButtonOver:
		t.ButtonOver = c
	case ThemeButtonPress:
		t.ButtonPress = c
	case ThemeButtonDisable:
		t.ButtonDisable = c
	case ThemeBorder:
		t.Border = c
	case ThemeForeground:
		t.Foreground = c
	}
}

// Visual describes the chrome painted for one node, in paint order: a
// background fill, a border stroke, and a foreground pass delegated to the
// node's widget. Layers set to ThemeNone are skipped. Only nodes whose
// visual has a background take part in pointer hit-testing.
type Visual struct {
	Background  ThemeColor
	Border      ThemeColor
	Foreground  ThemeColor
	BorderWidth Edges
}

// DefaultVisual returns a Visual that paints widget content only.
func DefaultVisual() Visual {
	return Visual{Foreground: ThemeForeground}
}

// ButtonVisual returns the Visual used by button-like widgets: a filled
// background and a foreground pass. Button borders are painted by the
// widget itself so their width can track its state.
func ButtonVisual() Visual {
	return Visual{
		Background: ThemeButtonNormal,
		Foreground: ThemeForeground,
	}
}

// canHighlight reports whether a node with this visual is hit-testable.
func (v *Visual) canHighlight() bool {
	return v != nil && v.Background != ThemeNone
}

// Text is a styled run of text. Value is drawn directly unless Key is set,
// in which case the display string is resolved through the Gui's Strings
// table at draw time.
type Text struct {
	Value  string
	Key    string
	Font   glyph.FontID
	PtSize float32
	HAlign glyph.HAlign
	VAlign glyph.VAlign
}

// NewText returns a Text with the default look: 14 points, left-aligned,
// vertically centered.
func NewText(value string) Text {
	return Text{Value: value, PtSize: 14, VAlign: glyph.VAlignCenter}
}

// NewTextKey returns a localized Text resolved through the Strings table.
func NewTextKey(key string) Text {
	t := NewText("")
	t.Key = key
	return t
}
