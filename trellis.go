package trellis

// Point is a position in logical pixels.
type Point struct {
	X, Y float32
}

// Size is a width/height pair in logical pixels.
type Size struct {
	W, H float32
}

// Rect is an axis-aligned rectangle with its position at the top-left
// corner.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies inside the rectangle. Bounds are
// half-open: the left and top edges are inside, the right and bottom are
// not.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Color is a straight-alpha RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
