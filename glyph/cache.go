package glyph

// glyphKey identifies one rasterized glyph: font, pixel scale quantized to
// tenths, and rune.
type glyphKey struct {
	font  FontID
	scale int32
	r     rune
}

func scaleKey(scale float32) int32 {
	return int32(scale*10 + 0.5)
}

func (k glyphKey) scaleValue() float32 {
	return float32(k.scale) / 10
}

// glyphSlot is a cached glyph's region in the texture plus its placement
// metrics. Whitespace and other maskless glyphs are cached as empty so
// they still advance the pen without occupying texture space.
type glyphSlot struct {
	empty      bool
	x, y, w, h int
	offX, offY int
}

// shelf is one packer row: glyphs of similar height share a shelf, and a
// new shelf opens below the last when none fits.
type shelf struct {
	y, h, x int
}

// pack reserves a w×h region with a one-pixel gutter on every side,
// first-fit across shelves. It reports failure when no shelf can take the
// region and there is no room for a new one.
func (b *Brush) pack(w, h int) (x, y int, ok bool) {
	if w+2 > b.texW || h+2 > b.texH {
		return 0, 0, false
	}
	for i := range b.shelves {
		s := &b.shelves[i]
		if h+2 <= s.h && s.x+w+2 <= b.texW {
			x, y = s.x+1, s.y+1
			s.x += w + 2
			return x, y, true
		}
	}
	top := 0
	if n := len(b.shelves); n > 0 {
		top = b.shelves[n-1].y + b.shelves[n-1].h
	}
	if top+h+2 > b.texH {
		return 0, 0, false
	}
	b.shelves = append(b.shelves, shelf{y: top, h: h + 2, x: w + 2})
	return 1, top + 1, true
}
