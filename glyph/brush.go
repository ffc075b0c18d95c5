package glyph

import (
	"fmt"
	"image"
	"image/draw"
	"slices"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontID names a font loaded into a Brush.
type FontID int

// HAlign anchors a section horizontally on its position.
type HAlign uint8

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

// VAlign anchors a section vertically on its position.
type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

// Run is one styled run of text within a Section. Scale is the pixel
// height of the face; Layer groups quads for renderers that draw text in
// batches interleaved with other geometry.
type Run struct {
	Content string
	Font    FontID
	Scale   float32
	Color   [4]float32
	Layer   int
}

// Section is one anchored block of text. The position (X, Y) is read
// through the align fields: HAlignCenter centers every line on X,
// VAlignBottom puts the block's bottom at Y, and so on. The bounds (W, H)
// clamp overflow: glyphs whose pen passes the right edge and lines past
// the bottom edge are dropped. A zero bound disables the clamp on that
// axis. Newlines inside run content break lines.
type Section struct {
	X, Y   float32
	W, H   float32
	HAlign HAlign
	VAlign VAlign
	Runs   []Run
}

// Quad is one positioned glyph: a screen rectangle, normalized texture
// coordinates, the run's color, and the run's layer.
type Quad struct {
	X, Y, W, H   float32
	U, V, UW, VH float32
	Color        [4]float32
	Layer        int
}

// Action tells the caller what to do with its glyph geometry after a
// successful ProcessQueued.
type Action uint8

const (
	// ActionDraw: new quads were emitted through the place callback;
	// rebuild text instance buffers.
	ActionDraw Action = iota
	// ActionRedraw: the frame matches the previous one; keep the existing
	// instance buffers.
	ActionRedraw
)

// TooSmallError reports that the glyph texture cannot hold the queued
// frame. W and H are dimensions to retry with.
type TooSmallError struct {
	W, H int
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("glyph: texture too small, retry with %dx%d", e.W, e.H)
}

const defaultTextureSize = 256

// Brush lays out, rasterizes, and caches text. It is not safe for
// concurrent use.
type Brush struct {
	fonts []*fontEntry

	texW, texH int
	cache      map[glyphKey]glyphSlot
	shelves    []shelf

	queued  []Section
	scratch []placedGlyph

	prev      []Quad
	prevValid bool
}

type fontEntry struct {
	font  *sfnt.Font
	faces map[int32]font.Face
}

// placedGlyph is a laid-out glyph before rasterization: the pen position
// and baseline, with the final rectangle resolved from the cache once the
// glyph has a texture slot.
type placedGlyph struct {
	key   glyphKey
	x, y  float32
	color [4]float32
	layer int
}

// NewBrush creates a Brush with a 256x256 texture from one or more TTF or
// OTF font blobs. The first blob becomes FontID 0.
func NewBrush(ttf ...[]byte) (*Brush, error) {
	b := &Brush{
		texW:  defaultTextureSize,
		texH:  defaultTextureSize,
		cache: make(map[glyphKey]glyphSlot),
	}
	for _, data := range ttf {
		if _, err := b.AddFont(data); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// DefaultBrush returns a Brush loaded with the Go Regular typeface.
func DefaultBrush() *Brush {
	b, err := NewBrush(goregular.TTF)
	if err != nil {
		panic("glyph: embedded font: " + err.Error())
	}
	return b
}

// AddFont parses a font blob and registers it under a new FontID.
func (b *Brush) AddFont(data []byte) (FontID, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("glyph: parse font: %w", err)
	}
	b.fonts = append(b.fonts, &fontEntry{font: f, faces: make(map[int32]font.Face)})
	return FontID(len(b.fonts) - 1), nil
}

// FontCount returns the number of loaded fonts.
func (b *Brush) FontCount() int {
	return len(b.fonts)
}

// PtToPx converts a point size to the pixel scale used by Run.Scale,
// assuming the conventional 96 DPI display. It panics on an unknown
// FontID.
func (b *Brush) PtToPx(id FontID, pt float32) float32 {
	if id < 0 || int(id) >= len(b.fonts) {
		panic(fmt.Sprintf("glyph: invalid FontID %d", id))
	}
	return pt * 96 / 72
}

// TextureDimensions returns the current texture size.
func (b *Brush) TextureDimensions() (w, h int) {
	return b.texW, b.texH
}

// ResizeTexture sets new texture dimensions and invalidates the cache.
// Every glyph is re-rasterized by the next ProcessQueued, which is then
// always an ActionDraw.
func (b *Brush) ResizeTexture(w, h int) {
	b.texW = w
	b.texH = h
	clear(b.cache)
	b.shelves = b.shelves[:0]
	b.prev = b.prev[:0]
	b.prevValid = false
}

// Queue adds a section to the current frame. Sections accumulate until a
// ProcessQueued call succeeds.
func (b *Brush) Queue(s Section) {
	b.queued = append(b.queued, s)
}

// ProcessQueued lays out the queued sections, rasterizes glyphs missing
// from the texture through rasterize(x, y, w, h, alpha), and reports what
// to do with the frame's geometry. On ActionDraw every positioned glyph is
// handed to place, in section order; on ActionRedraw the previous frame's
// geometry is unchanged and place is not called. When the texture cannot
// hold the frame a *TooSmallError is returned and the queue is kept so the
// caller can resize and retry.
func (b *Brush) ProcessQueued(rasterize func(x, y, w, h int, alpha []byte), place func(Quad)) (Action, error) {
	b.scratch = b.scratch[:0]
	for i := range b.queued {
		if err := b.layoutSection(&b.queued[i]); err != nil {
			return 0, err
		}
	}

	// Rasterize misses before emitting so every quad sees final texture
	// coordinates.
	for i := range b.scratch {
		if err := b.ensureGlyph(b.scratch[i].key, rasterize); err != nil {
			return 0, err
		}
	}

	quads := make([]Quad, 0, len(b.scratch))
	for i := range b.scratch {
		pg := &b.scratch[i]
		slot := b.cache[pg.key]
		if slot.empty {
			continue
		}
		quads = append(quads, Quad{
			X:     pg.x + float32(slot.offX),
			Y:     pg.y + float32(slot.offY),
			W:     float32(slot.w),
			H:     float32(slot.h),
			U:     float32(slot.x) / float32(b.texW),
			V:     float32(slot.y) / float32(b.texH),
			UW:    float32(slot.w) / float32(b.texW),
			VH:    float32(slot.h) / float32(b.texH),
			Color: pg.color,
			Layer: pg.layer,
		})
	}

	b.queued = b.queued[:0]

	if b.prevValid && slices.Equal(b.prev, quads) {
		return ActionRedraw, nil
	}
	for _, q := range quads {
		place(q)
	}
	b.prev = quads
	b.prevValid = true
	return ActionDraw, nil
}

// face returns the font.Face for a pixel scale, quantized to a tenth of a
// pixel. Faces are cached per font and scale.
func (b *Brush) face(id FontID, scale float32) (font.Face, error) {
	if id < 0 || int(id) >= len(b.fonts) {
		panic(fmt.Sprintf("glyph: invalid FontID %d", id))
	}
	e := b.fonts[id]
	key := scaleKey(scale)
	if f, ok := e.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(e.font, &opentype.FaceOptions{
		Size:    float64(key) / 10,
		DPI:     72, // size in pixels
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: create face: %w", err)
	}
	e.faces[key] = f
	return f, nil
}

type lineSeg struct {
	run  int
	text string
}

type lineInfo struct {
	segs   []lineSeg
	width  float32
	ascent float32
	height float32
}

// layoutSection appends the section's glyph placements to the scratch
// buffer: a measure pass sizes each line for alignment, then a place pass
// walks the pens.
func (b *Brush) layoutSection(s *Section) error {
	lines := []lineInfo{{}}
	for ri := range s.Runs {
		run := &s.Runs[ri]
		face, err := b.face(run.Font, run.Scale)
		if err != nil {
			return err
		}
		m := face.Metrics()
		ascent := fromFixed(m.Ascent)
		height := fromFixed(m.Height)
		for pi, piece := range strings.Split(run.Content, "\n") {
			if pi > 0 {
				lines = append(lines, lineInfo{})
			}
			ln := &lines[len(lines)-1]
			ln.ascent = max(ln.ascent, ascent)
			ln.height = max(ln.height, height)
			if piece == "" {
				continue
			}
			ln.width += measure(face, piece)
			ln.segs = append(ln.segs, lineSeg{run: ri, text: piece})
		}
	}

	var totalH float32
	for i := range lines {
		totalH += lines[i].height
	}
	top := s.Y
	switch s.VAlign {
	case VAlignCenter:
		top -= totalH / 2
	case VAlignBottom:
		top -= totalH
	}

	// The clamp box, anchored the same way as the text block.
	bx := s.X
	switch s.HAlign {
	case HAlignCenter:
		bx -= s.W / 2
	case HAlignRight:
		bx -= s.W
	}
	by := s.Y
	switch s.VAlign {
	case VAlignCenter:
		by -= s.H / 2
	case VAlignBottom:
		by -= s.H
	}

	y := top
	for li := range lines {
		ln := &lines[li]
		if s.H > 0 && y >= by+s.H {
			break
		}
		x := s.X
		switch s.HAlign {
		case HAlignCenter:
			x -= ln.width / 2
		case HAlignRight:
			x -= ln.width
		}
		baseline := y + ln.ascent
		for _, seg := range ln.segs {
			run := &s.Runs[seg.run]
			face, err := b.face(run.Font, run.Scale)
			if err != nil {
				return err
			}
			prev := rune(-1)
			for _, r := range seg.text {
				if prev >= 0 {
					x += fromFixed(face.Kern(prev, r))
				}
				adv, ok := face.GlyphAdvance(r)
				if !ok {
					prev = r
					continue
				}
				if s.W <= 0 || x < bx+s.W {
					b.scratch = append(b.scratch, placedGlyph{
						key:   glyphKey{font: run.Font, scale: scaleKey(run.Scale), r: r},
						x:     x,
						y:     baseline,
						color: run.Color,
						layer: run.Layer,
					})
				}
				x += fromFixed(adv)
				prev = r
			}
		}
		y += ln.height
	}
	return nil
}

// ensureGlyph rasterizes key into the texture if it is not cached yet.
func (b *Brush) ensureGlyph(key glyphKey, rasterize func(x, y, w, h int, alpha []byte)) error {
	if _, ok := b.cache[key]; ok {
		return nil
	}
	face, err := b.face(key.font, key.scaleValue())
	if err != nil {
		return err
	}
	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, key.r)
	if !ok || dr.Empty() {
		b.cache[key] = glyphSlot{empty: true}
		return nil
	}
	w, h := dr.Dx(), dr.Dy()
	x, y, ok := b.pack(w, h)
	if !ok {
		return &TooSmallError{W: b.texW * 2, H: b.texH * 2}
	}
	bmp := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.Draw(bmp, bmp.Bounds(), mask, maskp, draw.Src)
	rasterize(x, y, w, h, bmp.Pix)
	b.cache[key] = glyphSlot{
		x: x, y: y, w: w, h: h,
		offX: dr.Min.X, offY: dr.Min.Y,
	}
	return nil
}

// measure returns the advance width of text, kerning included.
func measure(face font.Face, text string) float32 {
	var w fixed.Int26_6
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			w += face.Kern(prev, r)
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			prev = r
			continue
		}
		w += adv
		prev = r
	}
	return fromFixed(w)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
