package trellis

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/trellis/glyph"
)

// TextureID names a texture registered with a QuadRenderer. The zero id is
// the built-in 1×1 white pixel, which makes a quad a solid color fill.
type TextureID int

// RenderQuad describes one quad to queue. A zero UV rect means the full
// texture. Scroll opts the quad into the renderer's scroll offset; GUI
// quads leave it false so they stay glued to the screen.
type RenderQuad struct {
	Texture TextureID
	Color   Color
	Rect    Rect
	UV      Rect
	FlipX   bool
	FlipY   bool
	Scroll  bool
}

// glyphLayer hands out depth keys for text. Consecutive text queues share
// one layer; queueing a quad finishes the run so the next text starts a
// new layer.
type glyphLayer struct {
	layer   int
	combine bool
}

func (l *glyphLayer) next() int {
	if !l.combine {
		l.layer++
		l.combine = true
	}
	return l.layer
}

func (l *glyphLayer) finish() {
	l.combine = false
}

func (l *glyphLayer) reset() {
	l.layer = 0
	l.combine = true
}

type rangeKind uint8

const (
	rangeInstances rangeKind = iota
	rangeText
)

// instanceRange is one draw call's worth of the frame: either a contiguous
// run of quad instances sharing a texture, or one glyph layer. The ordered
// range list is the paint-order contract.
type instanceRange struct {
	kind       rangeKind
	texture    TextureID
	start, end int
	layer      int
}

// quadInstance is the per-frame instance record fed to the vertex builder.
type quadInstance struct {
	rect  Rect
	uv    Rect
	color Color
}

// frameStats counts renderer work between flushes, for the debug log.
type frameStats struct {
	queued       int
	culled       int
	ranges       int
	drawCalls    int
	atlasResizes int
}

// QuadRenderer accumulates quads and text into ordered instance ranges and
// flushes them as one draw call per range. Frame state (instances, ranges,
// layer counter) resets on Flush; the glyph atlas and raster cache persist
// across frames. Not safe for concurrent use.
type QuadRenderer struct {
	pixelPerfect bool

	textures []*ebiten.Image

	brush *glyph.Brush
	atlas *ebiten.Image

	instances []quadInstance
	ranges    []instanceRange

	layers         glyphLayer
	glyphInstances [][]quadInstance
	glyphScratch   []glyph.Quad

	screenW, screenH float32
	scrollX, scrollY float32
	scale            float32

	verts []ebiten.Vertex
	inds  []uint32

	stats     frameStats
	lastStats frameStats
}

var whiteImage *ebiten.Image

// whitePixel returns the shared 1×1 opaque white image.
func whitePixel() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(1, 1)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

// NewQuadRenderer creates a renderer that draws text through brush. A nil
// brush loads the default font. Pixel-perfect mode snaps quad positions
// and the scroll offset to whole pixels.
func NewQuadRenderer(brush *glyph.Brush, pixelPerfect bool) *QuadRenderer {
	if brush == nil {
		brush = glyph.DefaultBrush()
	}
	texW, texH := brush.TextureDimensions()
	r := &QuadRenderer{
		pixelPerfect: pixelPerfect,
		textures:     []*ebiten.Image{whitePixel()},
		brush:        brush,
		atlas:        ebiten.NewImage(texW, texH),
		screenW:      1,
		screenH:      1,
		scale:        1,
	}
	r.layers.reset()
	return r
}

// Brush returns the glyph engine the renderer draws text with.
func (r *QuadRenderer) Brush() *glyph.Brush {
	return r.brush
}

// RegisterTexture adds an image to the texture table and returns its id.
func (r *QuadRenderer) RegisterTexture(img *ebiten.Image) TextureID {
	r.textures = append(r.textures, img)
	return TextureID(len(r.textures) - 1)
}

// SetScreenSize sets the cull viewport, in scaled pixels.
func (r *QuadRenderer) SetScreenSize(w, h float32) {
	r.screenW = w
	r.screenH = h
}

// ScrollOffset returns the current scroll offset.
func (r *QuadRenderer) ScrollOffset() (x, y float32) {
	return r.scrollX, r.scrollY
}

// SetScrollOffset sets the offset subtracted from scrolling quads.
func (r *QuadRenderer) SetScrollOffset(x, y float32) {
	if r.pixelPerfect {
		x = round32(x)
		y = round32(y)
	}
	r.scrollX = x
	r.scrollY = y
}

// Scale returns the uniform scale applied to queued quads.
func (r *QuadRenderer) Scale() float32 {
	return r.scale
}

// SetScale sets the uniform scale applied to queued quads.
func (r *QuadRenderer) SetScale(scale float32) {
	r.scale = scale
}

// Queue adds one quad to the frame in draw order. The quad is scaled,
// snapped in pixel-perfect mode (position rounded, size floored so a quad
// never overdraws past a rounded edge), scrolled, and culled against
// [0, screen). A quad extends the tail range iff that range holds
// instances of the same texture; otherwise a new range starts.
func (r *QuadRenderer) Queue(q RenderQuad) {
	if q.Texture < 0 || int(q.Texture) >= len(r.textures) {
		panic(fmt.Sprintf("trellis: Queue: unknown TextureID %d", q.Texture))
	}
	r.stats.queued++

	rect := q.Rect
	rect.X *= r.scale
	rect.Y *= r.scale
	rect.W *= r.scale
	rect.H *= r.scale
	if r.pixelPerfect {
		rect.X = round32(rect.X)
		rect.Y = round32(rect.Y)
		rect.W = floor32(rect.W)
		rect.H = floor32(rect.H)
	}
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	if q.Scroll {
		rect.X -= r.scrollX
		rect.Y -= r.scrollY
	}
	if rect.X+rect.W < 0 || rect.Y+rect.H < 0 || rect.X >= r.screenW || rect.Y >= r.screenH {
		r.stats.culled++
		return
	}

	uv := q.UV
	if uv.W == 0 && uv.H == 0 {
		uv = Rect{W: 1, H: 1}
	}
	if q.FlipX {
		uv.X += uv.W
		uv.W = -uv.W
	}
	if q.FlipY {
		uv.Y += uv.H
		uv.H = -uv.H
	}

	r.layers.finish()
	r.instances = append(r.instances, quadInstance{rect: rect, uv: uv, color: q.Color})
	end := len(r.instances)
	if n := len(r.ranges); n > 0 {
		tail := &r.ranges[n-1]
		if tail.kind == rangeInstances && tail.texture == q.Texture {
			tail.end = end
			return
		}
	}
	r.ranges = append(r.ranges, instanceRange{
		kind:    rangeInstances,
		texture: q.Texture,
		start:   end - 1,
		end:     end,
	})
}

// QueueColor queues a solid scrolling rectangle.
func (r *QuadRenderer) QueueColor(rect Rect, c Color) {
	r.Queue(RenderQuad{Color: c, Rect: rect, Scroll: true})
}

// QueueTexture queues a scrolling rectangle textured with the full image.
func (r *QuadRenderer) QueueTexture(rect Rect, tex TextureID) {
	r.Queue(RenderQuad{Texture: tex, Color: ColorWhite, Rect: rect, Scroll: true})
}

// QueueRect implements Renderer. GUI quads do not scroll.
func (r *QuadRenderer) QueueRect(pos Point, size Size, c Color) {
	r.Queue(RenderQuad{
		Color: c,
		Rect:  Rect{X: pos.X, Y: pos.Y, W: size.W, H: size.H},
	})
}

// QueueText implements Renderer: the section's runs are tagged with the
// current glyph layer and handed to the glyph engine. A Text range opens
// unless the tail range is already text.
func (r *QuadRenderer) QueueText(section glyph.Section) {
	layer := r.layers.next()
	for i := range section.Runs {
		section.Runs[i].Layer = layer
	}
	r.brush.Queue(section)
	if n := len(r.ranges); n == 0 || r.ranges[n-1].kind != rangeText {
		r.ranges = append(r.ranges, instanceRange{kind: rangeText, layer: layer})
	}
}

// PtToPx implements Renderer.
func (r *QuadRenderer) PtToPx(font glyph.FontID, pt float32) float32 {
	return r.brush.PtToPx(font, pt)
}

// Flush draws the frame into dst: pending text is processed (growing the
// atlas as needed), then the range list is walked exactly once, one draw
// call per range. Instances, ranges, and the layer counter reset; the
// atlas and glyph cache persist.
func (r *QuadRenderer) Flush(dst *ebiten.Image) {
	r.processQueuedText()

	r.stats.ranges = len(r.ranges)
	for i := range r.ranges {
		rg := &r.ranges[i]
		switch rg.kind {
		case rangeInstances:
			r.drawQuads(dst, r.textures[rg.texture], r.instances[rg.start:rg.end])
		case rangeText:
			if rg.layer < len(r.glyphInstances) {
				r.drawQuads(dst, r.atlas, r.glyphInstances[rg.layer])
			}
		}
	}

	debugLogf("quads: %d | culled: %d | ranges: %d | draw calls: %d | atlas resizes: %d",
		r.stats.queued, r.stats.culled, r.stats.ranges, r.stats.drawCalls, r.stats.atlasResizes)

	r.instances = r.instances[:0]
	r.ranges = r.ranges[:0]
	r.layers.reset()
	r.lastStats = r.stats
	r.stats = frameStats{}
}

// processQueuedText runs the glyph engine until the atlas is big enough,
// growing it on demand. One resize may still be too small, so the retry
// loops. A Draw action rebuilds the per-layer glyph instances; a Redraw
// keeps the previous frame's.
func (r *QuadRenderer) processQueuedText() {
	scratch := r.glyphScratch
	for {
		scratch = scratch[:0]
		action, err := r.brush.ProcessQueued(r.uploadGlyph, func(q glyph.Quad) {
			scratch = append(scratch, q)
		})
		if err == nil {
			if action == glyph.ActionDraw {
				r.rebuildGlyphInstances(scratch)
			}
			break
		}
		var tooSmall *glyph.TooSmallError
		if errors.As(err, &tooSmall) {
			r.resizeAtlas(tooSmall.W, tooSmall.H)
			continue
		}
		panic("trellis: " + err.Error())
	}
	r.glyphScratch = scratch[:0]
}

func (r *QuadRenderer) rebuildGlyphInstances(quads []glyph.Quad) {
	count := r.layers.layer + 1
	for len(r.glyphInstances) < count {
		r.glyphInstances = append(r.glyphInstances, nil)
	}
	r.glyphInstances = r.glyphInstances[:count]
	for i := range r.glyphInstances {
		r.glyphInstances[i] = r.glyphInstances[i][:0]
	}
	for _, q := range quads {
		r.glyphInstances[q.Layer] = append(r.glyphInstances[q.Layer], quadInstance{
			rect:  Rect{X: q.X, Y: q.Y, W: q.W, H: q.H},
			uv:    Rect{X: q.U, Y: q.V, W: q.UW, H: q.VH},
			color: Color{R: q.Color[0], G: q.Color[1], B: q.Color[2], A: q.Color[3]},
		})
	}
}

// uploadGlyph copies one rasterized glyph into the atlas at (x, y). Alpha
// coverage becomes premultiplied white so glyph quads tint through vertex
// color alone.
func (r *QuadRenderer) uploadGlyph(x, y, w, h int, alpha []byte) {
	pix := make([]byte, len(alpha)*4)
	for i, a := range alpha {
		pix[i*4+0] = a
		pix[i*4+1] = a
		pix[i*4+2] = a
		pix[i*4+3] = a
	}
	tmp := ebiten.NewImage(w, h)
	tmp.WritePixels(pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.Blend = ebiten.BlendCopy
	r.atlas.DrawImage(tmp, op)
	tmp.Deallocate()
}

func (r *QuadRenderer) resizeAtlas(w, h int) {
	debugLogf("resizing glyph atlas to %dx%d", w, h)
	r.stats.atlasResizes++
	r.atlas.Deallocate()
	r.atlas = ebiten.NewImage(w, h)
	r.brush.ResizeTexture(w, h)
}

// drawQuads submits one run of instances sampling src as a single
// DrawTriangles32 call.
func (r *QuadRenderer) drawQuads(dst, src *ebiten.Image, instances []quadInstance) {
	if len(instances) == 0 {
		return
	}
	bounds := src.Bounds()
	ox := float32(bounds.Min.X)
	oy := float32(bounds.Min.Y)
	tw := float32(bounds.Dx())
	th := float32(bounds.Dy())

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for i := range instances {
		q := &instances[i]
		base := uint32(len(r.verts))

		ca := q.color.A
		cr := q.color.R * ca
		cg := q.color.G * ca
		cb := q.color.B * ca

		// TL, TR, BL, BR
		dx := [4]float32{q.rect.X, q.rect.X + q.rect.W, q.rect.X, q.rect.X + q.rect.W}
		dy := [4]float32{q.rect.Y, q.rect.Y, q.rect.Y + q.rect.H, q.rect.Y + q.rect.H}
		su := [4]float32{q.uv.X, q.uv.X + q.uv.W, q.uv.X, q.uv.X + q.uv.W}
		sv := [4]float32{q.uv.Y, q.uv.Y, q.uv.Y + q.uv.H, q.uv.Y + q.uv.H}
		for c := 0; c < 4; c++ {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:   dx[c],
				DstY:   dy[c],
				SrcX:   ox + su[c]*tw,
				SrcY:   oy + sv[c]*th,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
		r.inds = append(r.inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles32(r.verts, r.inds, src, &op)
	r.stats.drawCalls++
}

func round32(v float32) float32 {
	return float32(math.Round(float64(v)))
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
