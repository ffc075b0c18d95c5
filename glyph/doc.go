// Package glyph rasterizes and caches text for quad-based renderers.
//
// A [Brush] owns a set of fonts, a glyph cache backed by one alpha
// texture, and a queue of text [Section]s for the current frame. Queue
// sections with [Brush.Queue], then call [Brush.ProcessQueued] once per
// frame: the brush lays the sections out, rasterizes glyphs missing from
// the texture through the rasterize callback, and either emits freshly
// positioned quads ([ActionDraw]) or reports that the previous frame's
// quads are still valid ([ActionRedraw]), so an unchanged screen costs no
// layout upload.
//
// When the texture cannot hold the frame's glyphs, ProcessQueued returns a
// [TooSmallError] carrying suggested dimensions. Grow the backing texture,
// call [Brush.ResizeTexture], and retry: queued sections are kept until a
// call succeeds, and the resize invalidates the cache so every glyph is
// re-rasterized into the new texture.
//
// The brush does not touch the GPU. Callers own the texture and provide
// the upload in the rasterize callback, which receives tightly packed
// row-major alpha bytes for one glyph at a time.
package glyph
