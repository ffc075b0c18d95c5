package trellis

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Host drives a Gui and its QuadRenderer as an ebiten.Game: input polling,
// command draining, layout, and rendering, in that order. Use Run for the
// standard window setup or pass the Host to ebiten.RunGame yourself.
type Host struct {
	gui      *Gui
	renderer *QuadRenderer
	update   func() error
	script   *PointerScript
	width    int
	height   int
	showFPS  bool
}

// NewHost pairs a Gui with the renderer that draws it.
func NewHost(gui *Gui, renderer *QuadRenderer) *Host {
	return &Host{gui: gui, renderer: renderer}
}

// Gui returns the hosted Gui.
func (h *Host) Gui() *Gui { return h.gui }

// Renderer returns the hosted renderer.
func (h *Host) Renderer() *QuadRenderer { return h.renderer }

// SetUpdateFunc registers a callback run every frame after input dispatch
// and before queued commands drain. Returning an error stops the game loop.
func (h *Host) SetUpdateFunc(fn func() error) {
	h.update = fn
}

// SetScript replaces live mouse input with a pointer script. Polling
// resumes once the script finishes.
func (h *Host) SetScript(s *PointerScript) {
	h.script = s
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.script != nil && !h.script.Done() {
		h.script.Step(h.gui)
	} else {
		x, y := ebiten.CursorPosition()
		h.gui.HandlePointerMotion(float32(x), float32(y))
		h.gui.HandlePointerButton(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	}

	if h.update != nil {
		if err := h.update(); err != nil {
			return err
		}
	}

	h.gui.Update()
	h.gui.Layout()
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(h.gui.theme.Background))
	h.gui.Render(h.renderer)
	h.renderer.Flush(screen)

	if h.showFPS {
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout implements ebiten.Game. The logical size tracks the window, and
// size changes propagate to the Gui and renderer.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width = outsideWidth
		h.height = outsideHeight
		h.gui.SetScreenSize(float32(outsideWidth), float32(outsideHeight))
		h.renderer.SetScreenSize(float32(outsideWidth), float32(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures the window for Run.
type RunConfig struct {
	Title   string
	Width   int // window width in pixels; 800 if zero
	Height  int // window height in pixels; 600 if zero
	ShowFPS bool
	Debug   bool
}

// Run opens a window and drives the host until the window closes or the
// update callback returns an error.
func Run(h *Host, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Debug {
		SetDebug(true)
	}
	h.showFPS = cfg.ShowFPS

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(h)
}

// toRGBA converts a straight-alpha float color to 8-bit RGBA.
func toRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
