// Package window shows the simulator in a desktop window through ebiten,
// scaled up by whole pixels, with a one-line status bar
package window

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/lixenwraith/walls3d/display"
	"github.com/lixenwraith/walls3d/render"
	"github.com/lixenwraith/walls3d/sim"
)

const (
	hudHeight   = 14
	hudFontSize = 10
)

// heldKeys repeat every tick while down
var heldKeys = []struct {
	keys   []ebiten.Key
	action sim.Action
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, sim.Forward},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, sim.Backward},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, sim.TurnLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, sim.TurnRight},
	{[]ebiten.Key{ebiten.KeyQ}, sim.StrafeLeft},
	{[]ebiten.Key{ebiten.KeyE}, sim.StrafeRight},
}

// Game adapts a simulator to ebiten.Game
type Game struct {
	sim   *sim.Sim
	pal   display.Palette
	scale int
	face  *text.GoTextFace
	frame *ebiten.Image
	pix   []byte

	// Poll is drained once per tick; the simulator is not safe for concurrent use
	Poll func(s *sim.Sim)
}

var _ ebiten.Game = (*Game)(nil)

// New prepares a window for s at scale window pixels per display pixel
func New(s *sim.Sim, pal display.Palette, scale int) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, errors.Wrap(err, "window: load font")
	}
	return &Game{
		sim:   s,
		pal:   pal,
		scale: max(scale, 1),
		face:  &text.GoTextFace{Source: src, Size: hudFontSize},
	}, nil
}

// Run opens the window and blocks until it is closed
func Run(g *Game, title string, tps int) error {
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

// Update applies input and renders the next frame
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Apply(sim.SwitchRenderer)
	}
	for _, a := range Actions(ebiten.IsKeyPressed) {
		g.sim.Apply(a)
	}
	if g.Poll != nil {
		g.Poll(g.sim)
	}

	g.sim.Frame()
	return nil
}

// Draw blits the framebuffer scaled to the window and the status line below it
func (g *Game) Draw(screen *ebiten.Image) {
	fb := g.sim.Framebuffer()
	if g.frame == nil {
		g.frame = ebiten.NewImage(fb.Width(), fb.Height())
	}
	g.pix = Pixels(fb, g.pal, g.pix)
	g.frame.WritePixels(g.pix)

	screen.Fill(g.pal.RGBA(false))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.frame, op)

	top := &text.DrawOptions{}
	top.GeoM.Translate(2, float64(fb.Height()*g.scale)+1)
	top.ColorScale.ScaleWithColor(g.pal.RGBA(true))
	text.Draw(screen, g.sim.Status(), g.face, top)
}

// Layout keeps a fixed logical size; ebiten scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.sim.Framebuffer()
	return fb.Width() * g.scale, fb.Height()*g.scale + hudHeight
}

// Actions lists the movement actions whose keys are held
func Actions(pressed func(ebiten.Key) bool) []sim.Action {
	var out []sim.Action
	for _, h := range heldKeys {
		for _, k := range h.keys {
			if pressed(k) {
				out = append(out, h.action)
				break
			}
		}
	}
	return out
}

// Pixels converts fb to RGBA bytes, reusing dst when large enough
func Pixels(fb *render.Framebuffer, pal display.Palette, dst []byte) []byte {
	n := fb.Width() * fb.Height() * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	on, off := pal.RGBA(true), pal.RGBA(false)
	i := 0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			c := off
			if fb.Pixel(x, y) {
				c = on
			}
			dst[i], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
	return dst
}
