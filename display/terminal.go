package display

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/walls3d/render"
)

// upperHalf draws the upper pixel in the foreground and the lower in the background
const upperHalf = '▀'

// Terminal shows the framebuffer in a tcell screen, two pixel rows per cell,
// with a status line below the panel
type Terminal struct {
	screen tcell.Screen
	fb     *render.Framebuffer
	pal    Palette
	styles [4]tcell.Style
	column []byte
}

// OpenTerminal initializes the controlling terminal
func OpenTerminal(fb *render.Framebuffer, pal Palette) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewTerminal(screen, fb, pal), nil
}

// NewTerminal draws fb onto an initialized screen
func NewTerminal(screen tcell.Screen, fb *render.Framebuffer, pal Palette) *Terminal {
	t := &Terminal{
		screen: screen,
		fb:     fb,
		pal:    pal,
		column: make([]byte, fb.Pages()),
	}
	for i := range t.styles {
		upper, lower := i&1 != 0, i&2 != 0
		t.styles[i] = tcell.StyleDefault.Foreground(pal.Cell(upper)).Background(pal.Cell(lower))
	}
	screen.HideCursor()
	return t
}

// Rows is the panel height in cells
func (t *Terminal) Rows() int {
	return (t.fb.Height() + 1) / 2
}

// PushColumn draws one composited column; it satisfies render.ColumnHook
func (t *Terminal) PushColumn(x int, pages []byte) {
	for row := 0; row < t.Rows(); row++ {
		y := 2 * row
		upper := pageBit(pages, y)
		lower := pageBit(pages, y+1)
		t.screen.SetContent(x, row, upperHalf, nil, t.style(upper, lower))
	}
}

// Draw redraws the whole panel from the framebuffer
func (t *Terminal) Draw() {
	for x := 0; x < t.fb.Width(); x++ {
		t.column = t.fb.Column(x, t.column)
		t.PushColumn(x, t.column)
	}
}

// Status writes text on the line under the panel, padded to the panel width
func (t *Terminal) Status(text string) {
	style := tcell.StyleDefault.Foreground(t.pal.Dim(0.3)).Background(t.pal.Cell(false))
	row := t.Rows()
	x := 0
	for _, r := range text {
		if x >= t.fb.Width() {
			break
		}
		t.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < t.fb.Width(); x++ {
		t.screen.SetContent(x, row, ' ', nil, style)
	}
}

// Show flushes pending cells to the terminal
func (t *Terminal) Show() {
	t.screen.Show()
}

// PollEvent blocks for the next terminal event; nil after Fini
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Fini restores the terminal
func (t *Terminal) Fini() {
	t.screen.Fini()
}

func (t *Terminal) style(upper, lower bool) tcell.Style {
	i := 0
	if upper {
		i |= 1
	}
	if lower {
		i |= 2
	}
	return t.styles[i]
}

// pageBit reads row y of a column; rows past the last page are unlit
func pageBit(pages []byte, y int) bool {
	p := y / render.PageHeight
	if p >= len(pages) {
		return false
	}
	return pages[p]&(1<<(y%render.PageHeight)) != 0
}
