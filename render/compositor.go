package render

import "github.com/lixenwraith/walls3d/vmath"

// DefaultHeightScale is K in height = K / distance * screenHeight
const DefaultHeightScale = 30.0

// DefaultDitherStep advances the dither offset after every column. Being odd
// and coprime with 8 it walks through every rotation
const DefaultDitherStep = 5

// ditherPatterns are ordered from sparse to solid, indexed by height / screenHeight
var ditherPatterns = [PageHeight]uint8{0x80, 0x88, 0x92, 0xAA, 0xD5, 0xDB, 0xFB, 0xFF}

// Options tune compositing and are shared by every renderer
type Options struct {
	HeightScale float64 // zero selects DefaultHeightScale
	DitherStep  uint8   // zero selects DefaultDitherStep
	Hook        ColumnHook
}

func (o Options) normalized() Options {
	if o.HeightScale <= 0 {
		o.HeightScale = DefaultHeightScale
	}
	if o.DitherStep == 0 {
		o.DitherStep = DefaultDitherStep
	}
	return o
}

// Compositor turns column heights into dithered vertical spans
type Compositor struct {
	fb           *Framebuffer
	heightScale  float64
	ditherStep   uint8
	ditherOffset uint8
	hook         ColumnHook
	column       []byte
}

// NewCompositor writes into fb
func NewCompositor(fb *Framebuffer, opts Options) *Compositor {
	opts = opts.normalized()
	return &Compositor{
		fb:          fb,
		heightScale: opts.HeightScale,
		ditherStep:  opts.DitherStep,
		hook:        opts.Hook,
		column:      make([]byte, fb.Pages()),
	}
}

// Framebuffer returns the compositing target
func (c *Compositor) Framebuffer() *Framebuffer {
	return c.fb
}

// SetHook replaces the column notification, nil disables it
func (c *Compositor) SetHook(h ColumnHook) {
	c.hook = h
}

// DitherOffset returns the rotation applied to the next column
func (c *Compositor) DitherOffset() uint8 {
	return c.ditherOffset
}

// SetDitherOffset pins the rotation of the next column
func (c *Compositor) SetDitherOffset(off uint8) {
	c.ditherOffset = off
}

// ResetDither restarts the rotation sequence
func (c *Compositor) ResetDither() {
	c.ditherOffset = 0
}

// HeightFromDistance projects a perpendicular distance to an unclipped span height
func (c *Compositor) HeightFromDistance(dist float64) float64 {
	return c.heightScale / dist * float64(c.fb.Height())
}

// ClippedHeight limits h to the screen and truncates it to whole pixels.
// Negative or NaN heights are blank
func (c *Compositor) ClippedHeight(h float64) uint8 {
	if !(h > 0) {
		return 0
	}
	return uint8(vmath.Clamp(h, 0, float64(c.fb.Height())))
}

// RenderColumn draws a vertically centred span of height h at column x,
// masked by the dither pattern for its height. A zero height blanks the column
func (c *Compositor) RenderColumn(x int, h float64) {
	screenH := float64(c.fb.Height())
	if !(h > 0) {
		h = 0
	}
	h = vmath.Clamp(h, 0, screenH)

	// Both edges truncate toward zero
	top := float64(c.fb.Height()/2) - h/2
	y1 := int(top)
	y2 := int(top + h)

	idx := vmath.Clamp(int(PageHeight*h/screenH), 0, len(ditherPatterns)-1)
	p := uint16(ditherPatterns[idx])
	mask := uint8((p<<8 | p) >> (c.ditherOffset % PageHeight))
	c.ditherOffset += c.ditherStep

	w := c.fb.Width()
	for page := range c.column {
		b := spanBits(y1-page*PageHeight, y2-page*PageHeight) & mask
		c.fb.pix[page*w+x] = b
		c.column[page] = b
	}

	if c.hook != nil {
		c.hook(x, c.column)
	}
}

// spanBits sets bits [lo, hi) of one page, both bounds relative to the page top
func spanBits(lo, hi int) uint8 {
	lo = max(lo, 0)
	hi = min(hi, PageHeight)
	if lo >= hi {
		return 0
	}
	return uint8((1<<hi)-1) &^ uint8((1<<lo)-1)
}
