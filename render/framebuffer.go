package render

// Framebuffer is a 1-bit page-addressed pixel store. Byte page*Width+x holds
// rows page*8 .. page*8+7 of column x, least significant bit on top
type Framebuffer struct {
	pix    []byte
	width  int
	height int
	pages  int
}

// NewFramebuffer allocates a cleared framebuffer
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if err := CheckGeometry(width, height); err != nil {
		return nil, err
	}
	pages := height / PageHeight
	return &Framebuffer{
		pix:    make([]byte, width*pages),
		width:  width,
		height: height,
		pages:  pages,
	}, nil
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }
func (f *Framebuffer) Pages() int  { return f.pages }

// Bytes exposes the raw page-major buffer
func (f *Framebuffer) Bytes() []byte {
	return f.pix
}

// Clear blanks every pixel
func (f *Framebuffer) Clear() {
	clear(f.pix)
}

// Pixel reports whether (x, y) is lit. Out-of-range coordinates are unlit
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	page := y / PageHeight
	return f.pix[page*f.width+x]&(1<<(y%PageHeight)) != 0
}

// Column appends the pages of column x to dst
func (f *Framebuffer) Column(x int, dst []byte) []byte {
	for page := 0; page < f.pages; page++ {
		dst = append(dst, f.pix[page*f.width+x])
	}
	return dst
}

// Equal reports whether two framebuffers hold identical pixels
func (f *Framebuffer) Equal(o *Framebuffer) bool {
	if f.width != o.width || f.height != o.height {
		return false
	}
	for i := range f.pix {
		if f.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}
