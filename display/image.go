package display

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/walls3d/render"
)

// Image renders fb at scale pixels per framebuffer pixel
func Image(fb *render.Framebuffer, pal Palette, scale int) *image.Paletted {
	scale = max(scale, 1)
	colors := pal.Color()

	src := image.NewPaletted(image.Rect(0, 0, fb.Width(), fb.Height()), colors)
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.Pixel(x, y) {
				src.SetColorIndex(x, y, 1)
			}
		}
	}
	if scale == 1 {
		return src
	}

	dst := image.NewPaletted(image.Rect(0, 0, fb.Width()*scale, fb.Height()*scale), colors)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes img to w
func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "display: encode png")
}

// SavePNG writes img to a new file at path
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "display: create snapshot")
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "display: close snapshot")
}
