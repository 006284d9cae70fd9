package render

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// PageHeight is the number of pixel rows packed into one framebuffer byte
const PageHeight = 8

// MaxScreenHeight keeps every column height representable in a uint8
const MaxScreenHeight = 255

// ErrScreenGeometry reports a screen size the page layout cannot address
var ErrScreenGeometry = errors.New("render: invalid screen geometry")

// ColumnHook is notified after each column is composited. pages holds the
// column's bytes top page first and is only valid during the call
type ColumnHook func(x int, pages []byte)

// Renderer produces one fully composited frame per call
type Renderer interface {
	RenderScene()
}

var logger = log.New(io.Discard)

// SetLogger routes package diagnostics to l
func SetLogger(l *log.Logger) {
	logger = l
}

// CheckGeometry validates a screen size against the page layout
func CheckGeometry(width, height int) error {
	if width <= 0 {
		return errors.Wrapf(ErrScreenGeometry, "width %d", width)
	}
	if height <= 0 || height%PageHeight != 0 || height > MaxScreenHeight {
		return errors.Wrapf(ErrScreenGeometry, "height %d must be a positive multiple of %d up to %d",
			height, PageHeight, MaxScreenHeight)
	}
	return nil
}
