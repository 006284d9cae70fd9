package render

import (
	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/camera"
	"github.com/lixenwraith/walls3d/geom"
)

// Stats describes the last rendered frame
type Stats struct {
	Visited   int  // walls handed over by the traversal
	Drawn     int  // walls that reached the height buffer
	Filled    int  // columns with a non-zero height
	EarlyExit bool // traversal stopped once every column was filled
}

// BspRenderer draws a frame by walking a BSP tree front to back
type BspRenderer struct {
	comp    *Compositor
	proj    *Projector
	cam     camera.View
	tree    bsp.Tree
	heights []uint8
	region  int
	stats   Stats
}

var _ Renderer = (*BspRenderer)(nil)

// NewBspRenderer renders tree as seen from cam into fb. tree may be nil and set later
func NewBspRenderer(fb *Framebuffer, cam camera.View, tree bsp.Tree, opts Options) (*BspRenderer, error) {
	if err := CheckGeometry(fb.Width(), fb.Height()); err != nil {
		return nil, err
	}
	r := &BspRenderer{
		comp:    NewCompositor(fb, opts),
		proj:    NewProjector(cam, fb.Width()),
		cam:     cam,
		heights: make([]uint8, fb.Width()),
		region:  -1,
	}
	r.SetTree(tree)
	return r, nil
}

// SetTree swaps the rendered tree between frames
func (r *BspRenderer) SetTree(tree bsp.Tree) {
	r.tree = tree
	r.region = -1
	if tree != nil {
		r.region = tree.Find(r.cam.Location())
		logger.Debug("tree set", "nodes", tree.Len(), "region", r.region)
	}
}

// Compositor exposes dither and hook control
func (r *BspRenderer) Compositor() *Compositor {
	return r.comp
}

// Heights returns the height buffer of the last frame. Read only
func (r *BspRenderer) Heights() []uint8 {
	return r.heights
}

// Region returns the tree node containing the camera after the last frame, -1 without a tree
func (r *BspRenderer) Region() int {
	return r.region
}

// Stats returns counters for the last frame
func (r *BspRenderer) Stats() Stats {
	return r.stats
}

// RenderScene fills the height buffer nearest wall first, then composites
// every column exactly once
func (r *BspRenderer) RenderScene() {
	clear(r.heights)
	r.stats = Stats{}

	if r.tree != nil {
		complete := r.tree.Traverse(r.cam.Location(), r.renderWall)
		r.stats.EarlyExit = !complete
	}

	for x, h := range r.heights {
		r.comp.RenderColumn(x, float64(h))
	}

	if r.tree != nil {
		r.region = r.tree.Find(r.cam.Location())
	}
}

// renderWall is the traversal visitor. Returns false once no column is left to fill
func (r *BspRenderer) renderWall(w geom.Wall) bool {
	r.stats.Visited++
	if r.cam.IsBehind(w.Seg) {
		return true
	}

	p1, ok1 := r.proj.Endpoint(true, w.Seg)
	p2, ok2 := r.proj.Endpoint(false, w.Seg)
	if !ok1 || !ok2 || p2.X < p1.X {
		return true
	}
	r.stats.Drawn++

	h := r.comp.HeightFromDistance(p1.Dist)
	h2 := r.comp.HeightFromDistance(p2.Dist)
	var step float64
	if p2.X > p1.X {
		step = (h2 - h) / float64(p2.X-p1.X)
	}

	for x := p1.X; x <= p2.X; x++ {
		if r.heights[x] == 0 {
			r.heights[x] = r.comp.ClippedHeight(h)
			if r.heights[x] != 0 {
				r.stats.Filled++
			}
		}
		h += step
	}

	return r.stats.Filled < len(r.heights)
}
