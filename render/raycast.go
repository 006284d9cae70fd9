package render

import (
	"math"

	"github.com/lixenwraith/walls3d/camera"
	"github.com/lixenwraith/walls3d/geom"
)

// Raycaster draws a frame by intersecting one ray per column with every wall.
// Cost grows with walls times columns, suited to small wall lists only
type Raycaster struct {
	comp  *Compositor
	cam   camera.View
	walls []geom.Wall
	width int
}

var _ Renderer = (*Raycaster)(nil)

// NewRaycaster renders walls as seen from cam into fb
func NewRaycaster(fb *Framebuffer, cam camera.View, walls []geom.Wall, opts Options) (*Raycaster, error) {
	if err := CheckGeometry(fb.Width(), fb.Height()); err != nil {
		return nil, err
	}
	return &Raycaster{
		comp:  NewCompositor(fb, opts),
		cam:   cam,
		walls: walls,
		width: fb.Width(),
	}, nil
}

// SetWalls swaps the wall list between frames
func (r *Raycaster) SetWalls(walls []geom.Wall) {
	r.walls = walls
}

// Compositor exposes dither and hook control
func (r *Raycaster) Compositor() *Compositor {
	return r.comp
}

// RenderScene casts a ray through each column's view plane point, nearest hit wins.
// Columns without a hit are blank
func (r *Raycaster) RenderScene() {
	for x := 0; x < r.width; x++ {
		var h float64
		if d, ok := r.Cast(x); ok {
			h = r.comp.HeightFromDistance(d)
		}
		r.comp.RenderColumn(x, h)
	}
}

// Cast returns the perpendicular distance to the nearest wall seen through column x
func (r *Raycaster) Cast(x int) (float64, bool) {
	percent := -1 + 2*float64(x)/float64(r.width)
	target := r.cam.ViewPlaneMiddle().Add(r.cam.HalfViewPlane().Scale(percent))
	ray := geom.Line{P1: r.cam.Location(), P2: target}

	nearest := math.Inf(1)
	for _, w := range r.walls {
		hit, _, ok := geom.FindRayLineSegIntersection(ray, w.Seg)
		if !ok {
			continue
		}
		if d := r.perpendicularDist(hit, percent); d < nearest {
			nearest = d
		}
	}
	return nearest, !math.IsInf(nearest, 1)
}

// perpendicularDist scales the distance to pt by the ray's slope across the view plane
func (r *Raycaster) perpendicularDist(pt geom.Vec2, percent float64) float64 {
	v := pt.Sub(r.cam.Location())
	ratio := percent * r.cam.ViewPlaneWidth() / 2 / r.cam.ViewPlaneDist()
	return math.Sqrt(v.MagSq() / (1 + ratio*ratio))
}
