package render

import (
	"math"

	"github.com/lixenwraith/walls3d/camera"
	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/vmath"
)

// Projection is a wall endpoint resolved to screen space
type Projection struct {
	X       int     // screen column
	Dist    float64 // perpendicular distance from the camera plane
	Clipped bool    // resolved on a field-of-view edge
}

// Projector maps world points to screen columns for one camera
type Projector struct {
	cam   camera.View
	width int
}

// NewProjector projects for cam onto a screen width columns wide
func NewProjector(cam camera.View, width int) *Projector {
	return &Projector{cam: cam, width: width}
}

// Angle returns the signed angle from the camera direction to p, negative to the left
func (p *Projector) Angle(pt geom.Vec2) float64 {
	n := pt.Sub(p.cam.Location()).Norm()
	dir := p.cam.Dir()
	a := geom.AngleBetweenNormalized(dir, n)
	if dir.Cross(n) > 0 {
		return a
	}
	return -a
}

// ScreenX maps an in-view angle to a column, clamped to the screen
func (p *Projector) ScreenX(angle float64) int {
	opp := p.cam.ViewPlaneDist() * math.Tan(angle)
	percent := opp / (p.cam.ViewPlaneWidth() / 2)
	half := p.width / 2
	x := int(math.Round(percent*float64(half))) + half
	return vmath.Clamp(x, 0, p.width-1)
}

// PerpendicularDist removes fisheye distortion from the distance to pt
func (p *Projector) PerpendicularDist(pt geom.Vec2, angle float64) float64 {
	return pt.Sub(p.cam.Location()).Mag() * math.Cos(angle)
}

// Endpoint resolves seg.P1 (left) or seg.P2 (right). An endpoint outside the
// field of view is moved to where the matching view edge crosses seg; if the
// edge misses seg the endpoint is off screen and ok is false
func (p *Projector) Endpoint(left bool, seg geom.Line) (Projection, bool) {
	pt := seg.P2
	if left {
		pt = seg.P1
	}

	angle := p.Angle(pt)
	if angle >= p.cam.LeftmostVisibleAngle() && angle <= p.cam.RightmostVisibleAngle() {
		return Projection{
			X:    p.ScreenX(angle),
			Dist: p.PerpendicularDist(pt, angle),
		}, true
	}

	var (
		ray geom.Line
		x   int
	)
	if left {
		angle = p.cam.LeftmostVisibleAngle()
		ray = geom.Line{P1: p.cam.Location(), P2: p.cam.LeftmostViewPlaneEnd()}
	} else {
		angle = p.cam.RightmostVisibleAngle()
		ray = geom.Line{P1: p.cam.Location(), P2: p.cam.RightmostViewPlaneEnd()}
		x = p.width - 1
	}

	hit, _, ok := geom.FindRayLineSegIntersection(ray, seg)
	if !ok {
		return Projection{}, false
	}
	return Projection{
		X:       x,
		Dist:    p.PerpendicularDist(hit, angle),
		Clipped: true,
	}, true
}
