// Package camera provides the single first-person viewpoint consumed by the
// renderers. Renderers depend only on the read-only View contract.
package camera

import (
	"math"

	"github.com/lixenwraith/walls3d/geom"
)

// Default viewing parameters
const (
	DefaultFOV           = math.Pi / 3 // 60 degrees
	DefaultViewPlaneDist = 1.0
)

// View is the read-only camera state renderers project against
type View interface {
	Location() geom.Vec2
	Dir() geom.Vec2
	ViewPlaneWidth() float64
	ViewPlaneDist() float64
	LeftmostVisibleAngle() float64
	RightmostVisibleAngle() float64
	LeftmostViewPlaneEnd() geom.Vec2
	RightmostViewPlaneEnd() geom.Vec2
	ViewPlaneMiddle() geom.Vec2
	HalfViewPlane() geom.Vec2
	IsBehind(seg geom.Line) bool
}

// Camera is a movable viewpoint with derived field-of-view bookkeeping.
// Derived fields are recomputed on every mutation
type Camera struct {
	location      geom.Vec2
	dir           geom.Vec2
	viewPlaneDist float64
	viewPlaneW    float64
	halfFOV       float64

	// Derived
	viewPlaneMid  geom.Vec2
	halfViewPlane geom.Vec2
	leftEnd       geom.Vec2
	rightEnd      geom.Vec2
}

var _ View = (*Camera)(nil)

// New creates a camera at loc facing dir with the given horizontal field of view
func New(loc, dir geom.Vec2, fov, viewPlaneDist float64) *Camera {
	if fov <= 0 || fov >= math.Pi {
		fov = DefaultFOV
	}
	if viewPlaneDist <= 0 {
		viewPlaneDist = DefaultViewPlaneDist
	}
	d := dir.Norm()
	if d == (geom.Vec2{}) {
		d = geom.Vec2{X: 0, Y: 1}
	}

	c := &Camera{
		location:      loc,
		dir:           d,
		viewPlaneDist: viewPlaneDist,
		halfFOV:       fov / 2,
		viewPlaneW:    2 * viewPlaneDist * math.Tan(fov/2),
	}
	c.update()
	return c
}

func (c *Camera) update() {
	right := c.dir.Perpendicular()
	c.viewPlaneMid = c.location.Add(c.dir.Scale(c.viewPlaneDist))
	c.halfViewPlane = right.Scale(c.viewPlaneW / 2)
	c.leftEnd = c.viewPlaneMid.Sub(c.halfViewPlane)
	c.rightEnd = c.viewPlaneMid.Add(c.halfViewPlane)
}

func (c *Camera) Location() geom.Vec2              { return c.location }
func (c *Camera) Dir() geom.Vec2                   { return c.dir }
func (c *Camera) ViewPlaneWidth() float64          { return c.viewPlaneW }
func (c *Camera) ViewPlaneDist() float64           { return c.viewPlaneDist }
func (c *Camera) LeftmostVisibleAngle() float64    { return -c.halfFOV }
func (c *Camera) RightmostVisibleAngle() float64   { return c.halfFOV }
func (c *Camera) LeftmostViewPlaneEnd() geom.Vec2  { return c.leftEnd }
func (c *Camera) RightmostViewPlaneEnd() geom.Vec2 { return c.rightEnd }
func (c *Camera) ViewPlaneMiddle() geom.Vec2       { return c.viewPlaneMid }
func (c *Camera) HalfViewPlane() geom.Vec2         { return c.halfViewPlane }

// FOV returns the full horizontal field of view in radians
func (c *Camera) FOV() float64 {
	return 2 * c.halfFOV
}

// IsBehind reports whether both endpoints of seg lie at or behind the camera plane
func (c *Camera) IsBehind(seg geom.Line) bool {
	return seg.P1.Sub(c.location).Dot(c.dir) <= 0 && seg.P2.Sub(c.location).Dot(c.dir) <= 0
}

// --- Movement ---

// Rotate turns the camera by rad; positive turns right
func (c *Camera) Rotate(rad float64) {
	c.dir = c.dir.Rotate(rad).Norm()
	c.update()
}

// MoveForward moves along the facing direction; negative moves backward
func (c *Camera) MoveForward(dist float64) {
	c.location = c.location.Add(c.dir.Scale(dist))
	c.update()
}

// Strafe moves sideways; positive moves right
func (c *Camera) Strafe(dist float64) {
	c.location = c.location.Add(c.dir.Perpendicular().Scale(dist))
	c.update()
}

// SetLocation teleports the camera
func (c *Camera) SetLocation(loc geom.Vec2) {
	c.location = loc
	c.update()
}
