package geom

import "math"

// parallelEpsilon rejects near-parallel intersections
const parallelEpsilon = 1e-10

// IsPointInFrontOf reports whether p lies strictly in the front half-plane of line.
// Points exactly on the line report false
func IsPointInFrontOf(line Line, p Vec2) bool {
	return line.Dir().Cross(p.Sub(line.P1)) > 0
}

// IsSegInFrontOf reports whether seg lies in front of line, using its midpoint
// so segments touching the line at one endpoint classify by their body
func IsSegInFrontOf(line Line, seg Line) bool {
	mid := seg.P1.Add(seg.P2).Scale(0.5)
	return IsPointInFrontOf(line, mid)
}

// FindRayLineSegIntersection intersects the ray starting at ray.P1 through ray.P2
// with seg. Returns the point and the segment parameter u in [0, 1]
func FindRayLineSegIntersection(ray Line, seg Line) (Vec2, float64, bool) {
	p, t, u, ok := intersect(ray, seg)
	if !ok || t < 0 || u < 0 || u > 1 {
		return Vec2{}, 0, false
	}
	return p, u, true
}

// FindLineLineSegIntersection intersects the infinite line through line with seg.
// t is the parameter along line (sign tells which side of line.P1), u along seg
func FindLineLineSegIntersection(line Line, seg Line) (p Vec2, t, u float64, ok bool) {
	p, t, u, ok = intersect(line, seg)
	if !ok || u < 0 || u > 1 {
		return Vec2{}, 0, 0, false
	}
	return p, t, u, true
}

// intersect solves a.P1 + t*da == b.P1 + u*db
func intersect(a, b Line) (Vec2, float64, float64, bool) {
	da := a.Dir()
	db := b.Dir()

	denom := da.Cross(db)
	if math.Abs(denom) < parallelEpsilon {
		return Vec2{}, 0, 0, false
	}

	diff := b.P1.Sub(a.P1)
	t := diff.Cross(db) / denom
	u := diff.Cross(da) / denom

	return a.P1.Add(da.Scale(t)), t, u, true
}

// AngleBetweenNormalized returns the unsigned angle between two unit vectors
func AngleBetweenNormalized(a, b Vec2) float64 {
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}
