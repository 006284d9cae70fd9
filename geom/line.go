package geom

// Line is a directional segment from P1 to P2.
// Its front half-plane is the side a viewer sees P1 on the left and P2 on the right
type Line struct {
	P1, P2 Vec2
}

// Translate offsets both endpoints by v
func (l Line) Translate(v Vec2) Line {
	return Line{l.P1.Add(v), l.P2.Add(v)}
}

// Dir returns P2 - P1
func (l Line) Dir() Vec2 {
	return l.P2.Sub(l.P1)
}

// Mag returns the segment length
func (l Line) Mag() float64 {
	return l.Dir().Mag()
}

// Wall is a renderable plan-view segment
type Wall struct {
	Seg Line
}

// NewWall builds a wall from raw coordinates
func NewWall(x1, y1, x2, y2 float64) Wall {
	return Wall{Seg: Line{P1: Vec2{x1, y1}, P2: Vec2{x2, y2}}}
}
