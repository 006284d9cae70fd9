package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestIsPointInFrontOf(t *testing.T) {
	// Top wall of a room, interior below it (y grows downward)
	wall := Line{Vec2{10, 10}, Vec2{210, 10}}

	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"Interior", Vec2{110, 110}, true},
		{"Exterior", Vec2{110, 0}, false},
		{"On the line", Vec2{50, 10}, false},
		{"On the extension", Vec2{500, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPointInFrontOf(wall, tt.p); got != tt.want {
				t.Errorf("IsPointInFrontOf(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestIsSegInFrontOf(t *testing.T) {
	splitter := Line{Vec2{0, 0}, Vec2{10, 0}}

	// Touches the splitter at one endpoint, body in front
	touching := Line{Vec2{5, 0}, Vec2{5, 5}}
	if !IsSegInFrontOf(splitter, touching) {
		t.Error("Expected segment with body in front to classify as front")
	}

	behind := Line{Vec2{0, -1}, Vec2{10, -3}}
	if IsSegInFrontOf(splitter, behind) {
		t.Error("Expected segment above the splitter to classify as back")
	}
}

func TestFindRayLineSegIntersection(t *testing.T) {
	seg := Line{Vec2{-5, 10}, Vec2{5, 10}}

	tests := []struct {
		name   string
		ray    Line
		wantOK bool
		wantP  Vec2
		wantU  float64
	}{
		{"Straight hit", Line{Vec2{0, 0}, Vec2{0, 1}}, true, Vec2{0, 10}, 0.5},
		{"Endpoint hit", Line{Vec2{0, 0}, Vec2{-0.5, 1}}, true, Vec2{-5, 10}, 0},
		{"Pointing away", Line{Vec2{0, 0}, Vec2{0, -1}}, false, Vec2{}, 0},
		{"Miss beside segment", Line{Vec2{0, 0}, Vec2{1, 1}}, false, Vec2{}, 0},
		{"Parallel", Line{Vec2{0, 0}, Vec2{1, 0}}, false, Vec2{}, 0},
		{"Origin beyond segment", Line{Vec2{0, 20}, Vec2{0, 30}}, false, Vec2{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, u, ok := FindRayLineSegIntersection(tt.ray, seg)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if !near(p.X, tt.wantP.X) || !near(p.Y, tt.wantP.Y) {
				t.Errorf("Expected point %v, got %v", tt.wantP, p)
			}
			if !near(u, tt.wantU) {
				t.Errorf("Expected u=%v, got %v", tt.wantU, u)
			}
		})
	}
}

func TestFindLineLineSegIntersection(t *testing.T) {
	line := Line{Vec2{0, 0}, Vec2{1, 0}}

	// Crosses the line behind line.P1: infinite line still hits, t negative
	seg := Line{Vec2{-4, -2}, Vec2{-4, 2}}
	p, tt, u, ok := FindLineLineSegIntersection(line, seg)
	if !ok {
		t.Fatal("Expected intersection with infinite line")
	}
	if !near(p.X, -4) || !near(p.Y, 0) {
		t.Errorf("Expected (-4, 0), got %v", p)
	}
	if tt >= 0 {
		t.Errorf("Expected negative t, got %v", tt)
	}
	if !near(u, 0.5) {
		t.Errorf("Expected u=0.5, got %v", u)
	}

	// Entirely on one side
	if _, _, _, ok := FindLineLineSegIntersection(line, Line{Vec2{0, 1}, Vec2{3, 4}}); ok {
		t.Error("Expected no intersection for segment off the line")
	}
}

func TestAngleBetweenNormalized(t *testing.T) {
	a := Vec2{1, 0}
	if got := AngleBetweenNormalized(a, Vec2{0, 1}); !near(got, math.Pi/2) {
		t.Errorf("Expected pi/2, got %v", got)
	}
	if got := AngleBetweenNormalized(a, a); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	// Slightly denormalized inputs must not produce NaN
	if got := AngleBetweenNormalized(Vec2{1.0000001, 0}, a); math.IsNaN(got) {
		t.Error("Expected clamped dot product, got NaN")
	}
}

func TestVecOps(t *testing.T) {
	v := Vec2{3, 4}
	if v.Mag() != 5 {
		t.Errorf("Expected magnitude 5, got %v", v.Mag())
	}
	n := v.Norm()
	if !near(n.Mag(), 1) {
		t.Errorf("Expected unit length, got %v", n.Mag())
	}
	if (Vec2{}).Norm() != (Vec2{}) {
		t.Error("Expected zero vector to normalize to zero")
	}

	// Clockwise on screen: facing down (+y), right is -x
	dir := Vec2{0, 1}
	right := dir.Rotate(math.Pi / 2)
	if !near(right.X, -1) || !near(right.Y, 0) {
		t.Errorf("Expected (-1, 0), got %v", right)
	}
	if dir.Cross(right) <= 0 {
		t.Error("Expected positive cross product toward the right")
	}

	l := Line{Vec2{0, 0}, Vec2{1, 0}}.Translate(Vec2{2, 3})
	if l.P1 != (Vec2{2, 3}) || l.P2 != (Vec2{3, 3}) {
		t.Errorf("Unexpected translation result %v", l)
	}
}
