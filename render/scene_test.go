package render

import (
	"math"
	"testing"

	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/bspc"
	"github.com/lixenwraith/walls3d/camera"
	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/serial"
)

const (
	screenW = 128
	screenH = 64
)

// squareRoom is a closed room facing inward plus one free-standing wall
// at distance 50 from the room centre, facing the centre
func squareRoom() []geom.Wall {
	return []geom.Wall{
		geom.NewWall(10, 10, 210, 10),
		geom.NewWall(210, 10, 210, 210),
		geom.NewWall(210, 210, 10, 210),
		geom.NewWall(10, 210, 10, 10),
		geom.NewWall(130, 160, 90, 160),
	}
}

func centreCamera() *camera.Camera {
	return camera.New(geom.Vec2{X: 110, Y: 110}, geom.Vec2{X: 0, Y: 1}, camera.DefaultFOV, 1)
}

func newScene(t *testing.T, tree bsp.Tree, cam camera.View, opts Options) *BspRenderer {
	t.Helper()
	fb, err := NewFramebuffer(screenW, screenH)
	if err != nil {
		t.Fatalf("NewFramebuffer failed: %v", err)
	}
	r, err := NewBspRenderer(fb, cam, tree, opts)
	if err != nil {
		t.Fatalf("NewBspRenderer failed: %v", err)
	}
	return r
}

func trees(t *testing.T, walls []geom.Wall) (*bsp.Arena, *bsp.MediumTree) {
	t.Helper()
	root := bspc.Build(walls)
	arena, err := bsp.LoadArena(serial.RAM(bspc.EncodePreorder(root, serial.Default)), bsp.DefaultLimits)
	if err != nil {
		t.Fatalf("LoadArena failed: %v", err)
	}
	medium, err := bsp.NewMediumTree(serial.ROM(bspc.EncodeIndexed(root, serial.Default)))
	if err != nil {
		t.Fatalf("NewMediumTree failed: %v", err)
	}
	return arena, medium
}

func TestSquareRoomHeights(t *testing.T) {
	arena, _ := trees(t, squareRoom())
	r := newScene(t, arena, centreCamera(), Options{})
	r.RenderScene()

	// Far wall at 100: 30/100*64 = 19.2. Free-standing wall at 50: 38.4
	const far, near = 19, 38
	h := r.Heights()

	if h[0] != far || h[screenW-1] != far {
		t.Errorf("Expected far wall height %d at both edges, got %d and %d", far, h[0], h[screenW-1])
	}
	if h[screenW/2] != near {
		t.Errorf("Expected near wall height %d at centre, got %d", near, h[screenW/2])
	}

	nearCols := 0
	for x, v := range h {
		if v == 0 {
			t.Fatalf("Expected every column filled, column %d empty", x)
		}
		if v != far && v != near {
			t.Errorf("Column %d: unexpected height %d", x, v)
		}
		if v == near {
			nearCols++
		}
	}
	// Half-width 20 at distance 50 against tan(30deg) spans about 69% of the screen
	if nearCols < 80 || nearCols > 96 {
		t.Errorf("Expected near wall across ~89 columns, got %d", nearCols)
	}

	st := r.Stats()
	if !st.EarlyExit {
		t.Error("Expected early exit once every column was filled")
	}
	if st.Filled != screenW {
		t.Errorf("Expected %d filled columns, got %d", screenW, st.Filled)
	}
	if st.Drawn < 2 {
		t.Errorf("Expected at least 2 drawn walls, got %d", st.Drawn)
	}
	if r.Region() < 0 || r.Region() >= arena.Len() {
		t.Errorf("Expected region within tree, got %d", r.Region())
	}
}

func TestClosedRoomHeights(t *testing.T) {
	arena, _ := trees(t, squareRoom()[:4])
	// 120 degrees: the side walls show beyond the far wall's corners at +-45 degrees
	cam := camera.New(geom.Vec2{X: 110, Y: 110}, geom.Vec2{X: 0, Y: 1}, 2*math.Pi/3, 1)
	r := newScene(t, arena, cam, Options{})
	r.RenderScene()
	h := r.Heights()

	// Corners land on round(+-tan(45)/tan(60)*64) + 64
	const left, right = 27, 101
	// Far wall at 100: 19.2. Side walls at the view edges: 100/tan(60) = 57.7, 33.3
	const far, edge = 19, 33

	for x, v := range h {
		if v == 0 {
			t.Fatalf("Expected every column filled, column %d empty", x)
		}
	}
	for x := left + 1; x < right; x++ {
		if h[x] != far {
			t.Errorf("Column %d: expected far wall height %d, got %d", x, far, h[x])
		}
	}
	for x := 0; x < left; x++ {
		if h[x] < h[x+1] {
			t.Errorf("Column %d: left side wall should shrink toward the corner, %d then %d", x, h[x], h[x+1])
		}
	}
	for x := right; x < screenW-1; x++ {
		if h[x+1] < h[x] {
			t.Errorf("Column %d: right side wall should grow toward the edge, %d then %d", x, h[x], h[x+1])
		}
	}
	for _, x := range []int{0, screenW - 1} {
		if h[x] < edge-1 || h[x] > edge {
			t.Errorf("Column %d: expected side wall height about %d, got %d", x, edge, h[x])
		}
	}
	if h[0] <= far || h[screenW-1] <= far {
		t.Errorf("Expected side walls nearer than the far wall, got %d and %d", h[0], h[screenW-1])
	}
}

func TestArenaAndMediumFramesMatch(t *testing.T) {
	arena, medium := trees(t, squareRoom())
	cam := centreCamera()
	a := newScene(t, arena, cam, Options{})
	m := newScene(t, medium, cam, Options{})

	for i := 0; i < 24; i++ {
		a.RenderScene()
		m.RenderScene()
		if !a.Compositor().Framebuffer().Equal(m.Compositor().Framebuffer()) {
			t.Fatalf("Frame %d differs between storages", i)
		}
		if a.Region() != m.Region() {
			t.Fatalf("Frame %d: region %d vs %d", i, a.Region(), m.Region())
		}
		cam.Rotate(math.Pi / 12)
		cam.MoveForward(3)
	}
}

// fullTree ignores the visitor's stop request so every wall is walked
type fullTree struct{ bsp.Tree }

func (f fullTree) Traverse(camera geom.Vec2, visit bsp.Visitor) bool {
	return f.Tree.Traverse(camera, func(w geom.Wall) bool {
		visit(w)
		return true
	})
}

func TestEarlyExitMatchesFullTraversal(t *testing.T) {
	arena, _ := trees(t, squareRoom())
	cam := centreCamera()
	early := newScene(t, arena, cam, Options{})
	full := newScene(t, fullTree{arena}, cam, Options{})

	for i := 0; i < 12; i++ {
		early.RenderScene()
		full.RenderScene()
		if !early.Compositor().Framebuffer().Equal(full.Compositor().Framebuffer()) {
			t.Fatalf("Frame %d differs from the full traversal", i)
		}
		if full.Stats().Visited < early.Stats().Visited {
			t.Errorf("Frame %d: full traversal visited %d walls, early exit %d",
				i, full.Stats().Visited, early.Stats().Visited)
		}
		cam.Rotate(math.Pi / 6)
	}
}

func TestColumnHookOncePerColumn(t *testing.T) {
	arena, _ := trees(t, squareRoom())

	calls := 0
	next := 0
	r := newScene(t, arena, centreCamera(), Options{Hook: func(x int, pages []byte) {
		if x != next {
			t.Errorf("Expected column %d, got %d", next, x)
		}
		if len(pages) != screenH/PageHeight {
			t.Errorf("Expected %d pages, got %d", screenH/PageHeight, len(pages))
		}
		next++
		calls++
	}})

	r.RenderScene()
	if calls != screenW {
		t.Errorf("Expected %d hook calls, got %d", screenW, calls)
	}
}

func TestSceneIdempotent(t *testing.T) {
	arena, _ := trees(t, squareRoom())
	r := newScene(t, arena, centreCamera(), Options{})
	fb := r.Compositor().Framebuffer()

	r.Compositor().SetDitherOffset(7)
	r.RenderScene()
	first := append([]byte(nil), fb.Bytes()...)

	r.Compositor().SetDitherOffset(7)
	r.RenderScene()
	if string(first) != string(fb.Bytes()) {
		t.Error("Expected identical frames with the dither offset held")
	}
}

func TestBackFacingRoomIsBlank(t *testing.T) {
	arena, _ := trees(t, squareRoom())
	// Outside the room looking away from it
	cam := camera.New(geom.Vec2{X: 300, Y: 110}, geom.Vec2{X: 1, Y: 0}, camera.DefaultFOV, 1)
	r := newScene(t, arena, cam, Options{})
	r.RenderScene()

	for x, v := range r.Heights() {
		if v != 0 {
			t.Fatalf("Expected blank frame, column %d height %d", x, v)
		}
	}
	for _, b := range r.Compositor().Framebuffer().Bytes() {
		if b != 0 {
			t.Fatal("Expected cleared framebuffer")
		}
	}
	if r.Stats().EarlyExit {
		t.Error("Expected full traversal when nothing is drawn")
	}
}

func TestNilTree(t *testing.T) {
	r := newScene(t, nil, centreCamera(), Options{})
	r.RenderScene()
	if r.Region() != -1 {
		t.Errorf("Expected region -1 without a tree, got %d", r.Region())
	}

	arena, _ := trees(t, squareRoom())
	r.SetTree(arena)
	if r.Region() < 0 {
		t.Error("Expected region resolved when a tree is set")
	}
}

func TestRaycasterMatchesRoom(t *testing.T) {
	fb, err := NewFramebuffer(screenW, screenH)
	if err != nil {
		t.Fatal(err)
	}
	rc, err := NewRaycaster(fb, centreCamera(), squareRoom(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if d, ok := rc.Cast(screenW / 2); !ok || !near(d, 50) {
		t.Errorf("Expected centre ray to hit at 50, got %v (ok=%v)", d, ok)
	}
	if d, ok := rc.Cast(0); !ok || math.Abs(d-100) > 1e-6 {
		t.Errorf("Expected edge ray to hit far wall at 100, got %v (ok=%v)", d, ok)
	}

	calls := 0
	rc.Compositor().SetHook(func(int, []byte) { calls++ })
	rc.RenderScene()
	if calls != screenW {
		t.Errorf("Expected %d hook calls, got %d", screenW, calls)
	}
	if !fb.Pixel(screenW/2, screenH/2) && !fb.Pixel(screenW/2, screenH/2+1) {
		t.Error("Expected lit pixels near the centre of the near wall")
	}
}

func TestRaycasterNoHit(t *testing.T) {
	fb, _ := NewFramebuffer(screenW, screenH)
	cam := camera.New(geom.Vec2{X: 300, Y: 110}, geom.Vec2{X: 1, Y: 0}, camera.DefaultFOV, 1)
	rc, err := NewRaycaster(fb, cam, squareRoom(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := rc.Cast(10); ok {
		t.Error("Expected no hit looking away from the room")
	}
	rc.RenderScene()
	for _, b := range fb.Bytes() {
		if b != 0 {
			t.Fatal("Expected blank frame")
		}
	}
}
