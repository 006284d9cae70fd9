// Package sim drives a renderer from user input the way the target device
// would: one camera, one framebuffer, a map that can be swapped between
// frames and an audible cue on region changes
package sim

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/walls3d/audio"
	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/camera"
	"github.com/lixenwraith/walls3d/config"
	"github.com/lixenwraith/walls3d/render"
	"github.com/lixenwraith/walls3d/world"
)

var logger = log.New(io.Discard)

// SetLogger routes package diagnostics to l
func SetLogger(l *log.Logger) {
	logger = l
}

// Action is one discrete input step
type Action uint8

const (
	None Action = iota
	Forward
	Backward
	TurnLeft
	TurnRight
	StrafeLeft
	StrafeRight
	SwitchRenderer
)

var actionNames = [...]string{"none", "forward", "backward", "turn-left", "turn-right", "strafe-left", "strafe-right", "switch-renderer"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", a)
}

// Sim owns everything needed to produce frames for one display
type Sim struct {
	cfg     config.Config
	cam     *camera.Camera
	fb      *render.Framebuffer
	bspR    *render.BspRenderer
	rayR    *render.Raycaster
	raycast bool
	cue     *audio.Cue

	world  *world.Map
	tree   bsp.Tree
	layout bsp.Layout
	region int
	frames uint64
}

// New builds a simulator for cfg showing m. cue may be nil
func New(cfg config.Config, m *world.Map, cue *audio.Cue) (*Sim, error) {
	fb, err := render.NewFramebuffer(cfg.Screen.Width, cfg.Screen.Height)
	if err != nil {
		return nil, err
	}
	loc, dir := cfg.Start()
	cam := camera.New(loc, dir, cfg.FOVRadians(), cfg.Camera.ViewPlaneDist)

	bspR, err := render.NewBspRenderer(fb, cam, nil, cfg.RenderOptions())
	if err != nil {
		return nil, err
	}
	rayR, err := render.NewRaycaster(fb, cam, nil, cfg.RenderOptions())
	if err != nil {
		return nil, err
	}

	s := &Sim{
		cfg:     cfg,
		cam:     cam,
		fb:      fb,
		bspR:    bspR,
		rayR:    rayR,
		raycast: cfg.Render.Renderer == config.RendererRaycast,
		cue:     cue,
		region:  -1,
	}
	if err := s.SetMap(m); err != nil {
		return nil, err
	}
	return s, nil
}

// SetMap swaps the rendered map. A map stored in only one layout is used in
// that layout regardless of the configured storage
func (s *Sim) SetMap(m *world.Map) error {
	layout := s.cfg.Layout()
	if !m.Has(layout) {
		stored := bsp.Preorder
		if layout == bsp.Preorder {
			stored = bsp.Indexed
		}
		logger.Warn("map lacks configured storage", "map", m.Name, "want", layout, "using", stored)
		layout = stored
	}

	tree, err := m.Tree(layout, s.cfg.Limits())
	if err != nil {
		return err
	}

	s.world, s.tree, s.layout = m, tree, layout
	s.bspR.SetTree(tree)
	s.rayR.SetWalls(m.Walls)
	logger.Info("map ready", "map", m.Name, "storage", layout, "nodes", tree.Len())
	return nil
}

// SetHook forwards every composited column to hook
func (s *Sim) SetHook(hook render.ColumnHook) {
	s.bspR.Compositor().SetHook(hook)
	s.rayR.Compositor().SetHook(hook)
}

// Apply performs one input step. Returns false for None
func (s *Sim) Apply(a Action) bool {
	move := s.cfg.Camera.MoveSpeed
	turn := s.cfg.TurnRadians()

	switch a {
	case Forward:
		s.cam.MoveForward(move)
	case Backward:
		s.cam.MoveForward(-move)
	case TurnLeft:
		s.cam.Rotate(-turn)
	case TurnRight:
		s.cam.Rotate(turn)
	case StrafeLeft:
		s.cam.Strafe(-move)
	case StrafeRight:
		s.cam.Strafe(move)
	case SwitchRenderer:
		s.raycast = !s.raycast
		logger.Info("renderer switched", "renderer", s.RendererName())
	default:
		return false
	}
	return true
}

// Frame renders one frame and updates the camera region
func (s *Sim) Frame() {
	if s.raycast {
		s.rayR.RenderScene()
	} else {
		s.bspR.RenderScene()
	}
	s.frames++

	region := s.tree.Find(s.cam.Location())
	if region != s.region {
		logger.Debug("region changed", "from", s.region, "to", region)
		s.region = region
	}
	if s.cue != nil {
		s.cue.Region(region)
	}
}

// Framebuffer returns the frame target
func (s *Sim) Framebuffer() *render.Framebuffer { return s.fb }

// Camera returns the movable camera
func (s *Sim) Camera() *camera.Camera { return s.cam }

// Map returns the map being rendered
func (s *Sim) Map() *world.Map { return s.world }

// Layout returns the storage layout of the current tree
func (s *Sim) Layout() bsp.Layout { return s.layout }

// Region returns the node containing the camera at the last frame
func (s *Sim) Region() int { return s.region }

// Frames counts rendered frames
func (s *Sim) Frames() uint64 { return s.frames }

// Stats describes the last BSP frame
func (s *Sim) Stats() render.Stats { return s.bspR.Stats() }

// RendererName names the active renderer
func (s *Sim) RendererName() string {
	if s.raycast {
		return config.RendererRaycast
	}
	return config.RendererBSP
}

// Status summarizes the simulator for a one-line display
func (s *Sim) Status() string {
	loc := s.cam.Location()
	line := fmt.Sprintf("%s %s/%s region %d (%.0f,%.0f)",
		s.world.Name, s.RendererName(), s.layout, s.region, loc.X, loc.Y)
	if !s.raycast {
		st := s.bspR.Stats()
		line += fmt.Sprintf(" walls %d/%d", st.Drawn, st.Visited)
	}
	return line
}
