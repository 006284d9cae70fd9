// Package config loads simulator settings from TOML with environment overrides
package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/render"
)

// EnvPrefix namespaces environment overrides, e.g. WALLS3D_SCREEN_WIDTH
const EnvPrefix = "WALLS3D_"

// ErrInvalid reports a setting outside its allowed range
var ErrInvalid = errors.New("config: invalid setting")

// Renderer names
const (
	RendererBSP     = "bsp"
	RendererRaycast = "raycast"
)

// Config is the complete simulator configuration
type Config struct {
	Screen  ScreenConfig  `toml:"screen"`
	Camera  CameraConfig  `toml:"camera"`
	Render  RenderConfig  `toml:"render"`
	Display DisplayConfig `toml:"display"`
	Audio   AudioConfig   `toml:"audio"`
	Map     MapConfig     `toml:"map"`
	Log     LogConfig     `toml:"log"`
}

type ScreenConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Scale  int `toml:"scale"` // window and snapshot pixel size
}

type CameraConfig struct {
	Position      [2]float64 `toml:"position"`
	Direction     [2]float64 `toml:"direction"`
	FOV           float64    `toml:"fov"` // degrees
	ViewPlaneDist float64    `toml:"view_plane_dist"`
	MoveSpeed     float64    `toml:"move_speed"` // units per key press
	TurnSpeed     float64    `toml:"turn_speed"` // degrees per key press
}

type RenderConfig struct {
	Renderer    string  `toml:"renderer"`
	Storage     string  `toml:"storage"`
	HeightScale float64 `toml:"height_scale"`
	DitherStep  int     `toml:"dither_step"`
	MaxNodes    int     `toml:"max_nodes"`
	MaxDepth    int     `toml:"max_depth"`
}

type DisplayConfig struct {
	On  string `toml:"on"`
	Off string `toml:"off"`
	FPS int    `toml:"fps"`
}

type AudioConfig struct {
	Enabled   bool    `toml:"enabled"`
	Frequency float64 `toml:"frequency"`
	Duration  int     `toml:"duration_ms"`
}

type MapConfig struct {
	Path  string `toml:"path"` // empty selects the embedded map
	Watch bool   `toml:"watch"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty discards output in terminal UIs
}

// Default returns the reference setup: a 128x64 display, camera near the top
// of the default arena looking down into it
func Default() Config {
	return Config{
		Screen: ScreenConfig{Width: 128, Height: 64, Scale: 4},
		Camera: CameraConfig{
			Position:      [2]float64{60, 15},
			Direction:     [2]float64{0, 1},
			FOV:           60,
			ViewPlaneDist: 1,
			MoveSpeed:     2,
			TurnSpeed:     5,
		},
		Render: RenderConfig{
			Renderer:    RendererBSP,
			Storage:     "arena",
			HeightScale: render.DefaultHeightScale,
			DitherStep:  render.DefaultDitherStep,
			MaxNodes:    bsp.DefaultLimits.MaxNodes,
			MaxDepth:    bsp.DefaultLimits.MaxDepth,
		},
		Display: DisplayConfig{On: "#e8f4ff", Off: "#000814", FPS: 30},
		Audio:   AudioConfig{Enabled: true, Frequency: 440, Duration: 60},
		Log:     LogConfig{Level: "info"},
	}
}

// Parse decodes data over the defaults and validates the result.
// Environment overrides are not applied
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "config: parse")
	}
	return cfg, cfg.Validate()
}

// Load reads path (optional), applies WALLS3D_* environment overrides, then validates
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "config: read")
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "config: parse %s", path)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Marshal renders cfg as TOML
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// ApplyEnv overrides settings from lookup, keyed by EnvPrefix plus SECTION_KEY
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	overrides := []struct {
		key string
		set func(string) error
	}{
		{"SCREEN_WIDTH", intVar(&c.Screen.Width)},
		{"SCREEN_HEIGHT", intVar(&c.Screen.Height)},
		{"SCREEN_SCALE", intVar(&c.Screen.Scale)},
		{"CAMERA_FOV", floatVar(&c.Camera.FOV)},
		{"RENDER_RENDERER", stringVar(&c.Render.Renderer)},
		{"RENDER_STORAGE", stringVar(&c.Render.Storage)},
		{"RENDER_HEIGHT_SCALE", floatVar(&c.Render.HeightScale)},
		{"RENDER_MAX_NODES", intVar(&c.Render.MaxNodes)},
		{"RENDER_MAX_DEPTH", intVar(&c.Render.MaxDepth)},
		{"DISPLAY_FPS", intVar(&c.Display.FPS)},
		{"AUDIO_ENABLED", boolVar(&c.Audio.Enabled)},
		{"MAP_PATH", stringVar(&c.Map.Path)},
		{"MAP_WATCH", boolVar(&c.Map.Watch)},
		{"LOG_LEVEL", stringVar(&c.Log.Level)},
		{"LOG_FILE", stringVar(&c.Log.File)},
	}

	for _, o := range overrides {
		v, ok := lookup(EnvPrefix + o.key)
		if !ok {
			continue
		}
		if err := o.set(strings.TrimSpace(v)); err != nil {
			return errors.Wrapf(err, "config: %s%s=%q", EnvPrefix, o.key, v)
		}
	}
	return nil
}

func intVar(p *int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err == nil {
			*p = v
		}
		return err
	}
}

func floatVar(p *float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			*p = v
		}
		return err
	}
}

func boolVar(p *bool) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseBool(s)
		if err == nil {
			*p = v
		}
		return err
	}
}

func stringVar(p *string) func(string) error {
	return func(s string) error {
		*p = s
		return nil
	}
}

// Validate checks every setting, reporting the first violation
func (c Config) Validate() error {
	if err := render.CheckGeometry(c.Screen.Width, c.Screen.Height); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if c.Screen.Scale < 1 {
		return errors.Wrapf(ErrInvalid, "screen.scale %d", c.Screen.Scale)
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return errors.Wrapf(ErrInvalid, "camera.fov %v must be in (0, 180)", c.Camera.FOV)
	}
	if c.Camera.ViewPlaneDist <= 0 {
		return errors.Wrapf(ErrInvalid, "camera.view_plane_dist %v", c.Camera.ViewPlaneDist)
	}
	if c.Camera.Direction == [2]float64{} {
		return errors.Wrap(ErrInvalid, "camera.direction is zero")
	}

	switch c.Render.Renderer {
	case RendererBSP, RendererRaycast:
	default:
		return errors.Wrapf(ErrInvalid, "render.renderer %q", c.Render.Renderer)
	}
	if _, err := bsp.ParseLayout(c.Render.Storage); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if c.Render.HeightScale <= 0 {
		return errors.Wrapf(ErrInvalid, "render.height_scale %v", c.Render.HeightScale)
	}
	if c.Render.DitherStep < 1 || c.Render.DitherStep > math.MaxUint8 {
		return errors.Wrapf(ErrInvalid, "render.dither_step %d", c.Render.DitherStep)
	}
	if c.Render.MaxNodes < 1 || c.Render.MaxNodes > bsp.MaxArenaNodes {
		return errors.Wrapf(ErrInvalid, "render.max_nodes %d must be in [1, %d]", c.Render.MaxNodes, bsp.MaxArenaNodes)
	}
	if c.Render.MaxDepth < 1 {
		return errors.Wrapf(ErrInvalid, "render.max_depth %d", c.Render.MaxDepth)
	}

	for name, hex := range map[string]string{"display.on": c.Display.On, "display.off": c.Display.Off} {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrapf(ErrInvalid, "%s %q", name, hex)
		}
	}
	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		return errors.Wrapf(ErrInvalid, "display.fps %d", c.Display.FPS)
	}

	if c.Audio.Frequency <= 0 || c.Audio.Duration < 0 {
		return errors.Wrap(ErrInvalid, "audio frequency and duration")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "log.level %q", c.Log.Level)
	}
	return nil
}

// Limits returns the arena budget
func (c Config) Limits() bsp.Limits {
	return bsp.Limits{MaxNodes: c.Render.MaxNodes, MaxDepth: c.Render.MaxDepth}
}

// Layout returns the serialized layout matching the storage strategy
func (c Config) Layout() bsp.Layout {
	l, _ := bsp.ParseLayout(c.Render.Storage)
	return l
}

// RenderOptions returns compositor settings, hook left unset
func (c Config) RenderOptions() render.Options {
	return render.Options{
		HeightScale: c.Render.HeightScale,
		DitherStep:  uint8(c.Render.DitherStep),
	}
}

// FOVRadians converts the configured field of view
func (c Config) FOVRadians() float64 {
	return c.Camera.FOV * math.Pi / 180
}

// TurnRadians converts the configured turn step
func (c Config) TurnRadians() float64 {
	return c.Camera.TurnSpeed * math.Pi / 180
}

// Start returns the camera spawn location and facing
func (c Config) Start() (loc, dir geom.Vec2) {
	return geom.Vec2{X: c.Camera.Position[0], Y: c.Camera.Position[1]},
		geom.Vec2{X: c.Camera.Direction[0], Y: c.Camera.Direction[1]}
}
