// Package world supplies the maps the simulators render: built-in rooms
// embedded in the binary, TOML wall lists compiled on load, and prebuilt
// .bsp/.bspi trees read straight from disk.
package world

import (
	"embed"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/bspc"
	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/serial"
)

//go:embed maps/*.toml
var builtins embed.FS

// DefaultMap is the built-in map used when none is configured
const DefaultMap = "arena"

var (
	ErrUnknownMap  = errors.New("world: unknown map")
	ErrNoLayout    = errors.New("world: layout not available for map")
	ErrUnsupported = errors.New("world: unsupported map file")
)

var logger = log.New(io.Discard)

// SetLogger routes package diagnostics to l
func SetLogger(l *log.Logger) {
	logger = l
}

// inspectLimits accept any tree the arena can physically hold
var inspectLimits = bsp.Limits{MaxNodes: bsp.MaxArenaNodes, MaxDepth: bsp.MaxArenaNodes}

// Map is one compiled level. Source maps carry both layouts, binary maps
// only the one they were stored in
type Map struct {
	Name string
	// Walls are the tree's walls after splitting and quantization, in pre-order
	Walls []geom.Wall
	data  [2]serial.Medium
}

// Compile builds a tree from walls and keeps both serialized layouts in
// read-only storage
func Compile(name string, walls []geom.Wall) (*Map, error) {
	root := bspc.Build(walls)
	m := &Map{Name: name}
	m.data[bsp.Preorder] = serial.ROM(bspc.EncodePreorder(root, serial.Default))
	m.data[bsp.Indexed] = serial.ROM(bspc.EncodeIndexed(root, serial.Default))

	t, err := bsp.NewMediumTree(m.data[bsp.Indexed])
	if err != nil {
		return nil, errors.Wrapf(err, "world: compile %s", name)
	}
	m.Walls = bsp.Walls(t)

	logger.Debug("compiled map", "name", name, "walls", len(walls), "nodes", t.Len(), "depth", bspc.Depth(root))
	return m, nil
}

// Builtin compiles one of the embedded maps by name
func Builtin(name string) (*Map, error) {
	data, err := builtins.ReadFile(path.Join("maps", name+".toml"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrUnknownMap, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "world: read builtin")
	}
	walls, err := bspc.ParseWalls(data)
	if err != nil {
		return nil, errors.Wrapf(err, "world: builtin %s", name)
	}
	return Compile(name, walls)
}

// Names lists the built-in maps in alphabetical order
func Names() []string {
	files, _ := fs.Glob(builtins, "maps/*.toml")
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".toml"))
	}
	sort.Strings(names)
	return names
}

// Default returns the built-in default map. The embedded data is part of
// the program, so failure is a build defect and panics
func Default() *Map {
	m, err := Builtin(DefaultMap)
	if err != nil {
		panic(err)
	}
	return m
}

// Load reads a map file: .toml wall lists are compiled, .bsp and .bspi trees
// are used as stored
func Load(file string) (*Map, error) {
	ext := filepath.Ext(file)
	name := strings.TrimSuffix(filepath.Base(file), ext)

	if ext == ".toml" {
		walls, err := bspc.LoadWallFile(file)
		if err != nil {
			return nil, err
		}
		return Compile(name, walls)
	}

	layout, ok := bsp.LayoutFromExt(ext)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "%q", file)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "world: read map")
	}

	m := &Map{Name: name}
	m.data[layout] = serial.RAM(data)
	t, err := bsp.Open(m.data[layout], layout, inspectLimits)
	if err != nil {
		return nil, errors.Wrapf(err, "world: load %s", file)
	}
	m.Walls = bsp.Walls(t)

	logger.Debug("loaded map", "file", file, "layout", layout, "nodes", t.Len())
	return m, nil
}

// Open resolves a map reference: empty selects the default map, a bare name
// selects a built-in, anything with an extension is a file
func Open(ref string) (*Map, error) {
	switch {
	case ref == "":
		return Builtin(DefaultMap)
	case filepath.Ext(ref) == "":
		return Builtin(ref)
	default:
		return Load(ref)
	}
}

// Has reports whether the map carries layout
func (m *Map) Has(layout bsp.Layout) bool {
	return int(layout) < len(m.data) && m.data[layout] != nil
}

// Medium returns the serialized tree in layout
func (m *Map) Medium(layout bsp.Layout) (serial.Medium, error) {
	if !m.Has(layout) {
		return nil, errors.Wrapf(ErrNoLayout, "%s has no %s tree", m.Name, layout)
	}
	return m.data[layout], nil
}

// Tree loads the map with the storage matching layout under lim
func (m *Map) Tree(layout bsp.Layout, lim bsp.Limits) (bsp.Tree, error) {
	med, err := m.Medium(layout)
	if err != nil {
		return nil, err
	}
	return bsp.Open(med, layout, lim)
}
