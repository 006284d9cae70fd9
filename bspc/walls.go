package bspc

import (
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/serial"
)

// ErrInvalidWall reports a wall the codec cannot represent
var ErrInvalidWall = errors.New("bspc: invalid wall")

// WallFile is the TOML source format:
//
//	[[wall]]
//	p1 = [10.0, 10.0]
//	p2 = [210.0, 10.0]
type WallFile struct {
	Walls []WallEntry `toml:"wall"`
}

// WallEntry is one directional wall, front side to the right of p1 -> p2
type WallEntry struct {
	P1 [2]float64 `toml:"p1"`
	P2 [2]float64 `toml:"p2"`
}

// ParseWalls decodes and validates a TOML wall list
func ParseWalls(data []byte) ([]geom.Wall, error) {
	var f WallFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "bspc: parse walls")
	}

	walls := make([]geom.Wall, 0, len(f.Walls))
	for i, e := range f.Walls {
		w := geom.NewWall(e.P1[0], e.P1[1], e.P2[0], e.P2[1])
		if err := validate(w); err != nil {
			return nil, errors.Wrapf(err, "wall %d", i)
		}
		walls = append(walls, w)
	}
	return walls, nil
}

// LoadWallFile reads and parses a TOML wall list from disk
func LoadWallFile(path string) ([]geom.Wall, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "bspc: read walls")
	}
	return ParseWalls(data)
}

// MarshalWalls renders walls back to the TOML source format
func MarshalWalls(walls []geom.Wall) ([]byte, error) {
	f := WallFile{Walls: make([]WallEntry, len(walls))}
	for i, w := range walls {
		f.Walls[i] = WallEntry{
			P1: [2]float64{w.Seg.P1.X, w.Seg.P1.Y},
			P2: [2]float64{w.Seg.P2.X, w.Seg.P2.Y},
		}
	}
	return toml.Marshal(f)
}

func validate(w geom.Wall) error {
	for _, c := range [...]float64{w.Seg.P1.X, w.Seg.P1.Y, w.Seg.P2.X, w.Seg.P2.Y} {
		if math.IsNaN(c) || math.Abs(c) > serial.MaxCoordinate {
			return errors.Wrapf(ErrInvalidWall, "coordinate %v outside ±%v", c, serial.MaxCoordinate)
		}
	}
	if w.Seg.P1.Equal(w.Seg.P2) {
		return errors.Wrap(ErrInvalidWall, "zero length")
	}
	return nil
}
