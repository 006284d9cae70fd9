package bspc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/walls3d/geom"
)

const twoWalls = `
[[wall]]
p1 = [10.0, 10.0]
p2 = [210.0, 10.0]

[[wall]]
p1 = [190.5, 190.0]
p2 = [140.0, 170.25]
`

func TestParseWalls(t *testing.T) {
	walls, err := ParseWalls([]byte(twoWalls))
	require.NoError(t, err)
	assert.Equal(t, []geom.Wall{
		geom.NewWall(10, 10, 210, 10),
		geom.NewWall(190.5, 190, 140, 170.25),
	}, walls)
}

func TestParseWallsRejects(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		invalid bool
	}{
		{"Coordinate too large", "[[wall]]\np1 = [40000.0, 0.0]\np2 = [0.0, 0.0]\n", true},
		{"Negative too large", "[[wall]]\np1 = [0.0, 0.0]\np2 = [0.0, -32768.0]\n", true},
		{"Zero length", "[[wall]]\np1 = [5.0, 5.0]\np2 = [5.0, 5.0]\n", true},
		{"Malformed", "[[wall]\np1 = ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWalls([]byte(tt.src))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidWall))
		})
	}
}

func TestLoadWallFileRoundTrip(t *testing.T) {
	data, err := MarshalWalls(roomWalls())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "room.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	walls, err := LoadWallFile(path)
	require.NoError(t, err)
	assert.Equal(t, roomWalls(), walls)

	_, err = LoadWallFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
