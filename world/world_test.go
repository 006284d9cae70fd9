package world_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/bspc"
	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/serial"
	"github.com/lixenwraith/walls3d/world"
)

func visits(t *testing.T, tree bsp.Tree, camera geom.Vec2) []geom.Wall {
	t.Helper()
	var out []geom.Wall
	tree.Traverse(camera, func(w geom.Wall) bool {
		out = append(out, w)
		return true
	})
	return out
}

// writeTree stores one layout of m on disk and returns the path
func writeTree(t *testing.T, m *world.Map, layout bsp.Layout) string {
	t.Helper()
	med, err := m.Medium(layout)
	require.NoError(t, err)
	rom, ok := med.(serial.ROM)
	require.True(t, ok, "compiled maps are held in ROM")

	file := filepath.Join(t.TempDir(), m.Name+layout.Ext())
	require.NoError(t, os.WriteFile(file, []byte(rom), 0o644))
	return file
}

func TestBuiltinNames(t *testing.T) {
	names := world.Names()
	assert.Contains(t, names, world.DefaultMap)
	assert.Contains(t, names, "hall")
	assert.IsNonDecreasing(t, names)
}

func TestBuiltinMapsCompile(t *testing.T) {
	for _, name := range world.Names() {
		t.Run(name, func(t *testing.T) {
			m, err := world.Builtin(name)
			require.NoError(t, err)
			assert.Equal(t, name, m.Name)
			assert.NotEmpty(t, m.Walls)
			assert.True(t, m.Has(bsp.Preorder))
			assert.True(t, m.Has(bsp.Indexed))

			// Every built-in must fit the default embedded budget
			_, err = m.Tree(bsp.Preorder, bsp.DefaultLimits)
			assert.NoError(t, err)
		})
	}
}

func TestDefaultLayoutsAgree(t *testing.T) {
	m := world.Default()

	arena, err := m.Tree(bsp.Preorder, bsp.DefaultLimits)
	require.NoError(t, err)
	medium, err := m.Tree(bsp.Indexed, bsp.DefaultLimits)
	require.NoError(t, err)

	require.Equal(t, len(m.Walls), arena.Len())
	assert.ElementsMatch(t, m.Walls, bsp.Walls(medium))

	for _, p := range []geom.Vec2{{X: 60, Y: 15}, {X: 110, Y: 110}, {X: 180, Y: 200}, {X: 30, Y: 70}} {
		assert.Equal(t, visits(t, arena, p), visits(t, medium, p), "visit order from %v", p)
		assert.Equal(t, arena.Find(p), medium.Find(p), "region of %v", p)
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := world.Builtin("nowhere")
	assert.ErrorIs(t, err, world.ErrUnknownMap)
}

func TestLoadBinary(t *testing.T) {
	src := world.Default()

	for _, layout := range []bsp.Layout{bsp.Preorder, bsp.Indexed} {
		t.Run(layout.String(), func(t *testing.T) {
			m, err := world.Load(writeTree(t, src, layout))
			require.NoError(t, err)

			assert.Equal(t, src.Name, m.Name)
			assert.Equal(t, src.Walls, m.Walls)
			assert.True(t, m.Has(layout))

			other := bsp.Indexed
			if layout == bsp.Indexed {
				other = bsp.Preorder
			}
			assert.False(t, m.Has(other))
			_, err = m.Tree(other, bsp.DefaultLimits)
			assert.ErrorIs(t, err, world.ErrNoLayout)
		})
	}
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "map.txt")
	require.NoError(t, os.WriteFile(txt, []byte("walls"), 0o644))
	_, err := world.Load(txt)
	assert.ErrorIs(t, err, world.ErrUnsupported)

	truncated := filepath.Join(dir, "short.bsp")
	require.NoError(t, os.WriteFile(truncated, []byte{0x00, 0x0A, 0x00}, 0o644))
	_, err = world.Load(truncated)
	assert.ErrorIs(t, err, serial.ErrShortRead)

	_, err = world.Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestOpenReference(t *testing.T) {
	m, err := world.Open("")
	require.NoError(t, err)
	assert.Equal(t, world.DefaultMap, m.Name)

	m, err = world.Open("hall")
	require.NoError(t, err)
	assert.Equal(t, "hall", m.Name)

	data, err := bspc.MarshalWalls([]geom.Wall{geom.NewWall(0, 0, 10, 0)})
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "line.toml")
	require.NoError(t, os.WriteFile(file, data, 0o644))

	m, err = world.Open(file)
	require.NoError(t, err)
	assert.Equal(t, "line", m.Name)
	assert.Len(t, m.Walls, 1)
}

func TestWatcherReloads(t *testing.T) {
	file := filepath.Join(t.TempDir(), "room.toml")
	one, err := bspc.MarshalWalls([]geom.Wall{geom.NewWall(0, 0, 10, 0)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, one, 0o644))

	w, err := world.NewWatcher(file)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	maps := make(chan *world.Map, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx, func(m *world.Map, err error) {
			if err != nil {
				return
			}
			select {
			case maps <- m:
			default:
			}
		})
	}()

	two, err := bspc.MarshalWalls([]geom.Wall{
		geom.NewWall(0, 0, 10, 0),
		geom.NewWall(10, 0, 10, 10),
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, two, 0o644))

	// A truncating write can surface intermediate states first
	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case m := <-maps:
			reloaded = len(m.Walls) == 2
		case <-timeout:
			t.Fatal("Expected reload after write")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected Run to return after cancel")
	}
}
