package bsp

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/serial"
	"github.com/lixenwraith/walls3d/vmath"
)

// Indexed record fields, in words
const (
	fieldX1 = iota
	fieldY1
	fieldX2
	fieldY2
	fieldBack
	fieldFront
	recordWords
)

// RecordSize is the byte size of one Indexed node record
const RecordSize = recordWords * serial.WordSize

// MediumTree traverses an Indexed tree in place. Only the record being
// visited is decoded; no node storage is ever allocated
type MediumTree struct {
	m     serial.Medium
	count int
}

var _ Tree = (*MediumTree)(nil)

// NewMediumTree validates the Indexed layout of m once so traversal can read
// without bounds checks. Children must point forward in pre-order, which also
// rules out cycles, and every record but the root must have exactly one parent
func NewMediumTree(m serial.Medium) (*MediumTree, error) {
	n := m.Len()
	if n == serial.WordSize {
		if w := serial.PeekUnchecked(m, 0); w != serial.Sentinel {
			return nil, errors.Wrapf(ErrLayout, "single word %#x is not an empty tree", uint32(w))
		}
		logger.Debug("opened empty medium tree")
		return &MediumTree{m: m}, nil
	}
	if n == 0 || n%RecordSize != 0 {
		return nil, errors.Wrapf(ErrLayout, "length %d is not a multiple of %d", n, RecordSize)
	}

	count := n / RecordSize
	parented := make([]uint64, (count+63)/64)
	for i := 0; i < count; i++ {
		off := i * RecordSize
		for f := fieldX1; f <= fieldY2; f++ {
			if serial.PeekUnchecked(m, off+f*serial.WordSize) == serial.Sentinel {
				return nil, errors.Wrapf(ErrLayout, "record %d: sentinel in coordinate %d", i, f)
			}
		}
		for _, f := range [...]int{fieldBack, fieldFront} {
			c := serial.PeekUnchecked(m, off+f*serial.WordSize)
			if c == serial.Sentinel {
				continue
			}
			if int(c) <= i || int(c) >= count {
				return nil, errors.Wrapf(ErrLayout, "record %d: child index %d out of range", i, c)
			}
			word, bit := c/64, uint64(1)<<(c%64)
			if parented[word]&bit != 0 {
				return nil, errors.Wrapf(ErrLayout, "record %d: child %d already has a parent", i, c)
			}
			parented[word] |= bit
		}
	}
	for i := 1; i < count; i++ {
		if parented[i/64]&(1<<(i%64)) == 0 {
			return nil, errors.Wrapf(ErrLayout, "record %d is unreachable", i)
		}
	}

	logger.Debug("opened medium tree", "nodes", count, "bytes", n)
	return &MediumTree{m: m, count: count}, nil
}

// Traverse implements Tree
func (t *MediumTree) Traverse(camera geom.Vec2, visit Visitor) bool {
	return traverse(t, t.rootIndex(), camera, visit)
}

// Find implements Tree
func (t *MediumTree) Find(p geom.Vec2) int {
	return find(t, p)
}

// Len implements Tree
func (t *MediumTree) Len() int {
	return t.count
}

func (t *MediumTree) rootIndex() int {
	if t.count == 0 {
		return -1
	}
	return 0
}

func (t *MediumTree) node(i int) (geom.Wall, int, int) {
	off := i * RecordSize
	word := func(f int) int32 {
		return serial.PeekUnchecked(t.m, off+f*serial.WordSize)
	}
	wall := geom.NewWall(
		vmath.ToFloat(word(fieldX1)),
		vmath.ToFloat(word(fieldY1)),
		vmath.ToFloat(word(fieldX2)),
		vmath.ToFloat(word(fieldY2)),
	)
	return wall, childIndex(word(fieldBack)), childIndex(word(fieldFront))
}

func childIndex(w int32) int {
	if w == serial.Sentinel {
		return -1
	}
	return int(w)
}
