// Package bsp loads and traverses pre-built binary space partition trees.
//
// Trees are compiled offline (see package bspc) and are immutable once
// loaded. Two storage strategies share one traversal: Arena deserializes every
// node once into a bounded index-addressed slice, MediumTree decodes the
// current node straight from the serialized medium on every step.
package bsp

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/serial"
)

var logger = log.New(io.Discard)

// SetLogger routes package diagnostics to l
func SetLogger(l *log.Logger) {
	logger = l
}

// Configuration-fatal errors: the tree does not fit the resource budget
var (
	ErrStackOverflow = errors.New("bsp: load stack exceeds maximum tree depth")
	ErrTooManyNodes  = errors.New("bsp: node count exceeds arena capacity")
	ErrLayout        = errors.New("bsp: malformed indexed layout")
)

// Visitor receives each camera-facing wall, nearest first.
// Returning false stops the traversal
type Visitor func(wall geom.Wall) bool

// Tree is the traversal contract shared by every storage strategy
type Tree interface {
	// Traverse visits camera-facing walls front to back from camera, culling
	// back faces. Returns false if visit stopped the traversal early
	Traverse(camera geom.Vec2, visit Visitor) bool
	// Find returns the index of the node whose region contains p, or -1 for an empty tree
	Find(p geom.Vec2) int
	// Len returns the number of nodes
	Len() int
}

// Layout identifies a serialized tree format
type Layout uint8

const (
	// Preorder nodes are four coordinates each, absent subtrees are a single Sentinel word
	Preorder Layout = iota
	// Indexed nodes are fixed-size records carrying explicit child indices
	Indexed
)

func (l Layout) String() string {
	switch l {
	case Preorder:
		return "preorder"
	case Indexed:
		return "indexed"
	}
	return "unknown"
}

// ParseLayout maps a name to a Layout
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "preorder", "arena":
		return Preorder, nil
	case "indexed", "medium":
		return Indexed, nil
	}
	return 0, errors.Errorf("bsp: unknown layout %q", s)
}

// Open loads m with the storage strategy matching its layout
func Open(m serial.Medium, layout Layout, lim Limits) (Tree, error) {
	var (
		t   Tree
		err error
	)
	switch layout {
	case Preorder:
		t, err = LoadArena(m, lim)
	case Indexed:
		t, err = NewMediumTree(m)
	default:
		return nil, errors.Errorf("bsp: unsupported layout %d", layout)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Ext returns the conventional file extension for the layout
func (l Layout) Ext() string {
	if l == Indexed {
		return ".bspi"
	}
	return ".bsp"
}

// LayoutFromExt maps a file extension to its layout
func LayoutFromExt(ext string) (Layout, bool) {
	switch ext {
	case ".bsp":
		return Preorder, true
	case ".bspi":
		return Indexed, true
	}
	return 0, false
}
