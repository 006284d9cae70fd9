// Package bspc compiles plan-view walls into serialized BSP trees offline.
// Renderers never build trees; they only consume the bytes produced here
package bspc

import (
	"github.com/lixenwraith/walls3d/geom"
)

// splitPenalty weighs one split against one wall of imbalance
const splitPenalty = 8

// Node is one compiled partition. Indices in the serialized forms follow
// pre-order: node, back subtree, front subtree
type Node struct {
	Wall        geom.Wall
	Back, Front *Node
}

// Build partitions walls recursively. Returns nil for no walls
func Build(walls []geom.Wall) *Node {
	if len(walls) == 0 {
		return nil
	}

	best := bestSplitter(walls)
	rest := make([]geom.Wall, 0, len(walls)-1)
	rest = append(rest, walls[:best]...)
	rest = append(rest, walls[best+1:]...)

	back, front := Split(walls[best].Seg, rest)
	return &Node{
		Wall:  walls[best],
		Back:  Build(back),
		Front: Build(front),
	}
}

// Score rates walls[i] as splitter, lower is better
func Score(walls []geom.Wall, i int) int {
	others := len(walls) - 1
	back, front := 0, 0
	for j, w := range walls {
		if j == i {
			continue
		}
		b, f := classify(walls[i].Seg, w)
		if b.ok {
			back++
		}
		if f.ok {
			front++
		}
	}
	splits := back + front - others
	imbalance := back - front
	if imbalance < 0 {
		imbalance = -imbalance
	}
	return imbalance + splitPenalty*splits
}

// bestSplitter returns the index of the lowest score, first wins ties
func bestSplitter(walls []geom.Wall) int {
	best, bestScore := 0, -1
	for i := range walls {
		s := Score(walls, i)
		if bestScore < 0 || s < bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// Split sorts walls to the sides of splitter, cutting walls that cross it
func Split(splitter geom.Line, walls []geom.Wall) (back, front []geom.Wall) {
	for _, w := range walls {
		b, f := classify(splitter, w)
		if b.ok {
			back = append(back, b.wall)
		}
		if f.ok {
			front = append(front, f.wall)
		}
	}
	return back, front
}

type piece struct {
	wall geom.Wall
	ok   bool
}

// classify places w behind or in front of splitter, or cuts it in two.
// A wall touching the splitter line at one end goes wholly to the side of its other end
func classify(splitter geom.Line, w geom.Wall) (back, front piece) {
	p, _, u, ok := geom.FindLineLineSegIntersection(splitter, w.Seg)
	if !ok {
		if geom.IsSegInFrontOf(splitter, w.Seg) {
			return piece{}, piece{w, true}
		}
		return piece{w, true}, piece{}
	}

	switch {
	case u > 0 && u < 1:
		b, f := w, w
		if geom.IsPointInFrontOf(splitter, w.Seg.P1) {
			f.Seg.P2, b.Seg.P1 = p, p
		} else {
			b.Seg.P2, f.Seg.P1 = p, p
		}
		return piece{b, true}, piece{f, true}
	case u == 0:
		if geom.IsPointInFrontOf(splitter, w.Seg.P2) {
			return piece{}, piece{w, true}
		}
	default:
		if geom.IsPointInFrontOf(splitter, w.Seg.P1) {
			return piece{}, piece{w, true}
		}
	}
	return piece{w, true}, piece{}
}

// Count returns the number of nodes under n
func Count(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + Count(n.Back) + Count(n.Front)
}

// Depth returns the longest root-to-leaf node count, the loader stack depth needed
func Depth(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + max(Depth(n.Back), Depth(n.Front))
}

// Walls returns every compiled wall in pre-order, including split pieces
func Walls(n *Node) []geom.Wall {
	var out []geom.Wall
	preorder(n, func(n *Node) {
		out = append(out, n.Wall)
	})
	return out
}

func preorder(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	preorder(n.Back, fn)
	preorder(n.Front, fn)
}
