package bsp

import "github.com/lixenwraith/walls3d/geom"

// nodeSource is the storage-specific half of a tree. Indices are pre-order
// positions, -1 meaning absent
type nodeSource interface {
	rootIndex() int
	node(i int) (wall geom.Wall, back, front int)
}

// traverse walks the subtree at idx nearest-first. A wall is visited only when
// the camera is in its front half-plane; its back subtree is still walked
// because walls further away may face the camera
func traverse(src nodeSource, idx int, camera geom.Vec2, visit Visitor) bool {
	if idx < 0 {
		return true
	}
	wall, back, front := src.node(idx)

	if geom.IsPointInFrontOf(wall.Seg, camera) {
		if !traverse(src, front, camera, visit) {
			return false
		}
		if !visit(wall) {
			return false
		}
		return traverse(src, back, camera, visit)
	}

	if !traverse(src, back, camera, visit) {
		return false
	}
	return traverse(src, front, camera, visit)
}

// find descends by half-plane until the side containing p has no subtree
func find(src nodeSource, p geom.Vec2) int {
	idx := src.rootIndex()
	if idx < 0 {
		return -1
	}
	for {
		wall, back, front := src.node(idx)
		next := back
		if geom.IsPointInFrontOf(wall.Seg, p) {
			next = front
		}
		if next < 0 {
			return idx
		}
		idx = next
	}
}

// Walls lists every wall of t in pre-order
func Walls(t Tree) []geom.Wall {
	src, ok := t.(nodeSource)
	if !ok {
		return nil
	}
	out := make([]geom.Wall, 0, t.Len())
	var walk func(i int)
	walk = func(i int) {
		if i < 0 {
			return
		}
		wall, back, front := src.node(i)
		out = append(out, wall)
		walk(back)
		walk(front)
	}
	walk(src.rootIndex())
	return out
}
