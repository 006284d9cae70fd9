package bspc

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/serial"
)

// Encode serializes root in the requested layout
func Encode(root *Node, layout bsp.Layout, codec serial.Codec) ([]byte, error) {
	switch layout {
	case bsp.Preorder:
		return EncodePreorder(root, codec), nil
	case bsp.Indexed:
		return EncodeIndexed(root, codec), nil
	}
	return nil, errors.Errorf("bspc: unsupported layout %s", layout)
}

// EncodePreorder writes each node's coordinates followed by its back then
// front subtree. Absent subtrees are a single sentinel word
func EncodePreorder(root *Node, codec serial.Codec) []byte {
	w := serial.NewWriter(codec)
	writePreorder(w, root)
	return w.Bytes()
}

func writePreorder(w *serial.Writer, n *Node) {
	if n == nil {
		w.Sentinel()
		return
	}
	writeWall(w, n)
	writePreorder(w, n.Back)
	writePreorder(w, n.Front)
}

// EncodeIndexed writes one fixed-size record per node in pre-order, children
// referenced by record index. The empty tree is a single sentinel word
func EncodeIndexed(root *Node, codec serial.Codec) []byte {
	w := serial.NewWriter(codec)
	if root == nil {
		w.Sentinel()
		return w.Bytes()
	}

	var order []*Node
	index := make(map[*Node]int32)
	preorder(root, func(n *Node) {
		index[n] = int32(len(order))
		order = append(order, n)
	})

	ref := func(n *Node) int32 {
		if n == nil {
			return serial.Sentinel
		}
		return index[n]
	}
	for _, n := range order {
		writeWall(w, n)
		w.Int32(ref(n.Back))
		w.Int32(ref(n.Front))
	}
	return w.Bytes()
}

func writeWall(w *serial.Writer, n *Node) {
	s := n.Wall.Seg
	w.Float(s.P1.X)
	w.Float(s.P1.Y)
	w.Float(s.P2.X)
	w.Float(s.P2.Y)
}
