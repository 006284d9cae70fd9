package bsp

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/geom"
	"github.com/lixenwraith/walls3d/serial"
)

// NodeIndex addresses a node inside an Arena
type NodeIndex uint8

// NullNode marks an absent child
const NullNode NodeIndex = 0xFF

// MaxArenaNodes is the hard capacity implied by the index width
const MaxArenaNodes = 254

// Every valid index is below NullNode. Fails to compile otherwise
var _ [NullNode - MaxArenaNodes - 1]struct{}

// Limits bound the memory a loaded tree may use
type Limits struct {
	MaxNodes int // arena capacity, at most MaxArenaNodes
	MaxDepth int // loader stack frames
}

// DefaultLimits fit a microcontroller with 2 KiB of RAM
var DefaultLimits = Limits{MaxNodes: 50, MaxDepth: 14}

func (l Limits) normalized() Limits {
	if l.MaxNodes <= 0 {
		l.MaxNodes = DefaultLimits.MaxNodes
	}
	if l.MaxNodes > MaxArenaNodes {
		l.MaxNodes = MaxArenaNodes
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultLimits.MaxDepth
	}
	return l
}

type arenaNode struct {
	wall        geom.Wall
	back, front NodeIndex
}

// Arena holds every node in one slice allocated once at load time
type Arena struct {
	nodes []arenaNode
	root  NodeIndex
	size  int
}

var _ Tree = (*Arena)(nil)

// LoadArena parses a Preorder tree without recursion. On any error no tree
// is returned; ErrStackOverflow and ErrTooManyNodes are configuration-fatal
func LoadArena(m serial.Medium, lim Limits) (*Arena, error) {
	lim = lim.normalized()
	a := &Arena{
		nodes: make([]arenaNode, 0, lim.MaxNodes),
		root:  NullNode,
	}
	r := serial.NewReader(m)

	w, err := r.Peek()
	if err != nil {
		return nil, errors.Wrap(err, "bsp: root")
	}
	if w == serial.Sentinel {
		_ = r.Skip(1)
		a.size = r.Offset()
		logger.Debug("loaded empty arena")
		return a, nil
	}

	if a.root, err = a.parseNode(r); err != nil {
		return nil, err
	}

	st := newNodeStack(lim.MaxDepth)
	if err := st.push(frame{node: a.root}); err != nil {
		return nil, err
	}

	for st.len() > 0 {
		top := st.peek()
		if top.children == 2 {
			st.pop()
			continue
		}

		w, err := r.Peek()
		if err != nil {
			return nil, errors.Wrapf(err, "bsp: child %d of node %d", top.children, top.node)
		}

		child := NullNode
		if w == serial.Sentinel {
			_ = r.Skip(1)
		} else if child, err = a.parseNode(r); err != nil {
			return nil, err
		}

		a.setChild(top.node, top.children, child)
		top.children++

		if child != NullNode {
			if err := st.push(frame{node: child}); err != nil {
				return nil, err
			}
		}
	}

	a.size = r.Offset()
	if rest := r.Remaining(); rest > 0 {
		logger.Warn("trailing bytes after tree", "bytes", rest)
	}
	logger.Debug("loaded arena", "nodes", len(a.nodes), "bytes", a.size)
	return a, nil
}

// MustLoadArena halts on configuration-fatal load errors
func MustLoadArena(m serial.Medium, lim Limits) *Arena {
	a, err := LoadArena(m, lim)
	if err != nil {
		panic(err)
	}
	return a
}

// parseNode reads one wall and appends it with no children yet
func (a *Arena) parseNode(r *serial.Reader) (NodeIndex, error) {
	if len(a.nodes) == cap(a.nodes) {
		return NullNode, errors.Wrapf(ErrTooManyNodes, "capacity %d", cap(a.nodes))
	}

	var c [4]float64
	for i := range c {
		v, err := r.Float()
		if err != nil {
			return NullNode, errors.Wrapf(err, "bsp: node %d", len(a.nodes))
		}
		c[i] = v
	}

	a.nodes = append(a.nodes, arenaNode{
		wall:  geom.NewWall(c[0], c[1], c[2], c[3]),
		back:  NullNode,
		front: NullNode,
	})
	return NodeIndex(len(a.nodes) - 1), nil
}

// setChild stores child in the slot the pre-order position dictates: back first, then front
func (a *Arena) setChild(parent NodeIndex, slot uint8, child NodeIndex) {
	if slot == 0 {
		a.nodes[parent].back = child
	} else {
		a.nodes[parent].front = child
	}
}

// Traverse implements Tree
func (a *Arena) Traverse(camera geom.Vec2, visit Visitor) bool {
	return traverse(a, a.rootIndex(), camera, visit)
}

// Find implements Tree
func (a *Arena) Find(p geom.Vec2) int {
	return find(a, p)
}

// Len implements Tree
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Size returns the number of serialized bytes consumed
func (a *Arena) Size() int {
	return a.size
}

func (a *Arena) rootIndex() int {
	return a.index(a.root)
}

func (a *Arena) node(i int) (geom.Wall, int, int) {
	n := &a.nodes[i]
	return n.wall, a.index(n.back), a.index(n.front)
}

func (a *Arena) index(n NodeIndex) int {
	if n == NullNode {
		return -1
	}
	return int(n)
}
