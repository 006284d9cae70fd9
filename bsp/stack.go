package bsp

import "github.com/pkg/errors"

// frame replaces one call frame of a recursive pre-order parse
type frame struct {
	node     NodeIndex
	children uint8 // 0, 1 or 2 subtrees consumed
}

// nodeStack is a fixed-capacity stack allocated once per load
type nodeStack struct {
	data  []frame
	count int
}

func newNodeStack(depth int) *nodeStack {
	return &nodeStack{data: make([]frame, depth)}
}

func (s *nodeStack) len() int {
	return s.count
}

// push fails instead of growing past the configured depth
func (s *nodeStack) push(f frame) error {
	if s.count == len(s.data) {
		return errors.Wrapf(ErrStackOverflow, "depth %d", len(s.data))
	}
	s.data[s.count] = f
	s.count++
	return nil
}

func (s *nodeStack) peek() *frame {
	return &s.data[s.count-1]
}

func (s *nodeStack) pop() {
	s.count--
}
