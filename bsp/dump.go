package bsp

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Dump writes an indented listing of t, back subtree before front
func Dump(w io.Writer, t Tree) error {
	src, ok := t.(nodeSource)
	if !ok {
		return errors.Errorf("bsp: cannot dump %T", t)
	}
	if _, err := fmt.Fprintf(w, "tree: %d nodes\n", t.Len()); err != nil {
		return err
	}
	return dumpNode(w, src, src.rootIndex(), 0, "root")
}

func dumpNode(w io.Writer, src nodeSource, idx, depth int, side string) error {
	indent := strings.Repeat("  ", depth)
	if idx < 0 {
		_, err := fmt.Fprintf(w, "%s%s: -\n", indent, side)
		return err
	}

	wall, back, front := src.node(idx)
	s := wall.Seg
	if _, err := fmt.Fprintf(w, "%s%s: #%d (%.3f, %.3f) -> (%.3f, %.3f)\n",
		indent, side, idx, s.P1.X, s.P1.Y, s.P2.X, s.P2.Y); err != nil {
		return err
	}
	if back < 0 && front < 0 {
		return nil
	}
	if err := dumpNode(w, src, back, depth+1, "back"); err != nil {
		return err
	}
	return dumpNode(w, src, front, depth+1, "front")
}
