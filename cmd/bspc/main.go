// Command bspc compiles a TOML wall list into a serialized BSP tree
//
//	bspc -in maps/arena.toml -out arena.bsp [-layout preorder|indexed] [-round] [-dump]
package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/lixenwraith/walls3d/bsp"
	"github.com/lixenwraith/walls3d/bspc"
	"github.com/lixenwraith/walls3d/serial"
)

// job is one compiler invocation
type job struct {
	in     string
	out    string // empty derives the name from in and the layout
	layout bsp.Layout
	codec  serial.Codec
	limits bsp.Limits // budget the target must fit; exceeding it only warns
	dump   io.Writer  // optional tree listing
}

// result summarizes a compiled tree
type result struct {
	out   string
	walls int
	nodes int
	depth int
	bytes int
}

func main() {
	var (
		in       = flag.String("in", "", "TOML wall list")
		out      = flag.String("out", "", "output file (default: input name with the layout extension)")
		layout   = flag.String("layout", "preorder", "preorder (.bsp) or indexed (.bspi)")
		round    = flag.Bool("round", false, "round coordinates instead of truncating")
		dump     = flag.Bool("dump", false, "print the compiled tree")
		maxNodes = flag.Int("max-nodes", bsp.DefaultLimits.MaxNodes, "target arena capacity")
		maxDepth = flag.Int("max-depth", bsp.DefaultLimits.MaxDepth, "target loader stack depth")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bspc"})

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	l, err := bsp.ParseLayout(*layout)
	if err != nil {
		logger.Fatal("layout", "err", err)
	}

	j := job{
		in:     *in,
		out:    *out,
		layout: l,
		codec:  serial.Default,
		limits: bsp.Limits{MaxNodes: *maxNodes, MaxDepth: *maxDepth},
	}
	if *round {
		j.codec = serial.Codec{Rounding: serial.Round}
	}
	if *dump {
		j.dump = os.Stdout
	}

	res, err := compile(j, logger)
	if err != nil {
		logger.Fatal("compile", "err", err)
	}
	logger.Info("wrote", "file", res.out, "layout", l, "walls", res.walls, "nodes", res.nodes, "depth", res.depth, "bytes", res.bytes)
}

func compile(j job, logger *log.Logger) (result, error) {
	walls, err := bspc.LoadWallFile(j.in)
	if err != nil {
		return result{}, err
	}
	root := bspc.Build(walls)

	data, err := bspc.Encode(root, j.layout, j.codec)
	if err != nil {
		return result{}, err
	}

	res := result{
		out:   j.out,
		walls: len(walls),
		nodes: bspc.Count(root),
		depth: bspc.Depth(root),
		bytes: len(data),
	}
	if res.out == "" {
		res.out = strings.TrimSuffix(j.in, filepath.Ext(j.in)) + j.layout.Ext()
	}

	if res.nodes > j.limits.MaxNodes {
		logger.Warn("tree exceeds target node budget", "nodes", res.nodes, "max", j.limits.MaxNodes)
	}
	if res.depth > j.limits.MaxDepth {
		logger.Warn("tree exceeds target stack depth", "depth", res.depth, "max", j.limits.MaxDepth)
	}

	if j.dump != nil {
		t, err := bsp.Open(serial.RAM(data), j.layout, bsp.Limits{MaxNodes: bsp.MaxArenaNodes, MaxDepth: bsp.MaxArenaNodes})
		if err != nil {
			return res, errors.Wrap(err, "reload compiled tree")
		}
		if err := bsp.Dump(j.dump, t); err != nil {
			return res, err
		}
	}

	if err := os.WriteFile(res.out, data, 0o644); err != nil {
		return res, errors.Wrap(err, "write tree")
	}
	return res, nil
}
