//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

const (
	mapSrcDir = "world/maps"
	mapOutDir = "bin/maps"
)

type Maps mg.Namespace

// Compile writes a .bsp and a .bspi for every built-in map into bin/maps
func (Maps) Compile() error {
	mg.Deps(Build.Compiler)

	sources, err := filepath.Glob(filepath.Join(mapSrcDir, "*.toml"))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(mapOutDir, 0755); err != nil {
		return err
	}

	bspc := filepath.Join(binDir, "bspc")
	for _, src := range sources {
		name := strings.TrimSuffix(filepath.Base(src), ".toml")
		for layout, ext := range map[string]string{"preorder": ".bsp", "indexed": ".bspi"} {
			out := filepath.Join(mapOutDir, name+ext)
			if _, err := executeCmd(bspc, withArgs("-in", src, "-out", out, "-layout", layout)); err != nil {
				return err
			}
		}
	}
	fmt.Printf("Compiled %d maps into %s\n", len(sources), mapOutDir)
	return nil
}

// Snap renders the default map to bin/frame.png
func (Maps) Snap() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/walls-snap", "-out", filepath.Join(binDir, "frame.png")), withStream())
	return err
}
