//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const binDir = "bin"

var commands = []string{"walls-sim", "walls-window", "bspc", "walls-snap"}

type Build mg.Namespace

// All builds every command into bin/
func (Build) All() error {
	for _, c := range commands {
		if err := buildCommand(c); err != nil {
			return err
		}
	}
	return nil
}

// Sim builds the terminal simulator
func (Build) Sim() error {
	return buildCommand("walls-sim")
}

// Window builds the desktop simulator
func (Build) Window() error {
	return buildCommand("walls-window")
}

// Compiler builds the offline tree compiler
func (Build) Compiler() error {
	return buildCommand("bspc")
}

func buildCommand(name string) error {
	out := filepath.Join(binDir, name)
	fmt.Printf("Building %s...\n", name)
	_, err := executeCmd("go", withArgs("build", "-o", out, "./cmd/"+name))
	return err
}
