package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/walls3d/config"
)

func TestSnapWritesScaledPNG(t *testing.T) {
	cfg := config.Default()
	cfg.Screen.Scale = 2
	out := filepath.Join(t.TempDir(), "frame.png")

	if err := snap(cfg, out, 3); err != nil {
		t.Fatalf("snap failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != cfg.Screen.Width*2 || b.Dy() != cfg.Screen.Height*2 {
		t.Errorf("Expected %dx%d, got %v", cfg.Screen.Width*2, cfg.Screen.Height*2, b)
	}
}

func TestSnapUnknownMap(t *testing.T) {
	cfg := config.Default()
	cfg.Map.Path = "nowhere"
	if err := snap(cfg, filepath.Join(t.TempDir(), "x.png"), 1); err == nil {
		t.Error("Expected error for unknown map")
	}
}
