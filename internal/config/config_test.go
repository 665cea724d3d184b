package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopcb/pcbcore/board"
)

func TestWriteDefaultThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pcbroute.yml")

	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultSettings()
	if got.BoardWidth != want.BoardWidth || got.BoardHeight != want.BoardHeight {
		t.Fatalf("board size did not round-trip: got %+v, want %+v", got, want)
	}
	if got.Passes != want.Passes || got.Smoothes != want.Smoothes {
		t.Fatalf("pass counts did not round-trip: got %+v, want %+v", got, want)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/pcbroute.yml"); err == nil {
		t.Fatal("expected an error loading a nonexistent settings file")
	}
}

func TestNewContextFallsBackToDefaultStyle(t *testing.T) {
	ctx := NewContext(Settings{BoardWidth: 5000, BoardHeight: 5000}, nil)
	style := ctx.Style("unknown")
	if style.Name != board.DefaultRouteStyle.Name {
		t.Fatalf("expected fallback to DefaultRouteStyle, got %+v", style)
	}
	if ctx.StyleBloat("unknown") != board.DefaultRouteStyle.Bloat() {
		t.Fatal("expected fallback bloat to match DefaultRouteStyle.Bloat()")
	}
}

func TestNewContextPrecomputesNamedStyleBloat(t *testing.T) {
	style := board.RouteStyle{Name: "fat", Thick: 2000, ViaDiam: 3000, ViaHole: 1200, Keepaway: 800}
	ctx := NewContext(Settings{RouteStyles: []board.RouteStyle{style}}, nil)
	if got, want := ctx.StyleBloat("fat"), style.Bloat(); got != want {
		t.Fatalf("expected precomputed bloat %v, got %v", want, got)
	}
}
