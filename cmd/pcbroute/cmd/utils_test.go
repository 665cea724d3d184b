package cmd

import (
	"path/filepath"
	"testing"

	"github.com/gopcb/pcbcore/internal/config"
)

func TestLoadConfigFallsBackToDefaultsWhenMissing(t *testing.T) {
	got, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatal(err)
	}
	want := config.DefaultSettings()
	if got.BoardWidth != want.BoardWidth || got.Passes != want.Passes {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	got, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if got.Passes != config.DefaultSettings().Passes {
		t.Fatalf("expected default pass count, got %d", got.Passes)
	}
}

func TestLoadConfigReadsWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pcbroute.yml")
	if err := config.WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.BoardWidth != config.DefaultSettings().BoardWidth {
		t.Fatalf("expected written defaults to round-trip, got %+v", got)
	}
}
