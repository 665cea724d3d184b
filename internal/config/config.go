// Package config loads build settings from YAML and builds the frozen
// Context every entry point threads through: board bounds, route
// styles, the annealer's cost parameters, and a Logger.
//
// Settings is a plain struct unmarshaled with gopkg.in/yaml.v2, paired
// with a "config" cobra subcommand that writes a prefilled default file
// rather than requiring the user to hand-author one from scratch.
package config

import (
	"fmt"
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"

	"github.com/gopcb/pcbcore/board"
	"github.com/gopcb/pcbcore/place"
)

// Settings is the on-disk YAML build settings file.
type Settings struct {
	BoardWidth  int32 `yaml:"board_width"`
	BoardHeight int32 `yaml:"board_height"`

	RouteStyles []board.RouteStyle `yaml:"route_styles"`

	Passes    int  `yaml:"passes"`
	Smoothes  int  `yaml:"smoothes"`
	ViaOn     bool `yaml:"via_on"`
	AllowJogs bool `yaml:"allow_jogs"`

	PlaceCost place.CostParams `yaml:"place_cost"`
	// AnnealSeed seeds the placement annealer's RNG; 0 selects
	// place.NewAnnealer's own default seed.
	AnnealSeed int64 `yaml:"anneal_seed"`
}

// DefaultSettings returns a Settings prefilled with the same defaults
// the core packages fall back to on their own, so a written-out config
// file documents the active values rather than hiding them.
func DefaultSettings() Settings {
	return Settings{
		BoardWidth:  1000000,
		BoardHeight: 1000000,
		RouteStyles: []board.RouteStyle{board.DefaultRouteStyle},
		Passes:      12,
		Smoothes:    1,
		ViaOn:       true,
		AllowJogs:   true,
		PlaceCost:   place.DefaultCostParams(),
		AnnealSeed:  0,
	}
}

// Load reads and parses a YAML settings file.
func Load(path string) (Settings, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(buf, &s); err != nil {
		return Settings{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return s, nil
}

// WriteDefault writes DefaultSettings to path in YAML format.
func WriteDefault(path string) error {
	buf, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("config: marshaling defaults: %w", err)
	}
	if err := ioutil.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
