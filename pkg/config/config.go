// Package config reads the optional velo.yaml next to the host's go.mod and
// resolves it into engine tuning and demo appearance. Every field is
// optional; zero values resolve to the shipped defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-velo/velo/pkg/sheet"
)

// Config represents the optional velo.yaml configuration.
type Config struct {
	App   AppConfig   `yaml:"app"`
	Sheet SheetConfig `yaml:"sheet"`
	Demo  DemoConfig  `yaml:"demo"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// SheetConfig overrides gesture thresholds and size extents. Units match
// the engine: fractions of travel for the distance percentages, px/s for
// velocity, px for everything else.
type SheetConfig struct {
	ExpandDistancePct   float64 `yaml:"expand_distance_pct,omitempty"`
	CollapseDistancePct float64 `yaml:"collapse_distance_pct,omitempty"`
	SnapVelocity        float64 `yaml:"snap_velocity,omitempty"`
	DismissDistance     float64 `yaml:"dismiss_distance,omitempty"`
	OverdragResistance  float64 `yaml:"overdrag_resistance,omitempty"`
	MaxOverdrag         float64 `yaml:"max_overdrag,omitempty"`
	RubberBandReduction float64 `yaml:"rubber_band_reduction,omitempty"`
	CollapsedHeight     float64 `yaml:"collapsed_height,omitempty"`
	ExpandedHeight      float64 `yaml:"expanded_height,omitempty"`
	DisableRubberBand   bool    `yaml:"disable_rubber_band,omitempty"`
}

// DemoConfig styles the terminal demo.
type DemoConfig struct {
	Accent   string `yaml:"accent,omitempty"`
	Backdrop string `yaml:"backdrop,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root              string
	ModulePath        string
	AppName           string
	Thresholds        sheet.Thresholds
	Extents           sheet.Extents
	DisableRubberBand bool
	Accent            string
	Backdrop          string
}

// LoadOptional reads velo.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "velo.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read velo.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse velo.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve loads velo.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	accent := strings.TrimSpace(cfg.Demo.Accent)
	if accent == "" {
		accent = "205"
	}
	backdrop := strings.TrimSpace(cfg.Demo.Backdrop)
	if backdrop == "" {
		backdrop = "236"
	}

	return &Resolved{
		Root:              dir,
		ModulePath:        modulePath,
		AppName:           appName,
		Thresholds:        resolveThresholds(cfg.Sheet),
		Extents:           resolveExtents(cfg.Sheet),
		DisableRubberBand: cfg.Sheet.DisableRubberBand,
		Accent:            accent,
		Backdrop:          backdrop,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func resolveThresholds(s SheetConfig) sheet.Thresholds {
	// Zero fields fall through to the engine defaults; the machine
	// normalizes on construction.
	return sheet.Thresholds{
		ExpandDistancePct:         s.ExpandDistancePct,
		CollapseDistancePct:       s.CollapseDistancePct,
		SnapVelocity:              s.SnapVelocity,
		DismissDistance:           s.DismissDistance,
		OverdragResistanceFactor:  s.OverdragResistance,
		MaxOverdragPx:             s.MaxOverdrag,
		RubberBandReductionFactor: s.RubberBandReduction,
	}
}

func resolveExtents(s SheetConfig) sheet.Extents {
	ext := sheet.DefaultExtents()
	if s.CollapsedHeight > 0 {
		ext.Collapsed = s.CollapsedHeight
	}
	if s.ExpandedHeight > ext.Collapsed {
		ext.Expanded = s.ExpandedHeight
	}
	return ext
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "velo_app"
	}
	return base
}
