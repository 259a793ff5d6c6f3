package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-velo/velo/pkg/sheet"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadOptional_MissingFileIsEmptyConfig(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("missing velo.yaml must load as zero config, got %+v", cfg)
	}
}

func TestLoadOptional_MalformedYAMLFails(t *testing.T) {
	dir := writeProject(t, map[string]string{"velo.yaml": "sheet: [not a map"})
	if _, err := LoadOptional(dir); err == nil {
		t.Fatal("malformed velo.yaml must fail to load")
	}
}

func TestResolve_Defaults(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod": "module github.com/acme/statusboard\n\ngo 1.24.0\n",
	})

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.ModulePath != "github.com/acme/statusboard" {
		t.Errorf("ModulePath = %q", r.ModulePath)
	}
	if r.AppName != "statusboard" {
		t.Errorf("AppName = %q, want module base name", r.AppName)
	}
	if r.Extents != sheet.DefaultExtents() {
		t.Errorf("Extents = %+v, want defaults", r.Extents)
	}
	if r.Thresholds != (sheet.Thresholds{}) {
		t.Errorf("unset thresholds must stay zero for the machine to normalize, got %+v", r.Thresholds)
	}
	if r.DisableRubberBand {
		t.Error("rubber band must default to enabled")
	}
	if r.Accent == "" || r.Backdrop == "" {
		t.Error("demo colors must resolve to defaults")
	}
}

func TestResolve_Overrides(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod": "module example.com/host/v2\n\ngo 1.24.0\n",
		"velo.yaml": `app:
  name: Launch Notes
sheet:
  expand_distance_pct: 0.25
  snap_velocity: 650
  collapsed_height: 280
  expanded_height: 640
  disable_rubber_band: true
demo:
  accent: "99"
`,
	})

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.AppName != "Launch Notes" {
		t.Errorf("AppName = %q", r.AppName)
	}
	if r.Thresholds.ExpandDistancePct != 0.25 {
		t.Errorf("ExpandDistancePct = %v", r.Thresholds.ExpandDistancePct)
	}
	if r.Thresholds.SnapVelocity != 650 {
		t.Errorf("SnapVelocity = %v", r.Thresholds.SnapVelocity)
	}
	if r.Thresholds.CollapseDistancePct != 0 {
		t.Errorf("unset CollapseDistancePct = %v, want zero", r.Thresholds.CollapseDistancePct)
	}
	want := sheet.Extents{Collapsed: 280, Expanded: 640}
	if r.Extents != want {
		t.Errorf("Extents = %+v, want %+v", r.Extents, want)
	}
	if !r.DisableRubberBand {
		t.Error("DisableRubberBand override lost")
	}
	if r.Accent != "99" {
		t.Errorf("Accent = %q", r.Accent)
	}
}

func TestResolve_ExpandedBelowCollapsedIgnored(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod": "module example.com/host\n\ngo 1.24.0\n",
		"velo.yaml": `sheet:
  collapsed_height: 300
  expanded_height: 200
`,
	})

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Extents.Collapsed != 300 {
		t.Errorf("Collapsed = %v", r.Extents.Collapsed)
	}
	if r.Extents.Expanded <= r.Extents.Collapsed {
		t.Errorf("Expanded = %v must stay above collapsed", r.Extents.Expanded)
	}
}

func TestResolve_MissingGoModFails(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Fatal("Resolve without go.mod must fail")
	}
}

func TestResolve_VersionedModulePathName(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod": "module github.com/acme/launchpad/v3\n\ngo 1.24.0\n",
	})

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.AppName != "launchpad" {
		t.Errorf("AppName = %q, want version suffix stripped", r.AppName)
	}
}
