package sheet

import (
	"math"
	"testing"
)

func TestHeightFor_ClampsToExtents(t *testing.T) {
	e := Extents{Collapsed: 320, Expanded: 520}
	offsets := []float64{0, -50, -200, -230, -1000, 40, 100, 10000}
	for _, o := range offsets {
		h := e.HeightFor(o)
		if h < e.Collapsed || h > e.Expanded {
			t.Errorf("HeightFor(%v) = %v, outside [%v, %v]", o, h, e.Collapsed, e.Expanded)
		}
	}
}

func TestHeightFor_LinearWithinTravel(t *testing.T) {
	e := Extents{Collapsed: 320, Expanded: 520}
	if got := e.HeightFor(-100); got != 420 {
		t.Errorf("HeightFor(-100) = %v, want 420 (halfway)", got)
	}
	if got := e.HeightFor(0); got != 320 {
		t.Errorf("HeightFor(0) = %v, want collapsed", got)
	}
	if got := e.HeightFor(-200); got != 520 {
		t.Errorf("HeightFor(-200) = %v, want expanded", got)
	}
}

func TestHeightFor_DegenerateTravel(t *testing.T) {
	e := Extents{Collapsed: 320, Expanded: 320}
	if got := e.HeightFor(-100); got != 320 {
		t.Errorf("HeightFor with zero travel = %v, want collapsed", got)
	}
}

func TestProgress_RoundTripsHeightAt(t *testing.T) {
	e := Extents{Collapsed: 320, Expanded: 520}
	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := e.Progress(e.HeightAt(p)); math.Abs(got-p) > 1e-9 {
			t.Errorf("Progress(HeightAt(%v)) = %v", p, got)
		}
	}
}

func TestResolveExpandedHeight(t *testing.T) {
	tests := []struct {
		name                         string
		measured, viewport, fallback float64
		want                         float64
	}{
		{"normal measurement", 480, 800, 560, 480},
		{"below minimum floors", 120, 800, 560, MinExpandedHeight},
		{"above viewport cap clamps", 900, 800, 560, 720},
		{"zero measurement falls back", 0, 800, 560, 560},
		{"negative measurement falls back", -10, 800, 560, 560},
		{"NaN measurement falls back", math.NaN(), 800, 560, 560},
		{"zero viewport falls back", 480, 0, 560, 560},
		{"tiny viewport lowers floor", 380, 300, 560, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveExpandedHeight(tt.measured, tt.viewport, tt.fallback)
			if got != tt.want {
				t.Errorf("ResolveExpandedHeight(%v, %v, %v) = %v, want %v",
					tt.measured, tt.viewport, tt.fallback, got, tt.want)
			}
			if math.IsNaN(got) || got <= 0 {
				t.Errorf("ResolveExpandedHeight produced unusable height %v", got)
			}
		})
	}
}
