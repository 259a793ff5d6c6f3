package sheet

import (
	"testing"

	"github.com/go-velo/velo/pkg/gestures"
)

func TestClassify_DecisionTable(t *testing.T) {
	const travel = 200.0
	th := DefaultThresholds()

	tests := []struct {
		name     string
		offset   float64
		velocity float64
		origin   State
		want     Resolution
	}{
		// Upward drags from collapsed.
		{"short slow upward drag stays collapsed", -50, -100, StateCollapsed, ResolveCollapsed},
		{"upward drag past 30 percent expands", -70, -100, StateCollapsed, ResolveExpanded},
		{"tiny drag with fast upward fling expands", -10, -900, StateCollapsed, ResolveExpanded},
		{"exactly at expand threshold expands", -60, 0, StateCollapsed, ResolveExpanded},
		{"just under expand threshold collapses", -59, 0, StateCollapsed, ResolveCollapsed},

		// Downward drags.
		{"downward past dismiss distance dismisses", 120, 100, StateCollapsed, ResolveDismissed},
		{"fast downward fling dismisses regardless of distance", 10, 900, StateExpanded, ResolveDismissed},
		{"downward past 40 percent collapses", 90, 100, StateExpanded, ResolveCollapsed},
		{"fast upward fling during downward drag collapses", 20, -900, StateExpanded, ResolveCollapsed},

		// Positional snap-back: barely moved, stay where you are.
		{"small downward drag from expanded stays expanded", 30, 50, StateExpanded, ResolveExpanded},
		{"small downward drag from collapsed stays collapsed", 30, 50, StateCollapsed, ResolveCollapsed},
		{"downward drag from expanded past expand threshold line", 150, 100, StateExpanded, ResolveDismissed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample := gestures.DragSample{Offset: tt.offset, Velocity: tt.velocity}
			got := Classify(sample, tt.origin, travel, th)
			if got != tt.want {
				t.Errorf("Classify(offset=%v, velocity=%v, origin=%v) = %v, want %v",
					tt.offset, tt.velocity, tt.origin, got, tt.want)
			}
		})
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	sample := gestures.DragSample{Offset: -55, Velocity: -450}
	first := Classify(sample, StateCollapsed, 200, DefaultThresholds())
	for i := 0; i < 100; i++ {
		if got := Classify(sample, StateCollapsed, 200, DefaultThresholds()); got != first {
			t.Fatalf("Classify returned %v after returning %v for identical input", got, first)
		}
	}
}

func TestClassify_ZeroSampleSnapsBack(t *testing.T) {
	// A malformed or zero-duration gesture must resolve to the origin
	// state, never crash or flip state.
	zero := gestures.DragSample{}
	if got := Classify(zero, StateCollapsed, 200, DefaultThresholds()); got != ResolveCollapsed {
		t.Errorf("zero sample from collapsed = %v, want collapsed", got)
	}
	if got := Classify(zero, StateExpanded, 200, DefaultThresholds()); got != ResolveExpanded {
		t.Errorf("zero sample from expanded = %v, want expanded", got)
	}
}
