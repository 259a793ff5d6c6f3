package sheet

import (
	"math"

	"github.com/go-velo/velo/pkg/gestures"
)

// Resolution is the discrete outcome of a completed drag.
type Resolution int

const (
	// ResolveCollapsed settles the sheet at its collapsed extent.
	ResolveCollapsed Resolution = iota
	// ResolveExpanded settles the sheet at its expanded extent.
	ResolveExpanded
	// ResolveDismissed closes the sheet entirely.
	ResolveDismissed
)

func (r Resolution) String() string {
	switch r {
	case ResolveCollapsed:
		return "collapsed"
	case ResolveExpanded:
		return "expanded"
	case ResolveDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Classify decides the state a completed drag settles into. It is a pure
// function of the final sample, the state the drag started from, the
// nominal travel distance, and the thresholds; given the same inputs it
// always returns the same resolution.
//
// Decision order:
//  1. Far or fast downward movement dismisses.
//  2. Upward drags expand past the expand threshold or on a fast fling,
//     otherwise fall back collapsed.
//  3. Downward drags below the dismiss distance collapse past the collapse
//     threshold or on a fast fling; otherwise the sheet stays on whichever
//     side of the expand threshold it currently sits, so a barely-moved
//     release never flips state.
func Classify(sample gestures.DragSample, origin State, travel float64, t Thresholds) Resolution {
	t = normalizeThresholds(t)
	offset := sample.Offset
	velocity := sample.Velocity

	// Rule 1: moving down far or fast closes the sheet.
	if offset > t.DismissDistance || velocity > t.SnapVelocity {
		return ResolveDismissed
	}

	expandThreshold := travel * t.ExpandDistancePct

	// Rule 2: dragged upward.
	if offset < 0 {
		if -offset >= expandThreshold || math.Abs(velocity) > t.SnapVelocity {
			return ResolveExpanded
		}
		return ResolveCollapsed
	}

	// Rule 3: dragged downward, below the dismiss distance.
	if offset >= travel*t.CollapseDistancePct || math.Abs(velocity) > t.SnapVelocity {
		return ResolveCollapsed
	}

	// Positional snap-back: judge where the sheet actually is right now.
	position := -offset
	if origin == StateExpanded {
		position = travel - offset
	}
	if position >= expandThreshold {
		return ResolveExpanded
	}
	return ResolveCollapsed
}
