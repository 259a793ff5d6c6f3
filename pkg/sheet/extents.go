package sheet

import "math"

// Default extents used when the host provides no measurement. Values are
// logical pixels.
const (
	DefaultCollapsedHeight = 320.0
	DefaultExpandedHeight  = 560.0

	// MinExpandedHeight floors a content-measured expanded extent so a
	// nearly-empty announcement still opens to a usable panel.
	MinExpandedHeight = 400.0

	// maxViewportFraction caps the expanded extent relative to the
	// viewport so the sheet never swallows the whole screen.
	maxViewportFraction = 0.9
)

// Extents holds the two canonical sheet heights. The expanded extent may be
// a fixed design constant or derived from measuring the rendered content.
type Extents struct {
	Collapsed float64
	Expanded  float64
}

// DefaultExtents returns the fixed design extents.
func DefaultExtents() Extents {
	return Extents{Collapsed: DefaultCollapsedHeight, Expanded: DefaultExpandedHeight}
}

// Travel is the nominal drag distance between the two extents.
func (e Extents) Travel() float64 {
	return e.Expanded - e.Collapsed
}

// HeightAt maps an expansion progress in [0, 1] to a height. Output is
// always within [Collapsed, Expanded] regardless of input.
func (e Extents) HeightAt(progress float64) float64 {
	progress = clampFloat(progress, 0, 1)
	return e.Collapsed + (e.Expanded-e.Collapsed)*progress
}

// Progress inverts HeightAt, reporting how expanded a given height is.
func (e Extents) Progress(height float64) float64 {
	travel := e.Travel()
	if travel <= 0 {
		return 0
	}
	return clampFloat((height-e.Collapsed)/travel, 0, 1)
}

// HeightFor maps a bounded drag offset (measured from the collapsed resting
// position, negative = upward) to a height. Overdrag affects feel, not the
// rendered size: output never leaves [Collapsed, Expanded].
func (e Extents) HeightFor(bounded float64) float64 {
	travel := e.Travel()
	if travel <= 0 {
		return e.Collapsed
	}
	return e.HeightAt(bounded / -travel)
}

// ResolveExpandedHeight turns a content measurement into an expanded extent,
// clamped to [MinExpandedHeight, 0.9*viewport]. A missing or nonsensical
// measurement falls back to the fixed constant rather than producing a zero
// or NaN height.
func ResolveExpandedHeight(measured, viewport, fallback float64) float64 {
	if fallback <= 0 {
		fallback = DefaultExpandedHeight
	}
	if measured <= 0 || math.IsNaN(measured) || math.IsInf(measured, 0) {
		return fallback
	}
	ceiling := viewport * maxViewportFraction
	if ceiling <= 0 {
		return fallback
	}
	floor := math.Min(MinExpandedHeight, ceiling)
	return clampFloat(measured, floor, ceiling)
}
