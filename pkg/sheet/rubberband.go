package sheet

import "math"

// RubberBand maps a raw drag offset to a bounded display offset. Within the
// nominal travel range the offset passes through unchanged; beyond it the
// extra travel is scaled down so the sheet keeps following the finger but
// with growing resistance instead of a hard stop.
//
// Offsets are signed the way drag samples are: negative means dragged
// upward toward expansion, positive means downward toward dismissal.
type RubberBand struct {
	// ApplyWhenOver enables the resistance zone. When false the offset
	// hard-clips at MaxTravel.
	ApplyWhenOver bool
	// MaxTravel is the nominal travel limit in px (expanded minus
	// collapsed height for upward drags).
	MaxTravel float64
	// ReductionFactor scales upward travel beyond MaxTravel. Must be
	// below 1 for the band to resist.
	ReductionFactor float64
	// MaxOverdrag caps the extra displayed travel beyond MaxTravel.
	MaxOverdrag float64
	// DownwardResistance scales positive (dismiss-direction) offsets so
	// pull-to-dismiss feels elastic too. Zero leaves them unscaled.
	DownwardResistance float64
}

// Apply bounds one raw offset.
func (r RubberBand) Apply(offset float64) float64 {
	if offset > 0 {
		if r.DownwardResistance > 0 {
			return offset * r.DownwardResistance
		}
		return offset
	}

	magnitude := -offset
	if magnitude <= r.MaxTravel {
		return offset
	}
	if !r.ApplyWhenOver {
		return -r.MaxTravel
	}
	extra := (magnitude - r.MaxTravel) * r.ReductionFactor
	if r.MaxOverdrag > 0 {
		extra = math.Min(extra, r.MaxOverdrag)
	}
	return -(r.MaxTravel + extra)
}
