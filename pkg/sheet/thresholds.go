package sheet

// Thresholds configures gesture classification and overdrag feel. Immutable
// at runtime: the machine copies it at construction and never writes to it.
type Thresholds struct {
	// ExpandDistancePct is the fraction of max travel an upward drag must
	// cover to settle expanded.
	ExpandDistancePct float64
	// CollapseDistancePct is the fraction of max travel a downward drag
	// must cover to settle collapsed. Deliberately larger than
	// ExpandDistancePct so revealing content is easier than losing it.
	CollapseDistancePct float64
	// SnapVelocity is the speed (px/s) above which gesture intent is
	// honored regardless of distance traveled.
	SnapVelocity float64
	// DismissDistance is the downward travel (px) past which a release
	// dismisses the sheet.
	DismissDistance float64
	// OverdragResistanceFactor damps downward drag past the dismiss
	// origin while the sheet is collapsed.
	OverdragResistanceFactor float64
	// MaxOverdragPx caps the extra displayed travel past the nominal
	// limit.
	MaxOverdragPx float64
	// RubberBandReductionFactor scales upward drag beyond max travel.
	RubberBandReductionFactor float64
}

// DefaultThresholds returns the tuning the announcement sheet ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExpandDistancePct:         0.30,
		CollapseDistancePct:       0.40,
		SnapVelocity:              800,
		DismissDistance:           100,
		OverdragResistanceFactor:  0.40,
		MaxOverdragPx:             160,
		RubberBandReductionFactor: 0.60,
	}
}

// normalizeThresholds fills zero values with defaults so partially-populated
// configuration still behaves.
func normalizeThresholds(t Thresholds) Thresholds {
	d := DefaultThresholds()
	if t.ExpandDistancePct <= 0 {
		t.ExpandDistancePct = d.ExpandDistancePct
	}
	if t.CollapseDistancePct <= 0 {
		t.CollapseDistancePct = d.CollapseDistancePct
	}
	if t.SnapVelocity <= 0 {
		t.SnapVelocity = d.SnapVelocity
	}
	if t.DismissDistance <= 0 {
		t.DismissDistance = d.DismissDistance
	}
	if t.OverdragResistanceFactor <= 0 {
		t.OverdragResistanceFactor = d.OverdragResistanceFactor
	}
	if t.MaxOverdragPx <= 0 {
		t.MaxOverdragPx = d.MaxOverdragPx
	}
	if t.RubberBandReductionFactor <= 0 {
		t.RubberBandReductionFactor = d.RubberBandReductionFactor
	}
	return t
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
