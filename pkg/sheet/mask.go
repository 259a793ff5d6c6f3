package sheet

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/go-velo/velo/pkg/animation"
)

// Collapsed-state clipping geometry.
const (
	// CollapsedBodyMaxHeight is the fixed height body content renders at
	// while the sheet is collapsed.
	CollapsedBodyMaxHeight = 180.0
	// maskFadeHeight is the height of the gradient alpha ramp at the
	// bottom of the clipped region.
	maskFadeHeight = 56.0
)

// MaskSpec describes how body content is clipped for a given state:
// collapsed content renders at a fixed max height with a bottom fade so
// overflow truncates softly; expanded content renders unmasked.
type MaskSpec struct {
	Clipped    bool
	MaxHeight  float64
	FadeHeight float64
}

// MaskFor returns the clip decision for a state.
func MaskFor(state State) MaskSpec {
	if state == StateCollapsed {
		return MaskSpec{
			Clipped:    true,
			MaxHeight:  CollapsedBodyMaxHeight,
			FadeHeight: maskFadeHeight,
		}
	}
	return MaskSpec{}
}

// AlphaAt returns the mask opacity in [0, 1] at a vertical position within
// the clipped region: fully opaque until the fade zone, then a linear ramp
// to transparent at the clip edge.
func (m MaskSpec) AlphaAt(y float64) float64 {
	if !m.Clipped {
		return 1
	}
	if y >= m.MaxHeight {
		return 0
	}
	fadeStart := m.MaxHeight - m.FadeHeight
	if y <= fadeStart || m.FadeHeight <= 0 {
		return 1
	}
	return 1 - (y-fadeStart)/m.FadeHeight
}

// Ramp rasterizes the fade into an alpha image of the given size for hosts
// that composite bitmaps.
func (m MaskSpec) Ramp(width, height int) *image.Alpha {
	ramp := image.NewAlpha(image.Rect(0, 0, width, height))
	if height == 0 {
		return ramp
	}
	scale := m.MaxHeight / float64(height)
	for y := 0; y < height; y++ {
		a := uint8(clampFloat(m.AlphaAt(float64(y)*scale), 0, 1) * 255)
		for x := 0; x < width; x++ {
			ramp.SetAlpha(x, y, color.Alpha{A: a})
		}
	}
	return ramp
}

// RenderMasked scales src into a width x height bitmap and applies the fade
// mask. Unclipped specs just scale.
func RenderMasked(src image.Image, width, height int, spec MaskSpec) *image.RGBA {
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	if !spec.Clipped {
		return scaled
	}
	dst := image.NewRGBA(scaled.Bounds())
	draw.DrawMask(dst, dst.Bounds(), scaled, image.Point{}, spec.Ramp(width, height), image.Point{}, draw.Over)
	return dst
}

// ContentKey identifies the rendered content for re-measurement purposes. A
// key change means the content's natural height may have changed.
type ContentKey struct {
	PayloadID string
	Reactions int
}

// measureSettleTicks is how many frame ticks a measurement waits after
// being requested, giving layout time to settle before it is read.
const measureSettleTicks = 2

// Remeasurer schedules content measurements at the defined trigger points
// only: entering the expanded state, or a content identity change while
// expanded. It never measures per render.
type Remeasurer struct {
	// Measure reads the natural height of the content subtree. Host
	// capability; may fail when the container has no layout yet.
	Measure func() (float64, error)
	// Apply receives the measurement outcome.
	Apply func(measured float64, err error)

	ticker  *animation.Ticker
	ticks   int
	lastKey ContentKey
	hasKey  bool
}

// Request arms a measurement two frame ticks from now. A request while one
// is pending restarts the countdown rather than stacking measurements.
func (r *Remeasurer) Request() {
	r.Cancel()
	r.ticks = measureSettleTicks
	r.ticker = animation.NewTicker(func(time.Duration) {
		r.ticks--
		if r.ticks > 0 {
			return
		}
		r.Cancel()
		if r.Measure == nil {
			return
		}
		measured, err := r.Measure()
		if r.Apply != nil {
			r.Apply(measured, err)
		}
	})
	r.ticker.Start()
}

// NoteContent records the current content identity and requests a
// measurement if it changed while the sheet is expanded.
func (r *Remeasurer) NoteContent(state State, key ContentKey) {
	changed := !r.hasKey || key != r.lastKey
	r.lastKey = key
	r.hasKey = true
	if changed && state == StateExpanded {
		r.Request()
	}
}

// Cancel drops any pending measurement. Called on every sheet exit path.
func (r *Remeasurer) Cancel() {
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
}
