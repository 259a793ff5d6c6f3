package sheet

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/go-velo/velo/pkg/veltest"
)

func TestMaskFor(t *testing.T) {
	collapsed := MaskFor(StateCollapsed)
	if !collapsed.Clipped {
		t.Error("collapsed content must be clipped")
	}
	if collapsed.MaxHeight != CollapsedBodyMaxHeight {
		t.Errorf("collapsed MaxHeight = %v, want %v", collapsed.MaxHeight, CollapsedBodyMaxHeight)
	}
	if collapsed.FadeHeight <= 0 || collapsed.FadeHeight >= collapsed.MaxHeight {
		t.Errorf("fade height %v must sit inside the clipped region", collapsed.FadeHeight)
	}

	for _, s := range []State{StateClosed, StateExpanded} {
		if MaskFor(s).Clipped {
			t.Errorf("state %v must not clip", s)
		}
	}
}

func TestMaskSpec_AlphaAt(t *testing.T) {
	m := MaskFor(StateCollapsed)
	fadeStart := m.MaxHeight - m.FadeHeight

	if got := m.AlphaAt(0); got != 1 {
		t.Errorf("AlphaAt(0) = %v, want 1", got)
	}
	if got := m.AlphaAt(fadeStart); got != 1 {
		t.Errorf("AlphaAt(fadeStart) = %v, want 1", got)
	}
	mid := m.AlphaAt(fadeStart + m.FadeHeight/2)
	if math.Abs(mid-0.5) > 1e-9 {
		t.Errorf("AlphaAt(mid-fade) = %v, want 0.5", mid)
	}
	if got := m.AlphaAt(m.MaxHeight); got != 0 {
		t.Errorf("AlphaAt(MaxHeight) = %v, want 0", got)
	}
	if got := m.AlphaAt(m.MaxHeight + 50); got != 0 {
		t.Errorf("AlphaAt below clip edge = %v, want 0", got)
	}

	// Unclipped specs never attenuate.
	open := MaskSpec{}
	for _, y := range []float64{0, 100, 1e6} {
		if got := open.AlphaAt(y); got != 1 {
			t.Errorf("unclipped AlphaAt(%v) = %v, want 1", y, got)
		}
	}
}

func TestMaskSpec_Ramp(t *testing.T) {
	m := MaskFor(StateCollapsed)
	ramp := m.Ramp(4, 90) // 2px per unit of mask height

	if ramp.AlphaAt(0, 0).A != 255 {
		t.Errorf("ramp top alpha = %d, want 255", ramp.AlphaAt(0, 0).A)
	}
	if got := ramp.AlphaAt(0, 89).A; got > 8 {
		t.Errorf("ramp bottom alpha = %d, want near 0", got)
	}
	// Alpha never increases downward.
	prev := ramp.AlphaAt(0, 0).A
	for y := 1; y < 90; y++ {
		a := ramp.AlphaAt(0, y).A
		if a > prev {
			t.Fatalf("ramp alpha increased at y=%d: %d -> %d", y, prev, a)
		}
		prev = a
	}
}

func TestRenderMasked(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	plain := RenderMasked(src, 8, 90, MaskSpec{})
	if got := plain.RGBAAt(0, 89).A; got != 255 {
		t.Errorf("unclipped render bottom alpha = %d, want 255", got)
	}

	masked := RenderMasked(src, 8, 90, MaskFor(StateCollapsed))
	if got := masked.RGBAAt(0, 0).A; got != 255 {
		t.Errorf("masked render top alpha = %d, want 255", got)
	}
	if got := masked.RGBAAt(0, 89).A; got > 8 {
		t.Errorf("masked render bottom alpha = %d, want near 0", got)
	}
}

func TestRemeasurer_FiresAfterTwoTicks(t *testing.T) {
	c := veltest.Install(t)
	var applied []float64
	r := &Remeasurer{
		Measure: func() (float64, error) { return 480, nil },
		Apply: func(h float64, err error) {
			if err != nil {
				t.Fatalf("unexpected measure error: %v", err)
			}
			applied = append(applied, h)
		},
	}

	r.Request()
	c.Advance(16 * time.Millisecond)
	if len(applied) != 0 {
		t.Fatal("measurement fired one tick early")
	}
	c.Advance(16 * time.Millisecond)
	if len(applied) != 1 || applied[0] != 480 {
		t.Fatalf("applied = %v, want one measurement of 480", applied)
	}
	// The ticker unwinds itself; no further measurements.
	c.Frames(5)
	if len(applied) != 1 {
		t.Errorf("measurement fired %d times, want 1", len(applied))
	}
}

func TestRemeasurer_RequestRestartsPending(t *testing.T) {
	c := veltest.Install(t)
	fired := 0
	r := &Remeasurer{
		Measure: func() (float64, error) { return 480, nil },
		Apply:   func(float64, error) { fired++ },
	}

	r.Request()
	c.Advance(16 * time.Millisecond)
	r.Request() // restart the countdown, do not stack
	c.Advance(16 * time.Millisecond)
	if fired != 0 {
		t.Fatal("restarted countdown fired early")
	}
	c.Advance(16 * time.Millisecond)
	if fired != 1 {
		t.Errorf("measurement fired %d times, want 1", fired)
	}
}

func TestRemeasurer_CancelDropsPending(t *testing.T) {
	c := veltest.Install(t)
	fired := 0
	r := &Remeasurer{
		Measure: func() (float64, error) { return 480, nil },
		Apply:   func(float64, error) { fired++ },
	}

	r.Request()
	r.Cancel()
	c.Frames(5)
	if fired != 0 {
		t.Errorf("cancelled measurement still fired %d times", fired)
	}
	r.Cancel() // idempotent
}

func TestRemeasurer_PropagatesMeasureError(t *testing.T) {
	c := veltest.Install(t)
	measureErr := errors.New("container has no layout")
	var got error
	r := &Remeasurer{
		Measure: func() (float64, error) { return 0, measureErr },
		Apply:   func(_ float64, err error) { got = err },
	}

	r.Request()
	c.Frames(2)
	if !errors.Is(got, measureErr) {
		t.Errorf("Apply received %v, want the measure error", got)
	}
}

func TestRemeasurer_NoteContent(t *testing.T) {
	c := veltest.Install(t)
	fired := 0
	r := &Remeasurer{
		Measure: func() (float64, error) { return 480, nil },
		Apply:   func(float64, error) { fired++ },
	}

	keyA := ContentKey{PayloadID: "a", Reactions: 2}
	keyB := ContentKey{PayloadID: "a", Reactions: 3}

	// First sighting while collapsed records the key without measuring.
	r.NoteContent(StateCollapsed, keyA)
	c.Frames(3)
	if fired != 0 {
		t.Fatal("collapsed content change must not measure")
	}

	// Same key while expanded: nothing changed, no measurement.
	r.NoteContent(StateExpanded, keyA)
	c.Frames(3)
	if fired != 0 {
		t.Fatal("unchanged key must not measure")
	}

	// Reaction count moved while expanded: measure once.
	r.NoteContent(StateExpanded, keyB)
	c.Frames(3)
	if fired != 1 {
		t.Fatalf("measurement fired %d times after key change, want 1", fired)
	}

	// Repeated notes with the stable new key stay quiet.
	r.NoteContent(StateExpanded, keyB)
	r.NoteContent(StateExpanded, keyB)
	c.Frames(3)
	if fired != 1 {
		t.Errorf("measurement fired %d times for stable key, want 1", fired)
	}
}
