package sheet

import (
	"math"
	"testing"
)

func band() RubberBand {
	return RubberBand{
		ApplyWhenOver:   true,
		MaxTravel:       200,
		ReductionFactor: 0.60,
		MaxOverdrag:     160,
	}
}

func TestRubberBand_PassthroughWithinTravel(t *testing.T) {
	b := band()
	for _, offset := range []float64{0, -1, -100, -199, -200} {
		if got := b.Apply(offset); got != offset {
			t.Errorf("Apply(%v) = %v, want passthrough", offset, got)
		}
	}
}

func TestRubberBand_ReducesOverdrag(t *testing.T) {
	b := band()
	// 50px past the limit at factor 0.60 shows 30px of extra travel.
	if got := b.Apply(-250); got != -230 {
		t.Errorf("Apply(-250) = %v, want -230", got)
	}
}

func TestRubberBand_MonotonicButSlowerThanInput(t *testing.T) {
	b := band()
	prev := b.Apply(-200)
	for raw := 201.0; raw <= 400; raw++ {
		bounded := b.Apply(-raw)
		if -bounded <= -prev {
			t.Fatalf("bounded offset not strictly increasing at |o|=%v", raw)
		}
		grew := -bounded - -prev
		if grew >= 1 {
			t.Fatalf("bounded offset grew as fast as input at |o|=%v", raw)
		}
		prev = bounded
	}
}

func TestRubberBand_CapsAtMaxOverdrag(t *testing.T) {
	b := band()
	// 160px cap is hit at |o| = 200 + 160/0.6.
	deep := b.Apply(-10000)
	if got := -deep; got != 360 {
		t.Errorf("deep overdrag bounded to %v, want 360", got)
	}
}

func TestRubberBand_HardClipWhenDisabled(t *testing.T) {
	b := band()
	b.ApplyWhenOver = false
	if got := b.Apply(-250); got != -200 {
		t.Errorf("Apply(-250) with band disabled = %v, want -200", got)
	}
}

func TestRubberBand_DownwardResistance(t *testing.T) {
	b := band()
	b.DownwardResistance = 0.40
	if got := b.Apply(100); math.Abs(got-40) > 1e-9 {
		t.Errorf("Apply(100) = %v, want 40", got)
	}
	b.DownwardResistance = 0
	if got := b.Apply(100); got != 100 {
		t.Errorf("Apply(100) without resistance = %v, want 100", got)
	}
}
