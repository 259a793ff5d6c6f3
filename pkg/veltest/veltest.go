// Package veltest provides test support for code built on the engine:
// a controllable clock that drives the animation tickers, and pointer
// sequence synthesis for exercising drag recognition without a UI.
package veltest

import (
	"sync"
	"testing"
	"time"

	"github.com/go-velo/velo/pkg/animation"
	"github.com/go-velo/velo/pkg/gestures"
)

// FrameInterval is the synthetic frame duration Frames and Settle step by.
const FrameInterval = 16 * time.Millisecond

// Clock is a fake animation clock. Advancing it steps every active ticker,
// so animations progress exactly as far as the test says time has passed.
// Safe for concurrent reads; advance it from the test goroutine only.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Install replaces the animation clock for the duration of the test and
// restores the previous clock on cleanup.
func Install(t testing.TB) *Clock {
	t.Helper()
	c := &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := animation.SetClock(c)
	t.Cleanup(func() { animation.SetClock(prev) })
	return c
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and steps the tickers once.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	animation.StepTickers()
}

// Frames advances the clock by n frame intervals, stepping tickers each
// frame.
func (c *Clock) Frames(n int) {
	for i := 0; i < n; i++ {
		c.Advance(FrameInterval)
	}
}

// Settle steps frames until every animation has finished. It gives up after
// a generous bound so a runaway animation fails the test instead of hanging
// it.
func (c *Clock) Settle(t testing.TB) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !animation.HasActiveTickers() {
			return
		}
		c.Advance(FrameInterval)
	}
	t.Fatal("animations did not settle")
}

// PointerSink receives synthesized pointer events, typically a tracker's or
// panel's Handle method.
type PointerSink func(gestures.PointerEvent)

var pointerSeq int64

// Swipe synthesizes a full drag gesture: down at start, ten interpolated
// moves, and up at start+delta, with event timestamps spread across
// duration. The reported release velocity is therefore close to
// delta/duration.
func Swipe(send PointerSink, start, delta gestures.Point, duration time.Duration) {
	pointerSeq++
	id := pointerSeq
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	send(gestures.PointerEvent{
		PointerID: id, Phase: gestures.PhaseDown, Position: start, Time: base,
	})

	const steps = 10
	for i := 1; i <= steps; i++ {
		frac := float64(i) / steps
		send(gestures.PointerEvent{
			PointerID: id,
			Phase:     gestures.PhaseMove,
			Position: gestures.Point{
				X: start.X + delta.X*frac,
				Y: start.Y + delta.Y*frac,
			},
			Time: base.Add(time.Duration(frac * float64(duration))),
		})
	}

	send(gestures.PointerEvent{
		PointerID: id,
		Phase:     gestures.PhaseUp,
		Position:  gestures.Point{X: start.X + delta.X, Y: start.Y + delta.Y},
		Time:      base.Add(duration),
	})
}

// Tap synthesizes a press and release at one position. Below the touch
// slop, it never becomes a drag.
func Tap(send PointerSink, pos gestures.Point) {
	pointerSeq++
	id := pointerSeq
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	send(gestures.PointerEvent{PointerID: id, Phase: gestures.PhaseDown, Position: pos, Time: base})
	send(gestures.PointerEvent{PointerID: id, Phase: gestures.PhaseUp, Position: pos, Time: base.Add(50 * time.Millisecond)})
}
