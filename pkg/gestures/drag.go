package gestures

import (
	"math"
	"time"
)

// velocitySmoothing blends the previous estimate with the instantaneous
// velocity of each move. Heavier weight on history keeps fling detection
// stable across jittery input.
const velocitySmoothing = 0.8

// VerticalDragTracker recognizes vertical drags from a raw pointer stream
// and reports normalized [DragSample] values.
//
// A drag is recognized once vertical travel exceeds the slop distance and
// dominates horizontal travel. ShouldStart, when set, is consulted at that
// moment with the total vertical delta so far; returning false rejects the
// gesture (used for content-aware dragging, where scrolled-down content
// keeps the gesture). Taps and horizontal swipes produce no drag callbacks.
//
// No state survives a gesture: offset and velocity reset on every
// PhaseDown.
type VerticalDragTracker struct {
	ShouldStart func(totalDelta float64) bool
	OnStart     func(DragStartDetails)
	OnUpdate    func(DragUpdateDetails)
	OnEnd       func(DragEndDetails)
	OnCancel    func()

	// Slop overrides DefaultTouchSlop when positive.
	Slop float64

	pointer  int64
	start    Point
	last     Point
	lastTime time.Time
	offset   float64
	velocity float64
	tracking bool
	accepted bool
	rejected bool
}

// Active reports whether a recognized drag is in progress.
func (v *VerticalDragTracker) Active() bool {
	return v.tracking && v.accepted
}

// Handle feeds one pointer event to the tracker.
func (v *VerticalDragTracker) Handle(event PointerEvent) {
	switch event.Phase {
	case PhaseDown:
		v.begin(event)
	case PhaseMove:
		v.move(event)
	case PhaseUp:
		v.finish(event)
	case PhaseCancel:
		v.cancel()
	}
}

func (v *VerticalDragTracker) begin(event PointerEvent) {
	v.pointer = event.PointerID
	v.start = event.Position
	v.last = event.Position
	v.lastTime = event.Time
	v.offset = 0
	v.velocity = 0
	v.tracking = true
	v.accepted = false
	v.rejected = false
}

func (v *VerticalDragTracker) move(event PointerEvent) {
	if !v.tracking || v.rejected || event.PointerID != v.pointer {
		return
	}

	totalY := event.Position.Y - v.start.Y
	totalX := event.Position.X - v.start.X

	if !v.accepted {
		slop := v.Slop
		if slop <= 0 {
			slop = DefaultTouchSlop
		}
		switch {
		case math.Abs(totalY) > slop && math.Abs(totalY) >= math.Abs(totalX):
			if v.ShouldStart != nil && !v.ShouldStart(totalY) {
				v.rejected = true
				return
			}
			v.accepted = true
			if v.OnStart != nil {
				v.OnStart(DragStartDetails{Position: v.start})
			}
		case math.Abs(totalX) > slop:
			// Horizontal movement dominates: not our gesture.
			v.rejected = true
			return
		default:
			return
		}
	}

	delta := event.Position.Y - v.last.Y
	if dt := event.Time.Sub(v.lastTime).Seconds(); dt > 0 {
		inst := delta / dt
		v.velocity = v.velocity*velocitySmoothing + inst*(1-velocitySmoothing)
	}
	v.offset = totalY
	v.last = event.Position
	v.lastTime = event.Time

	if v.OnUpdate != nil {
		v.OnUpdate(DragUpdateDetails{
			Position: event.Position,
			Delta:    delta,
			Sample:   DragSample{Offset: v.offset, Velocity: v.velocity},
		})
	}
}

func (v *VerticalDragTracker) finish(event PointerEvent) {
	if !v.tracking || event.PointerID != v.pointer {
		return
	}
	accepted := v.accepted && !v.rejected
	sample := DragSample{Offset: v.offset, Velocity: v.velocity}
	position := event.Position
	v.reset()
	if accepted && v.OnEnd != nil {
		v.OnEnd(DragEndDetails{Position: position, Sample: sample})
	}
}

func (v *VerticalDragTracker) cancel() {
	if !v.tracking {
		return
	}
	accepted := v.accepted && !v.rejected
	v.reset()
	if accepted && v.OnCancel != nil {
		v.OnCancel()
	}
}

func (v *VerticalDragTracker) reset() {
	v.tracking = false
	v.accepted = false
	v.rejected = false
	v.offset = 0
	v.velocity = 0
}
