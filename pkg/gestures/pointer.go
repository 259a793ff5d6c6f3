// Package gestures normalizes raw pointer input into drag samples the sheet
// engine consumes.
package gestures

import "time"

// Phase identifies where a pointer event sits in its press lifecycle.
type Phase int

const (
	// PhaseDown is the initial contact.
	PhaseDown Phase = iota
	// PhaseMove is a position change while pressed.
	PhaseMove
	// PhaseUp is the release.
	PhaseUp
	// PhaseCancel is a system-interrupted gesture (incoming call, focus loss).
	PhaseCancel
)

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// PointerEvent is a single raw input event. Time comes from the host event
// source so velocity estimation does not depend on wall-clock sampling.
type PointerEvent struct {
	PointerID int64
	Position  Point
	Phase     Phase
	Time      time.Time
}

// DefaultTouchSlop is the distance in logical pixels a pointer must travel
// before movement is treated as a drag rather than a tap.
const DefaultTouchSlop = 8.0

// DragSample is the normalized output of an active drag: the cumulative
// vertical displacement from gesture start (negative means dragged toward
// expand, i.e. upward) and the smoothed instantaneous velocity in px/s
// (positive means moving downward).
type DragSample struct {
	Offset   float64
	Velocity float64
}

// DragStartDetails reports where an accepted drag began.
type DragStartDetails struct {
	Position Point
}

// DragUpdateDetails reports one move of an active drag.
type DragUpdateDetails struct {
	Position Point
	// Delta is the vertical movement since the previous event.
	Delta float64
	// Sample is the cumulative offset and smoothed velocity.
	Sample DragSample
}

// DragEndDetails reports the final state of a completed drag.
type DragEndDetails struct {
	Position Point
	Sample   DragSample
}
