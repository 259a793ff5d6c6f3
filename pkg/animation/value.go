package animation

import "time"

// Settle describes how a [Value] travels to its next target: how long the
// motion takes, how it is eased, and an optional hold before it begins.
type Settle struct {
	// Duration is the travel time once the delay has elapsed. A zero
	// duration jumps to the target on the next frame.
	Duration time.Duration

	// Delay holds the value at its current position before the motion
	// starts. Used for the content-reveal pause on expansion.
	Delay time.Duration

	// Curve eases the motion. Nil means Linear.
	Curve func(float64) float64

	// OnSettle fires exactly once when the value reaches the target. It
	// does not fire when the motion is retargeted or stopped mid-flight.
	OnSettle func()
}

// Value is a scalar that can be animated toward a settle target. It is the
// engine's generic replacement for framework motion values: the host's frame
// pump drives it via [StepTickers], and retargeting mid-flight always
// restarts from the current position rather than queueing.
type Value struct {
	current float64
	target  float64

	start    float64
	settle   Settle
	elapsed  time.Duration
	settling bool
	ticker   *Ticker
}

// NewValue creates a value resting at initial.
func NewValue(initial float64) *Value {
	v := &Value{current: initial, target: initial}
	v.ticker = NewTicker(v.step)
	return v
}

// Current returns the value's present position.
func (v *Value) Current() float64 { return v.current }

// Target returns the position the value is settling toward. Equal to
// Current when at rest.
func (v *Value) Target() float64 { return v.target }

// Settling reports whether a motion is in flight.
func (v *Value) Settling() bool { return v.settling }

// Set jumps to x immediately, cancelling any in-flight motion. The cancelled
// motion's OnSettle is not called.
func (v *Value) Set(x float64) {
	v.Stop()
	v.current = x
	v.target = x
}

// SettleTo starts a motion from the current position toward target. Any
// in-flight motion is cancelled first; its OnSettle never fires.
func (v *Value) SettleTo(target float64, settle Settle) {
	v.Stop()
	v.start = v.current
	v.target = target
	v.settle = settle
	v.elapsed = 0
	v.settling = true
	v.ticker.Start()
}

// Stop halts any in-flight motion at the current position without firing
// OnSettle.
func (v *Value) Stop() {
	v.ticker.Stop()
	v.settling = false
	v.settle = Settle{}
}

func (v *Value) step(dt time.Duration) {
	if !v.settling {
		v.ticker.Stop()
		return
	}
	v.elapsed += dt
	active := v.elapsed - v.settle.Delay
	if active < 0 {
		return
	}

	progress := 1.0
	if v.settle.Duration > 0 {
		progress = float64(active) / float64(v.settle.Duration)
	}
	if progress >= 1 {
		v.finish()
		return
	}

	eased := progress
	if v.settle.Curve != nil {
		eased = v.settle.Curve(progress)
	}
	v.current = v.start + (v.target-v.start)*eased
}

func (v *Value) finish() {
	v.current = v.target
	done := v.settle.OnSettle
	v.Stop()
	if done != nil {
		done()
	}
}
