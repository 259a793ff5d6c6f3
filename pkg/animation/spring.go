package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	springFPS       = 60
	springFrequency = 7.5
	springDamping   = 1.0

	// Position and velocity bands below which the simulation is at rest.
	springRestDistance = 0.1
	springRestVelocity = 1.0
)

// Spring settles a scalar with critically damped spring physics. Unlike
// [Value] it carries the release velocity of a drag into the motion, which
// is what makes a flung sheet feel continuous with the finger that threw it.
type Spring struct {
	sim      harmonica.Spring
	pos      float64
	vel      float64
	target   float64
	onSettle func()

	carry   time.Duration
	resting bool
	ticker  *Ticker
}

// NewSpring creates a spring resting at initial.
func NewSpring(initial float64) *Spring {
	s := &Spring{
		sim:     harmonica.NewSpring(harmonica.FPS(springFPS), springFrequency, springDamping),
		pos:     initial,
		target:  initial,
		resting: true,
	}
	s.ticker = NewTicker(s.step)
	return s
}

// Current returns the spring's present position.
func (s *Spring) Current() float64 { return s.pos }

// Settling reports whether the simulation is in flight.
func (s *Spring) Settling() bool { return !s.resting }

// Set jumps to x and zeroes velocity, cancelling any in-flight motion.
func (s *Spring) Set(x float64) {
	s.ticker.Stop()
	s.pos = x
	s.vel = 0
	s.target = x
	s.resting = true
	s.onSettle = nil
}

// SettleTo launches the spring toward target with the given initial
// velocity (px/s). An in-flight motion is retargeted from the current
// position; its pending OnSettle callback is replaced.
func (s *Spring) SettleTo(target, velocity float64, onSettle func()) {
	s.target = target
	s.vel = velocity
	s.onSettle = onSettle
	s.resting = false
	s.carry = 0
	s.ticker.Start()
}

// Stop halts the motion at the current position without firing OnSettle.
func (s *Spring) Stop() {
	s.ticker.Stop()
	s.vel = 0
	s.resting = true
	s.onSettle = nil
}

// step advances the fixed-timestep simulation by however many whole frames
// fit into the elapsed host time, carrying the remainder.
func (s *Spring) step(dt time.Duration) {
	if s.resting {
		s.ticker.Stop()
		return
	}
	s.carry += dt
	frame := time.Second / springFPS
	for s.carry >= frame {
		s.carry -= frame
		s.pos, s.vel = s.sim.Update(s.pos, s.vel, s.target)
		if math.Abs(s.pos-s.target) < springRestDistance && math.Abs(s.vel) < springRestVelocity {
			s.pos = s.target
			done := s.onSettle
			s.Stop()
			if done != nil {
				done()
			}
			return
		}
	}
}
