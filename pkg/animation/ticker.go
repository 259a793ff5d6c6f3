// Package animation provides the timing and interpolation primitives the
// sheet engine animates with.
//
// The package does not own a frame loop. The host UI layer calls
// [StepTickers] once per frame from its own scheduling primitive (a
// requestAnimationFrame equivalent, a compositor vsync callback, or a timer
// tick in a terminal program) and every active [Ticker] receives the time
// elapsed since its previous step. [Value] and [Spring] build on Ticker to
// move a scalar toward a settle target; most code uses those rather than
// Ticker directly.
package animation

import (
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker invokes a callback on every host frame while active. The callback
// receives the time elapsed since the ticker's previous step, so integrators
// never have to track frame timestamps themselves.
type Ticker struct {
	callback func(dt time.Duration)
	active   bool
	last     time.Time
}

// NewTicker creates an inactive ticker with the given per-frame callback.
func NewTicker(callback func(dt time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start activates the ticker. The first step after Start reports a zero or
// near-zero delta.
func (t *Ticker) Start() {
	if t.active {
		return
	}
	t.active = true
	t.last = Now()
	tickerMu.Lock()
	activeTickers[t] = struct{}{}
	tickerMu.Unlock()
}

// Stop deactivates the ticker. Safe to call when already stopped.
func (t *Ticker) Stop() {
	if !t.active {
		return
	}
	t.active = false
	tickerMu.Lock()
	delete(activeTickers, t)
	tickerMu.Unlock()
}

// IsActive reports whether the ticker is currently running.
func (t *Ticker) IsActive() bool { return t.active }

// StepTickers advances all active tickers. The host calls this once per
// frame.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy so callbacks can start/stop tickers without deadlocking.
	tickers := make([]*Ticker, 0, len(activeTickers))
	for t := range activeTickers {
		tickers = append(tickers, t)
	}
	tickerMu.Unlock()

	now := Now()
	for _, t := range tickers {
		if !t.active || t.callback == nil {
			continue
		}
		dt := now.Sub(t.last)
		if dt < 0 {
			dt = 0
		}
		t.last = now
		t.callback(dt)
	}
}

// HasActiveTickers reports whether any tickers are running.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}
