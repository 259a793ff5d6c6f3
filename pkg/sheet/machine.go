package sheet

import (
	"time"

	"github.com/go-velo/velo/pkg/animation"
	"github.com/go-velo/velo/pkg/gestures"
)

// State is the sheet's discrete presentation state.
type State int

const (
	// StateClosed means the sheet is not presented.
	StateClosed State = iota
	// StateCollapsed shows the sheet at its collapsed extent with the
	// body content clipped.
	StateCollapsed
	// StateExpanded shows the sheet at its full extent.
	StateExpanded
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateCollapsed:
		return "collapsed"
	case StateExpanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// Backdrop opacity targets per state.
const (
	BackdropClosed    = 0.0
	BackdropCollapsed = 0.30
	BackdropExpanded  = 0.48
)

// Animation tuning. Expansion is deliberately slower and softer than
// collapse, with a short hold that lets content start revealing while the
// sheet is still rising; collapse is quick and decisive.
const (
	openDuration      = 280 * time.Millisecond
	expandDuration    = 320 * time.Millisecond
	expandRevealDelay = 60 * time.Millisecond
	collapseDuration  = 220 * time.Millisecond
	dismissDuration   = 200 * time.Millisecond
	backdropDuration  = 200 * time.Millisecond
	remeasureDuration = 240 * time.Millisecond

	// scrollUnlockGrace keeps the page locked briefly after a drag
	// settles expanded, preventing an accidental scroll-through during
	// the settle animation.
	scrollUnlockGrace = 150 * time.Millisecond
)

type heightDriver int

const (
	driverNone heightDriver = iota
	driverGlide
	driverSpring
)

// Config assembles a Machine. Zero fields take defaults.
type Config struct {
	Thresholds Thresholds
	Extents    Extents
	// DisableRubberBand hard-clips overdrag at the travel limit instead
	// of applying elastic resistance.
	DisableRubberBand bool
	// Lock is the page scroll lock. Nil means NopLock.
	Lock Lock
	// OnClose fires once per presentation session, after the dismiss
	// animation completes and transient state has been reset.
	OnClose func()
	// OnStateChange observes committed transitions.
	OnStateChange func(prev, next State)
}

// Machine owns the sheet's state triple (offset, isDragging, state)
// exclusively. It is not safe for concurrent use; drive it from the host's
// event loop like any other UI object.
type Machine struct {
	thresholds    Thresholds
	extents       Extents
	rubberEnabled bool
	lock          Lock
	onClose       func()
	onStateChange func(prev, next State)

	state      State
	isDragging bool
	closing    bool

	// Active gesture.
	offset           float64
	bounded          float64
	dragOriginState  State
	dragOriginHeight float64
	dragHeight       float64

	driver heightDriver
	glide  *animation.Value
	spring *animation.Spring

	backdrop *animation.Value

	lockHeld     bool
	graceTicker  *animation.Ticker
	graceElapsed time.Duration
}

// NewMachine creates a machine resting in StateClosed.
func NewMachine(cfg Config) *Machine {
	ext := cfg.Extents
	if ext == (Extents{}) {
		ext = DefaultExtents()
	}
	lock := cfg.Lock
	if lock == nil {
		lock = NopLock{}
	}
	return &Machine{
		thresholds:    normalizeThresholds(cfg.Thresholds),
		extents:       ext,
		rubberEnabled: !cfg.DisableRubberBand,
		lock:          lock,
		onClose:       cfg.OnClose,
		onStateChange: cfg.OnStateChange,
		state:         StateClosed,
		glide:         animation.NewValue(0),
		spring:        animation.NewSpring(0),
		backdrop:      animation.NewValue(BackdropClosed),
	}
}

// State returns the current discrete state.
func (m *Machine) State() State { return m.state }

// IsDragging reports whether a drag gesture is live. True only while the
// sheet is presented.
func (m *Machine) IsDragging() bool { return m.isDragging }

// Offset returns the raw cumulative offset of the active gesture, zero when
// no gesture is live.
func (m *Machine) Offset() float64 { return m.offset }

// Extents returns the current size extents.
func (m *Machine) Extents() Extents { return m.extents }

// Height returns the sheet's rendered height for the current frame, always
// within [0, Extents.Expanded].
func (m *Machine) Height() float64 {
	if m.isDragging {
		return m.dragHeight
	}
	switch m.driver {
	case driverGlide:
		return m.glide.Current()
	case driverSpring:
		return m.spring.Current()
	}
	return m.restingHeight(m.state)
}

// Progress reports expansion progress in [0, 1].
func (m *Machine) Progress() float64 {
	return m.extents.Progress(m.Height())
}

// BackdropOpacity returns the backdrop's current opacity.
func (m *Machine) BackdropOpacity() float64 { return m.backdrop.Current() }

// Overdrag returns how far the live gesture has pulled past the nominal
// extents after rubber-band resistance, in px (negative = above the
// expanded extent). Hosts may translate the surface by it for elastic feel;
// the rendered height itself never exceeds the extents.
func (m *Machine) Overdrag() float64 {
	if !m.isDragging {
		return 0
	}
	travel := m.extents.Travel()
	if m.bounded < -travel {
		return m.bounded + travel
	}
	if m.bounded > 0 && m.dragOriginState == StateCollapsed {
		return m.bounded
	}
	return 0
}

// Open presents the sheet: Closed -> Collapsed with backdrop fade-in and a
// height animation from zero. No-op unless the sheet is fully closed.
func (m *Machine) Open() {
	if m.state != StateClosed || m.closing {
		return
	}
	m.commit(StateCollapsed)
	m.startGlide(0, m.extents.Collapsed, animation.Settle{
		Duration: openDuration,
		Curve:    animation.EaseOut,
	})
}

// Expand animates Collapsed -> Expanded with the soft reveal curve and a
// short content-reveal delay.
func (m *Machine) Expand() {
	if m.state != StateCollapsed || m.isDragging || m.closing {
		return
	}
	from := m.Height()
	m.commit(StateExpanded)
	m.startGlide(from, m.extents.Expanded, animation.Settle{
		Duration: expandDuration,
		Delay:    expandRevealDelay,
		Curve:    animation.Reveal,
	})
}

// Collapse animates Expanded -> Collapsed, faster and sharper than Expand.
func (m *Machine) Collapse() {
	if m.state != StateExpanded || m.isDragging || m.closing {
		return
	}
	from := m.Height()
	m.commit(StateCollapsed)
	m.startGlide(from, m.extents.Collapsed, animation.Settle{
		Duration: collapseDuration,
		Curve:    animation.Sharp,
	})
}

// Close dismisses the sheet from any presented state: the height settles
// back toward the collapsed extent while the backdrop fades out, then all
// transient fields reset and OnClose fires. Safe to call repeatedly; only
// the first call per session has effect.
func (m *Machine) Close() {
	if m.state == StateClosed || m.closing {
		return
	}
	from := m.Height()
	if m.isDragging {
		m.isDragging = false
		m.offset = 0
	}
	m.releaseLock()
	m.closing = true
	m.commit(StateClosed)
	m.startGlide(from, m.extents.Collapsed, animation.Settle{
		Duration: dismissDuration,
		Curve:    animation.Sharp,
		OnSettle: m.finalizeClose,
	})
}

// SetExpandedHeight adopts a re-measured expanded extent. While expanded
// and at rest the height glides to the new value without re-firing the
// backdrop fade, since no discrete transition occurs.
func (m *Machine) SetExpandedHeight(h float64) {
	if h <= m.extents.Collapsed {
		return
	}
	if m.extents.Expanded == h {
		return
	}
	from := m.Height()
	m.extents.Expanded = h
	if m.state == StateExpanded && !m.isDragging && !m.closing {
		m.startGlide(from, h, animation.Settle{
			Duration: remeasureDuration,
			Curve:    animation.EaseOut,
		})
	}
}

// DragStart begins a gesture. Any in-flight settle animation is cancelled
// so the sheet tracks the live pointer, and the page scroll lock is
// acquired. Ignored while the sheet is closed.
func (m *Machine) DragStart() {
	if m.state == StateClosed || m.closing {
		return
	}
	m.dragOriginHeight = m.Height()
	m.glide.Stop()
	m.spring.Stop()
	m.driver = driverNone

	m.isDragging = true
	m.dragOriginState = m.state
	m.offset = 0
	m.bounded = 0
	m.dragHeight = m.dragOriginHeight
	m.acquireLock()
}

// DragUpdate recomputes the live height from one drag sample. Each sample
// is processed synchronously so the rendered height is never stale with
// respect to the latest input.
func (m *Machine) DragUpdate(sample gestures.DragSample) {
	if !m.isDragging {
		return
	}
	m.offset = sample.Offset

	// Express the offset relative to the collapsed resting position so
	// the rubber band sees one coordinate system regardless of where the
	// drag began.
	fromCollapsed := sample.Offset - (m.dragOriginHeight - m.extents.Collapsed)
	band := RubberBand{
		ApplyWhenOver:      m.rubberEnabled,
		MaxTravel:          m.extents.Travel(),
		ReductionFactor:    m.thresholds.RubberBandReductionFactor,
		MaxOverdrag:        m.thresholds.MaxOverdragPx,
		DownwardResistance: m.thresholds.OverdragResistanceFactor,
	}
	m.bounded = band.Apply(fromCollapsed)
	m.dragHeight = m.extents.HeightFor(m.bounded)
}

// DragEnd classifies the completed gesture and settles into the resulting
// state with spring physics that carry the release velocity.
func (m *Machine) DragEnd(sample gestures.DragSample) {
	if !m.isDragging {
		return
	}
	m.isDragging = false
	m.offset = 0

	res := Classify(sample, m.dragOriginState, m.extents.Travel(), m.thresholds)
	heightVelocity := -sample.Velocity

	switch res {
	case ResolveDismissed:
		m.releaseLock()
		m.closing = true
		m.commit(StateClosed)
		m.startSpring(m.dragHeight, m.extents.Collapsed, heightVelocity, m.finalizeClose)

	case ResolveExpanded:
		m.commit(StateExpanded)
		m.startSpring(m.dragHeight, m.extents.Expanded, heightVelocity, nil)
		m.releaseLockAfterGrace()

	case ResolveCollapsed:
		m.commit(StateCollapsed)
		m.startSpring(m.dragHeight, m.extents.Collapsed, heightVelocity, nil)
		m.releaseLock()
	}
}

// DragCancel aborts the gesture and snaps back to the current state's
// canonical height. The scroll lock is released on this exit path too.
func (m *Machine) DragCancel() {
	if !m.isDragging {
		return
	}
	m.isDragging = false
	m.offset = 0
	m.startSpring(m.dragHeight, m.restingHeight(m.state), 0, nil)
	m.releaseLock()
}

// commit performs a discrete transition. Side effects here run exactly once
// per transition, never per frame: the backdrop starts fading toward the
// new state's target the moment the state is committed.
func (m *Machine) commit(next State) {
	if next == m.state {
		return
	}
	prev := m.state
	m.state = next
	if m.onStateChange != nil {
		m.onStateChange(prev, next)
	}
	m.backdrop.SettleTo(backdropTarget(next), animation.Settle{
		Duration: backdropDuration,
		Curve:    animation.EaseOut,
	})
}

func backdropTarget(s State) float64 {
	switch s {
	case StateCollapsed:
		return BackdropCollapsed
	case StateExpanded:
		return BackdropExpanded
	}
	return BackdropClosed
}

func (m *Machine) restingHeight(s State) float64 {
	switch s {
	case StateCollapsed:
		return m.extents.Collapsed
	case StateExpanded:
		return m.extents.Expanded
	}
	return 0
}

func (m *Machine) startGlide(from, target float64, settle animation.Settle) {
	m.spring.Stop()
	prev := settle.OnSettle
	settle.OnSettle = func() {
		m.driver = driverNone
		if prev != nil {
			prev()
		}
	}
	m.glide.Set(from)
	m.driver = driverGlide
	m.glide.SettleTo(target, settle)
}

func (m *Machine) startSpring(from, target, velocity float64, onSettle func()) {
	m.glide.Stop()
	m.spring.Set(from)
	m.driver = driverSpring
	m.spring.SettleTo(target, velocity, func() {
		m.driver = driverNone
		if onSettle != nil {
			onSettle()
		}
	})
}

// finalizeClose resets every transient field so the next open starts clean.
func (m *Machine) finalizeClose() {
	m.closing = false
	m.offset = 0
	m.bounded = 0
	m.isDragging = false
	m.dragHeight = 0
	m.glide.Set(0)
	m.spring.Set(0)
	m.driver = driverNone
	m.releaseLock()
	if m.onClose != nil {
		m.onClose()
	}
}

func (m *Machine) acquireLock() {
	m.cancelGrace()
	if !m.lockHeld {
		m.lock.Acquire()
		m.lockHeld = true
	}
}

func (m *Machine) releaseLock() {
	m.cancelGrace()
	if m.lockHeld {
		m.lock.Release()
		m.lockHeld = false
	}
}

// releaseLockAfterGrace defers the release briefly after a drag settles
// expanded. A new drag or a close during the grace period takes over the
// held lock instead of double-acquiring.
func (m *Machine) releaseLockAfterGrace() {
	m.cancelGrace()
	if !m.lockHeld {
		return
	}
	m.graceElapsed = 0
	m.graceTicker = animation.NewTicker(func(dt time.Duration) {
		m.graceElapsed += dt
		if m.graceElapsed >= scrollUnlockGrace {
			m.releaseLock()
		}
	})
	m.graceTicker.Start()
}

func (m *Machine) cancelGrace() {
	if m.graceTicker != nil {
		m.graceTicker.Stop()
		m.graceTicker = nil
	}
}
