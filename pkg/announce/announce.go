// Package announce is the canonical sheet consumer: an announcement panel
// with a title/body payload and an emoji-reaction row. It wires the state
// machine, the reaction store, the content mask and the host's measurement
// capabilities into one component; the host only forwards input events and
// renders from accessors.
package announce

import (
	"go.uber.org/zap"

	"github.com/go-velo/velo/pkg/gestures"
	"github.com/go-velo/velo/pkg/reactions"
	"github.com/go-velo/velo/pkg/sheet"
)

// Payload is the announcement content. Read-only to the engine; the panel
// never interprets the body.
type Payload struct {
	ID    string
	Title string
	Date  string
	Time  string
	Body  string
}

// Host is what the UI layer must provide. MeasureContent reads the natural
// height of the rendered content subtree and may fail before first layout;
// ViewportHeight bounds how tall the sheet may grow.
type Host interface {
	MeasureContent() (float64, error)
	ViewportHeight() float64
}

// PanelConfig assembles a Panel. Zero fields take defaults.
type PanelConfig struct {
	Host      Host
	Reactions reactions.Adapter
	// Logger records measurement and reaction failures. Nil means no
	// logging.
	Logger *zap.Logger

	Thresholds sheet.Thresholds
	Extents    sheet.Extents
	Lock       sheet.Lock

	// OnClose fires once per presentation, whatever the close path was.
	OnClose func()
	// OnContinue fires only from the explicit continue action, before the
	// panel closes.
	OnContinue func()
	// RequestFrame asks the host to schedule a frame (and a Refresh call).
	// Reaction results arrive on background goroutines and re-enter the
	// panel through this; may be invoked off the host loop.
	RequestFrame func()
}

// Panel is single-threaded like the Machine it owns: call it from the host
// event loop only.
type Panel struct {
	machine   *sheet.Machine
	store     *reactions.Store
	remeasure sheet.Remeasurer
	tracker   *gestures.VerticalDragTracker

	host     Host
	logger   *zap.Logger
	fallback float64

	payload    Payload
	isOpen     bool
	onClose    func()
	onContinue func()
}

// NewPanel creates a closed panel.
func NewPanel(cfg PanelConfig) *Panel {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ext := cfg.Extents
	if ext == (sheet.Extents{}) {
		ext = sheet.DefaultExtents()
	}

	p := &Panel{
		host:       cfg.Host,
		logger:     logger,
		fallback:   ext.Expanded,
		onClose:    cfg.OnClose,
		onContinue: cfg.OnContinue,
	}
	p.machine = sheet.NewMachine(sheet.Config{
		Thresholds:    cfg.Thresholds,
		Extents:       ext,
		Lock:          cfg.Lock,
		OnClose:       p.finishClose,
		OnStateChange: p.stateChanged,
	})
	p.store = reactions.NewStore(reactions.StoreConfig{
		Adapter:  cfg.Reactions,
		Logger:   logger,
		OnChange: cfg.RequestFrame,
	})
	p.remeasure = sheet.Remeasurer{
		Measure: p.measure,
		Apply:   p.applyMeasurement,
	}
	p.tracker = &gestures.VerticalDragTracker{
		ShouldStart: func(float64) bool { return p.isOpen },
		OnStart:     func(gestures.DragStartDetails) { p.machine.DragStart() },
		OnUpdate:    func(d gestures.DragUpdateDetails) { p.machine.DragUpdate(d.Sample) },
		OnEnd:       func(d gestures.DragEndDetails) { p.machine.DragEnd(d.Sample) },
		OnCancel:    p.machine.DragCancel,
	}
	return p
}

// Open presents the panel for one announcement. The reaction fetch fires
// here, exactly once per presentation; renders never fetch.
func (p *Panel) Open(payload Payload) {
	if p.isOpen {
		return
	}
	p.isOpen = true
	p.payload = payload
	p.machine.Open()
	p.store.Open(payload.ID)
}

// Close dismisses the panel. OnClose fires after the dismiss animation
// completes. Never blocks on in-flight reaction requests.
func (p *Panel) Close() {
	if !p.isOpen {
		return
	}
	p.machine.Close()
}

// Continue fires the continue callback and closes. This is the only path
// that emits OnContinue.
func (p *Panel) Continue() {
	if !p.isOpen {
		return
	}
	if p.onContinue != nil {
		p.onContinue()
	}
	p.Close()
}

// HandleEscape closes the panel, same as tapping the backdrop.
func (p *Panel) HandleEscape() { p.Close() }

// HandleBackdropTap closes the panel.
func (p *Panel) HandleBackdropTap() { p.Close() }

// HandlePointer feeds one pointer event through the drag recognizer. Drags
// that win move the sheet; everything else is ignored here.
func (p *Panel) HandlePointer(ev gestures.PointerEvent) {
	p.tracker.Handle(ev)
}

// Expand and Collapse drive the programmatic transitions, e.g. from a
// chevron button.
func (p *Panel) Expand()   { p.machine.Expand() }
func (p *Panel) Collapse() { p.machine.Collapse() }

// Refresh is called by the host once per frame (or on RequestFrame). It
// reconciles content identity with the re-measurement scheduler.
func (p *Panel) Refresh() {
	if !p.isOpen {
		return
	}
	_, entries := p.store.Snapshot()
	p.remeasure.NoteContent(p.machine.State(), sheet.ContentKey{
		PayloadID: p.payload.ID,
		Reactions: len(entries),
	})
}

// Machine exposes the state machine for rendering (height, progress,
// backdrop opacity, overdrag translation).
func (p *Panel) Machine() *sheet.Machine { return p.machine }

// Payload returns the currently presented announcement.
func (p *Panel) Payload() Payload { return p.payload }

// IsOpen reports whether a presentation session is live.
func (p *Panel) IsOpen() bool { return p.isOpen }

// Reactions returns the reaction row's lifecycle status and entries.
func (p *Panel) Reactions() (reactions.Status, []reactions.Entry) {
	return p.store.Snapshot()
}

// ToggleReaction and AddReaction forward to the store. Fire-and-forget;
// counts move only after the backend confirms.
func (p *Panel) ToggleReaction(emoji string) { p.store.Toggle(emoji) }
func (p *Panel) AddReaction(emoji string)    { p.store.Add(emoji) }

// Mask returns the body clip decision for the current state.
func (p *Panel) Mask() sheet.MaskSpec {
	return sheet.MaskFor(p.machine.State())
}

func (p *Panel) stateChanged(prev, next sheet.State) {
	if next == sheet.StateExpanded {
		p.remeasure.Request()
	}
}

func (p *Panel) measure() (float64, error) {
	if p.host == nil {
		return 0, nil
	}
	return p.host.MeasureContent()
}

func (p *Panel) applyMeasurement(measured float64, err error) {
	if err != nil {
		p.logger.Warn("content measurement failed",
			zap.String("announcement", p.payload.ID),
			zap.Error(err))
		// A stale measurement from an earlier pass must not linger.
		p.machine.SetExpandedHeight(p.fallback)
		return
	}
	viewport := 0.0
	if p.host != nil {
		viewport = p.host.ViewportHeight()
	}
	p.machine.SetExpandedHeight(sheet.ResolveExpandedHeight(measured, viewport, p.fallback))
}

// finishClose runs after the dismiss animation, whatever triggered it.
func (p *Panel) finishClose() {
	p.isOpen = false
	p.remeasure.Cancel()
	p.store.Close()
	if p.onClose != nil {
		p.onClose()
	}
}
