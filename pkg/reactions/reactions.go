// Package reactions provides the data boundary between the sheet and
// whatever backend stores emoji reactions. The sheet never talks to a
// network or database directly; it renders from a Store snapshot and the
// Store talks to an Adapter.
package reactions

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Entry is one emoji row as the backend reports it. Read-only to the sheet.
type Entry struct {
	Emoji       string
	Count       int
	UserReacted bool
}

// Adapter is the backend capability the host supplies. Implementations may
// hit a network and must honor ctx cancellation.
type Adapter interface {
	Fetch(ctx context.Context, announcementID string) ([]Entry, error)
	Toggle(ctx context.Context, announcementID, emoji string) error
	Add(ctx context.Context, announcementID, emoji string) error
}

// Status is the async lifecycle of the reaction row. Ready with zero
// entries is the empty render state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// requestTimeout bounds every adapter call so a stalled backend cannot pin
// a presentation session's goroutine forever.
const requestTimeout = 10 * time.Second

// StoreConfig assembles a Store.
type StoreConfig struct {
	Adapter Adapter
	// Logger records adapter failures. Nil means no logging.
	Logger *zap.Logger
	// OnChange fires after every visible state change. It may be invoked
	// from a background goroutine; hosts typically use it to schedule a
	// repaint on their own loop.
	OnChange func()
}

// Store owns the reaction row's async state across one presentation session
// at a time. Mutations are fire-and-forget: counts change only after the
// adapter confirms, failures log and degrade silently, and results arriving
// after the session closed are dropped.
type Store struct {
	adapter  Adapter
	logger   *zap.Logger
	onChange func()

	mu         sync.Mutex
	open       bool
	id         string
	status     Status
	entries    []Entry
	generation uint64
	cancel     context.CancelFunc
}

// NewStore creates an idle store.
func NewStore(cfg StoreConfig) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		adapter:  cfg.Adapter,
		logger:   logger,
		onChange: cfg.OnChange,
		status:   StatusIdle,
	}
}

// Snapshot returns the current status and a copy of the entries for
// rendering.
func (s *Store) Snapshot() (Status, []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return s.status, out
}

// Open begins a presentation session for one announcement and fetches its
// reactions exactly once. Calling Open on an already-open store is a no-op;
// render code never triggers fetches.
func (s *Store) Open(announcementID string) {
	if s.adapter == nil {
		return
	}
	s.mu.Lock()
	if s.open {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.open = true
	s.id = announcementID
	s.status = StatusLoading
	s.entries = nil
	s.generation++
	s.cancel = cancel
	gen := s.generation
	s.mu.Unlock()

	s.notify()
	go s.fetch(ctx, gen, announcementID)
}

// Close ends the session. In-flight requests are cancelled and any of their
// results still in transit are dropped; Close never waits for them.
func (s *Store) Close() {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return
	}
	s.open = false
	s.id = ""
	s.status = StatusIdle
	s.entries = nil
	s.generation++
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.notify()
}

// Toggle flips the current user's reaction on one emoji. Fire-and-forget:
// the visible counts change only after the backend confirms, via a refetch.
func (s *Store) Toggle(emoji string) {
	s.mutate(emoji, "toggle", s.adapter.Toggle)
}

// Add registers a new reaction emoji for the current user. Fire-and-forget,
// same contract as Toggle.
func (s *Store) Add(emoji string) {
	s.mutate(emoji, "add", s.adapter.Add)
}

func (s *Store) mutate(emoji, op string, call func(context.Context, string, string) error) {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return
	}
	gen := s.generation
	id := s.id
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := call(ctx, id, emoji); err != nil {
			s.logger.Warn("reaction mutation failed",
				zap.String("op", op),
				zap.String("announcement", id),
				zap.String("emoji", emoji),
				zap.Error(err))
			return
		}
		s.fetch(ctx, gen, id)
	}()
}

// fetch loads entries and applies them if the session is still the one that
// asked.
func (s *Store) fetch(ctx context.Context, gen uint64, id string) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	entries, err := s.adapter.Fetch(ctx, id)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.status = StatusFailed
		s.entries = nil
	} else {
		s.status = StatusReady
		s.entries = entries
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("reaction fetch failed",
			zap.String("announcement", id),
			zap.Error(err))
	}
	s.notify()
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
