package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/go-velo/velo/pkg/animation"
	"github.com/go-velo/velo/pkg/announce"
	"github.com/go-velo/velo/pkg/config"
	"github.com/go-velo/velo/pkg/gestures"
	"github.com/go-velo/velo/pkg/reactions"
)

// cellPixels maps one terminal row to engine pixels so the gesture
// thresholds, tuned for touch screens, still feel right under a mouse in a
// coarse cell grid.
const cellPixels = 24.0

// frameInterval is the demo's render cadence.
const frameInterval = time.Second / 60

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// memoryAdapter is an in-process reaction backend with simulated latency.
type memoryAdapter struct {
	mu      sync.Mutex
	entries []reactions.Entry
}

func newMemoryAdapter() *memoryAdapter {
	return &memoryAdapter{entries: []reactions.Entry{
		{Emoji: "🎉", Count: 12},
		{Emoji: "👍", Count: 5, UserReacted: true},
		{Emoji: "🚀", Count: 2},
	}}
}

func (a *memoryAdapter) Fetch(ctx context.Context, id string) ([]reactions.Entry, error) {
	select {
	case <-time.After(250 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]reactions.Entry, len(a.entries))
	copy(out, a.entries)
	return out, nil
}

func (a *memoryAdapter) Toggle(ctx context.Context, id, emoji string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.entries {
		if a.entries[i].Emoji == emoji {
			if a.entries[i].UserReacted {
				a.entries[i].Count--
			} else {
				a.entries[i].Count++
			}
			a.entries[i].UserReacted = !a.entries[i].UserReacted
			return nil
		}
	}
	return fmt.Errorf("unknown emoji %q", emoji)
}

func (a *memoryAdapter) Add(ctx context.Context, id, emoji string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.entries {
		if e.Emoji == emoji {
			return fmt.Errorf("emoji %q already present", emoji)
		}
	}
	a.entries = append(a.entries, reactions.Entry{Emoji: emoji, Count: 1, UserReacted: true})
	return nil
}

type demoModel struct {
	panel   *announce.Panel
	styles  demoStyles
	appName string

	width  int
	height int
	ready  bool

	// Live mouse drag.
	pointerDown bool
	pointerSeq  int64

	// measuredRows is the content's natural height, recomputed on demand
	// by the Host callbacks below.
	contentLines int
}

type demoStyles struct {
	sheet    lipgloss.Style
	title    lipgloss.Style
	meta     lipgloss.Style
	body     lipgloss.Style
	reaction lipgloss.Style
	reacted  lipgloss.Style
	backdrop lipgloss.Style
	hint     lipgloss.Style
}

func newDemoStyles(accent, backdrop string) demoStyles {
	ac := lipgloss.Color(accent)
	return demoStyles{
		sheet: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(ac).
			Padding(0, 2),
		title:    lipgloss.NewStyle().Bold(true).Foreground(ac),
		meta:     lipgloss.NewStyle().Faint(true),
		body:     lipgloss.NewStyle(),
		reaction: lipgloss.NewStyle().Padding(0, 1),
		reacted:  lipgloss.NewStyle().Padding(0, 1).Foreground(ac).Bold(true),
		backdrop: lipgloss.NewStyle().Foreground(lipgloss.Color(backdrop)),
		hint:     lipgloss.NewStyle().Faint(true),
	}
}

func newDemoModel(resolved *config.Resolved, logger *zap.Logger) *demoModel {
	m := &demoModel{
		styles:  newDemoStyles(resolved.Accent, resolved.Backdrop),
		appName: resolved.AppName,
	}
	m.panel = announce.NewPanel(announce.PanelConfig{
		Host:       m,
		Reactions:  newMemoryAdapter(),
		Logger:     logger,
		Thresholds: resolved.Thresholds,
		Extents:    resolved.Extents,
		OnClose:    func() {},
		OnContinue: func() {},
		// Bubble Tea already renders on every frame tick; the tick
		// handler calls Refresh, so no extra wakeup is needed.
		RequestFrame: nil,
	})
	return m
}

// MeasureContent reports the announcement's natural height in engine px.
func (m *demoModel) MeasureContent() (float64, error) {
	if m.contentLines == 0 {
		return 0, fmt.Errorf("content not laid out yet")
	}
	return float64(m.contentLines) * cellPixels, nil
}

// ViewportHeight bounds the expanded extent.
func (m *demoModel) ViewportHeight() float64 {
	return float64(m.height) * cellPixels
}

func (m *demoModel) Init() tea.Cmd {
	return frameTick()
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case frameMsg:
		animation.StepTickers()
		m.panel.Refresh()
		return m, frameTick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *demoModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "o":
		m.panel.Open(announce.Payload{
			ID:    "release-2026-08",
			Title: "velo 1.4 is live",
			Date:  "2026-08-23",
			Time:  "10:00 UTC",
			Body: "Spring-settled drags, elastic overdrag and content-aware\n" +
				"sizing are now on for everyone. Drag this sheet up to read\n" +
				"the full notes, or fling it down to dismiss.\n\n" +
				"The expanded height follows the rendered content, so adding\n" +
				"a reaction below re-measures and the sheet glides to fit.",
		})
	case "e":
		m.panel.Expand()
	case "c":
		m.panel.Collapse()
	case "esc":
		m.panel.HandleEscape()
	case "enter":
		m.panel.Continue()
	case "t":
		m.panel.ToggleReaction("🎉")
	case "a":
		m.panel.AddReaction("🔥")
	}
	return m, nil
}

// handleMouse turns terminal mouse traffic into pointer events for the drag
// recognizer. A press on the backdrop (above the sheet) closes instead.
func (m *demoModel) handleMouse(msg tea.MouseMsg) {
	pos := gestures.Point{
		X: float64(msg.X) * cellPixels,
		Y: float64(msg.Y) * cellPixels,
	}
	now := time.Now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.panel.IsOpen() && msg.Y < m.sheetTopRow() {
			m.panel.HandleBackdropTap()
			return
		}
		m.pointerDown = true
		m.pointerSeq++
		m.panel.HandlePointer(gestures.PointerEvent{
			PointerID: m.pointerSeq, Phase: gestures.PhaseDown, Position: pos, Time: now,
		})
	case tea.MouseActionMotion:
		if !m.pointerDown {
			return
		}
		m.panel.HandlePointer(gestures.PointerEvent{
			PointerID: m.pointerSeq, Phase: gestures.PhaseMove, Position: pos, Time: now,
		})
	case tea.MouseActionRelease:
		if !m.pointerDown {
			return
		}
		m.pointerDown = false
		m.panel.HandlePointer(gestures.PointerEvent{
			PointerID: m.pointerSeq, Phase: gestures.PhaseUp, Position: pos, Time: now,
		})
	}
}

func (m *demoModel) sheetRows() int {
	rows := int(m.panel.Machine().Height() / cellPixels)
	if rows > m.height-1 {
		rows = m.height - 1
	}
	return rows
}

func (m *demoModel) sheetTopRow() int {
	return m.height - m.sheetRows()
}

func (m *demoModel) View() string {
	if !m.ready {
		return "loading..."
	}

	rows := m.sheetRows()
	if !m.panel.IsOpen() && rows == 0 {
		hint := m.styles.hint.Render("press o to open the announcement, q quits")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, hint)
	}

	backdropRows := m.height - rows
	var b strings.Builder
	b.WriteString(m.renderBackdrop(backdropRows))
	b.WriteString(m.renderSheet(rows))
	return b.String()
}

// renderBackdrop dims the area above the sheet in proportion to the
// machine's backdrop opacity.
func (m *demoModel) renderBackdrop(rows int) string {
	opacity := m.panel.Machine().BackdropOpacity()
	fill := " "
	switch {
	case opacity > 0.4:
		fill = "▒"
	case opacity > 0.15:
		fill = "░"
	}
	line := m.styles.backdrop.Render(strings.Repeat(fill, max(m.width, 1)))
	var b strings.Builder
	for i := 0; i < rows; i++ {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *demoModel) renderSheet(rows int) string {
	if rows <= 0 {
		return ""
	}
	payload := m.panel.Payload()
	mask := m.panel.Mask()

	var lines []string
	lines = append(lines, m.styles.title.Render(payload.Title))
	lines = append(lines, m.styles.meta.Render(payload.Date+" · "+payload.Time))
	lines = append(lines, "")

	bodyLines := strings.Split(payload.Body, "\n")
	if mask.Clipped {
		maxLines := int(mask.MaxHeight / cellPixels)
		if len(bodyLines) > maxLines {
			bodyLines = append(bodyLines[:maxLines], m.styles.meta.Render("…"))
		}
	}
	for _, l := range bodyLines {
		lines = append(lines, m.styles.body.Render(l))
	}
	lines = append(lines, "", m.renderReactions())
	lines = append(lines, m.styles.hint.Render("drag · e expand · c collapse · enter continue · esc close"))

	m.contentLines = len(lines)

	content := strings.Join(lines, "\n")
	width := max(m.width-6, 20)
	box := m.styles.sheet.Width(width).Render(content)

	// Clip the rendered box to the sheet's current height so drags and
	// settles reveal it progressively.
	boxLines := strings.Split(box, "\n")
	if len(boxLines) > rows {
		boxLines = boxLines[:rows]
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(boxLines, "\n"))
}

func (m *demoModel) renderReactions() string {
	status, entries := m.panel.Reactions()
	switch status {
	case reactions.StatusLoading:
		return m.styles.meta.Render("loading reactions…")
	case reactions.StatusFailed:
		return m.styles.meta.Render("reactions unavailable")
	case reactions.StatusReady:
		if len(entries) == 0 {
			return m.styles.meta.Render("no reactions yet - t toggles 🎉, a adds 🔥")
		}
		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			label := fmt.Sprintf("%s %d", e.Emoji, e.Count)
			if e.UserReacted {
				parts = append(parts, m.styles.reacted.Render(label))
			} else {
				parts = append(parts, m.styles.reaction.Render(label))
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

var _ announce.Host = (*demoModel)(nil)
var _ reactions.Adapter = (*memoryAdapter)(nil)
