// Package state is the long-lived UI state machine: load lifecycle, active
// tab, expanded row, theme and layout. All mutation goes through the
// specific handler methods; the snapshot pair is only ever replaced as one
// unit when a fetch commits.
package state

import (
	"sync"

	"github.com/orngfire/youtube-leaderboard/internal/diff"
	"github.com/orngfire/youtube-leaderboard/internal/model"
)

// Phase is the load-lifecycle state.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
	PhaseEmpty   Phase = "empty"
)

// Theme is the persisted display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Layout is the responsive layout mode.
type Layout string

const (
	LayoutDesktop Layout = "desktop"
	LayoutMobile  Layout = "mobile"
)

// MobileBreakpoint is the viewport width at or below which the mobile
// layout applies. No hysteresis: every resize re-evaluates the comparison.
const MobileBreakpoint = 768

// Machine holds the whole application state. It has no terminal state; it
// lives for the life of the process.
type Machine struct {
	mu sync.Mutex

	phase       Phase
	activeTab   model.Tab
	expandedRow string
	theme       Theme
	layout      Layout

	current  *model.Snapshot
	previous *model.Snapshot
	deltas   map[string]float64

	// Fetch bookkeeping: at most one fetch is in flight, and commits are
	// last-commit-wins by issuance order, not resolution order.
	loading      bool
	issuedGen    uint64
	committedGen uint64
}

// NewMachine starts in Loading with the defaults: top-creators tab, light
// theme, desktop layout.
func NewMachine() *Machine {
	return &Machine{
		phase:     PhaseLoading,
		activeTab: model.TabTopCreators,
		theme:     ThemeLight,
		layout:    LayoutDesktop,
	}
}

// BeginLoad starts a fetch and returns its generation. A request arriving
// while a fetch is already in flight is a no-op and returns ok = false.
func (m *Machine) BeginLoad() (gen uint64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loading {
		return 0, false
	}
	m.loading = true
	m.phase = PhaseLoading
	m.issuedGen++
	return m.issuedGen, true
}

// Commit installs a successfully normalized snapshot. The prior current
// becomes the previous (the only one retained), deltas are recomputed, and
// any expanded row collapses. A commit from a generation older than one
// already committed is discarded.
func (m *Machine) Commit(gen uint64, snap *model.Snapshot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen == m.issuedGen {
		m.loading = false
	}
	if gen <= m.committedGen {
		return false
	}
	m.committedGen = gen

	m.previous = m.current
	m.current = snap
	if m.previous != nil {
		m.deltas = diff.Scores(snap.Channels, m.previous.Channels)
	} else {
		m.deltas = diff.Scores(snap.Channels, nil)
	}

	m.expandedRow = ""
	if len(snap.Channels) == 0 {
		m.phase = PhaseEmpty
	} else {
		m.phase = PhaseLoaded
	}
	return true
}

// Fail records a fetch failure. If a newer snapshot already committed the
// failure is stale and ignored; otherwise the machine shows Error (keeping
// no partial data visible).
func (m *Machine) Fail(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen == m.issuedGen {
		m.loading = false
	}
	if gen <= m.committedGen {
		return
	}
	m.phase = PhaseError
}

// SwitchTab activates a tab and collapses any expanded row. Tab switches
// are refused while a fetch is in flight.
func (m *Machine) SwitchTab(tab model.Tab) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loading {
		return false
	}
	m.activeTab = tab
	m.expandedRow = ""
	return true
}

// ToggleRow expands the named row, collapsing whichever row was expanded
// before; toggling the expanded row collapses it. Only valid when loaded.
func (m *Machine) ToggleRow(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseLoaded {
		return false
	}
	if m.expandedRow == name {
		m.expandedRow = ""
	} else {
		m.expandedRow = name
	}
	return true
}

// SetTheme sets the display theme. Persistence is the caller's concern.
func (m *Machine) SetTheme(theme Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
}

// ToggleTheme flips the theme and returns the new value.
func (m *Machine) ToggleTheme() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.theme == ThemeDark {
		m.theme = ThemeLight
	} else {
		m.theme = ThemeDark
	}
	return m.theme
}

// Resize re-evaluates the layout against the breakpoint.
func (m *Machine) Resize(width int) Layout {
	m.mu.Lock()
	defer m.mu.Unlock()
	if width <= MobileBreakpoint {
		m.layout = LayoutMobile
	} else {
		m.layout = LayoutDesktop
	}
	return m.layout
}

// View is an immutable copy of the machine's observable state, taken in
// one critical section so a render never sees a half-applied update.
type View struct {
	Phase       Phase
	ActiveTab   model.Tab
	ExpandedRow string
	Theme       Theme
	Layout      Layout
	LastUpdated string
	Period      *model.Period
	Channels    []model.Channel
	Deltas      map[string]float64
}

// Snapshot returns the current observable state.
func (m *Machine) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := View{
		Phase:       m.phase,
		ActiveTab:   m.activeTab,
		ExpandedRow: m.expandedRow,
		Theme:       m.theme,
		Layout:      m.layout,
		Deltas:      m.deltas,
	}
	if m.current != nil {
		v.LastUpdated = m.current.LastUpdated
		v.Period = m.current.Period
		v.Channels = m.current.Channels
	}
	return v
}
