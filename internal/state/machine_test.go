package state

import (
	"testing"

	"github.com/orngfire/youtube-leaderboard/internal/model"
)

func snapWith(names ...string) *model.Snapshot {
	s := &model.Snapshot{LastUpdated: "2025-10-14T05:30:00Z"}
	for i, name := range names {
		s.Channels = append(s.Channels, model.Channel{
			Rank:       i + 1,
			Name:       name,
			TotalScore: float64(1000 - i*100),
			Status:     model.StatusSuccess,
		})
	}
	return s
}

func loaded(t *testing.T, names ...string) *Machine {
	t.Helper()
	m := NewMachine()
	gen, ok := m.BeginLoad()
	if !ok {
		t.Fatal("initial BeginLoad refused")
	}
	if !m.Commit(gen, snapWith(names...)) {
		t.Fatal("initial commit discarded")
	}
	return m
}

func TestMachine_InitialState(t *testing.T) {
	m := NewMachine()
	v := m.Snapshot()
	if v.Phase != PhaseLoading || v.ActiveTab != model.TabTopCreators ||
		v.Theme != ThemeLight || v.Layout != LayoutDesktop {
		t.Errorf("initial state = %+v", v)
	}
}

func TestMachine_LoadedOnCommit(t *testing.T) {
	m := loaded(t, "A")
	if v := m.Snapshot(); v.Phase != PhaseLoaded || len(v.Channels) != 1 {
		t.Errorf("state = %+v, want loaded with 1 channel", v)
	}
}

func TestMachine_EmptyOnZeroChannels(t *testing.T) {
	m := NewMachine()
	gen, _ := m.BeginLoad()
	m.Commit(gen, &model.Snapshot{})
	if v := m.Snapshot(); v.Phase != PhaseEmpty {
		t.Errorf("phase = %q, want empty", v.Phase)
	}
}

func TestMachine_ErrorOnFail(t *testing.T) {
	m := NewMachine()
	gen, _ := m.BeginLoad()
	m.Fail(gen)
	if v := m.Snapshot(); v.Phase != PhaseError {
		t.Errorf("phase = %q, want error", v.Phase)
	}

	// Fully recoverable by a later refresh.
	gen, ok := m.BeginLoad()
	if !ok {
		t.Fatal("refresh after error refused")
	}
	m.Commit(gen, snapWith("A"))
	if v := m.Snapshot(); v.Phase != PhaseLoaded {
		t.Errorf("phase after recovery = %q, want loaded", v.Phase)
	}
}

func TestMachine_RefreshWhileLoadingIsNoOp(t *testing.T) {
	m := NewMachine()
	if _, ok := m.BeginLoad(); !ok {
		t.Fatal("first BeginLoad refused")
	}
	if _, ok := m.BeginLoad(); ok {
		t.Error("re-entrant BeginLoad must be a no-op")
	}
}

func TestMachine_StaleCommitDiscarded(t *testing.T) {
	m := loaded(t, "A")

	// A stale fetch (older generation) resolves after a newer one committed.
	staleGen := uint64(0)
	gen2, _ := m.BeginLoad()
	m.Commit(gen2, snapWith("B"))
	if m.Commit(staleGen, snapWith("stale")) {
		t.Error("stale commit accepted")
	}
	if v := m.Snapshot(); v.Channels[0].Name != "B" {
		t.Errorf("current channel = %q, want B", v.Channels[0].Name)
	}
}

func TestMachine_StaleFailureIgnored(t *testing.T) {
	m := loaded(t, "A")
	m.Fail(0) // stale generation
	if v := m.Snapshot(); v.Phase != PhaseLoaded {
		t.Errorf("phase = %q, stale failure must not disturb loaded state", v.Phase)
	}
}

func TestMachine_DiffAgainstPreviousSnapshot(t *testing.T) {
	m := NewMachine()
	gen, _ := m.BeginLoad()
	first := snapWith("A")
	first.Channels[0].TotalScore = 900
	m.Commit(gen, first)

	gen, _ = m.BeginLoad()
	second := snapWith("A")
	second.Channels[0].TotalScore = 1000
	m.Commit(gen, second)

	v := m.Snapshot()
	if v.Deltas["A"] != 100 {
		t.Errorf("delta = %v, want +100", v.Deltas["A"])
	}
}

func TestMachine_FirstLoadHasNoDeltas(t *testing.T) {
	m := loaded(t, "A")
	if v := m.Snapshot(); len(v.Deltas) != 0 {
		t.Errorf("deltas on first load = %v, want none", v.Deltas)
	}
}

func TestMachine_TabSwitchCollapsesRowKeepsPhase(t *testing.T) {
	m := loaded(t, "A", "B")
	m.ToggleRow("A")

	if !m.SwitchTab(model.TabMostActive) {
		t.Fatal("tab switch refused while loaded")
	}
	v := m.Snapshot()
	if v.ActiveTab != model.TabMostActive || v.ExpandedRow != "" {
		t.Errorf("after tab switch: tab=%q expanded=%q", v.ActiveTab, v.ExpandedRow)
	}
	if v.Phase != PhaseLoaded {
		t.Errorf("phase = %q, tab switch must not change it", v.Phase)
	}
}

func TestMachine_TabSwitchRefusedWhileLoading(t *testing.T) {
	m := NewMachine()
	m.BeginLoad()
	if m.SwitchTab(model.TabViralHit) {
		t.Error("tab switch must be refused while loading")
	}
}

func TestMachine_SingleExpandedRow(t *testing.T) {
	m := loaded(t, "A", "B")

	m.ToggleRow("A")
	if v := m.Snapshot(); v.ExpandedRow != "A" {
		t.Fatalf("expanded = %q, want A", v.ExpandedRow)
	}

	// Expanding another row implicitly collapses the first.
	m.ToggleRow("B")
	if v := m.Snapshot(); v.ExpandedRow != "B" {
		t.Errorf("expanded = %q, want B", v.ExpandedRow)
	}

	// Toggling the expanded row collapses it.
	m.ToggleRow("B")
	if v := m.Snapshot(); v.ExpandedRow != "" {
		t.Errorf("expanded = %q, want collapsed", v.ExpandedRow)
	}
}

func TestMachine_ToggleRowRefusedOutsideLoaded(t *testing.T) {
	m := NewMachine()
	if m.ToggleRow("A") {
		t.Error("row toggle must be refused while loading")
	}
}

func TestMachine_RefreshCollapsesExpandedRow(t *testing.T) {
	m := loaded(t, "A")
	m.ToggleRow("A")

	gen, _ := m.BeginLoad()
	m.Commit(gen, snapWith("A"))
	if v := m.Snapshot(); v.ExpandedRow != "" {
		t.Errorf("expanded = %q, want collapsed after refresh", v.ExpandedRow)
	}
}

func TestMachine_ThemeToggle(t *testing.T) {
	m := NewMachine()
	if got := m.ToggleTheme(); got != ThemeDark {
		t.Errorf("first toggle = %q, want dark", got)
	}
	if got := m.ToggleTheme(); got != ThemeLight {
		t.Errorf("second toggle = %q, want light", got)
	}
}

func TestMachine_LayoutBreakpoint(t *testing.T) {
	m := NewMachine()
	if got := m.Resize(768); got != LayoutMobile {
		t.Errorf("Resize(768) = %q, want mobile (breakpoint inclusive)", got)
	}
	if got := m.Resize(769); got != LayoutDesktop {
		t.Errorf("Resize(769) = %q, want desktop", got)
	}
	if got := m.Resize(320); got != LayoutMobile {
		t.Errorf("Resize(320) = %q, want mobile", got)
	}
}
