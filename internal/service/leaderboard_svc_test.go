package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/orngfire/youtube-leaderboard/internal/model"
	"github.com/orngfire/youtube-leaderboard/internal/snapshot"
	"github.com/orngfire/youtube-leaderboard/internal/state"
)

func fixtureSource(t *testing.T, payload string) snapshot.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	return snapshot.NewFileSource("fixture", path)
}

func newService(t *testing.T, sources ...snapshot.Source) (*LeaderboardService, *state.Machine) {
	t.Helper()
	machine := state.NewMachine()
	loader := snapshot.NewLoader(zerolog.Nop(), sources...)
	cache := NewCacheService("", zerolog.Nop())
	return NewLeaderboardService(loader, cache, machine, zerolog.Nop()), machine
}

func TestRefresh_SuccessLoadsMachine(t *testing.T) {
	src := fixtureSource(t, `{
		"last_updated": "2025-10-14T05:30:00Z",
		"channels": [{"name": "A", "rank": 1, "total_score": 1000}]
	}`)
	svc, machine := newService(t, src)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	v := machine.Snapshot()
	if v.Phase != state.PhaseLoaded {
		t.Errorf("phase = %q, want loaded", v.Phase)
	}
	if len(v.Channels) != 1 || v.Channels[0].Name != "A" {
		t.Errorf("channels = %+v", v.Channels)
	}
}

func TestRefresh_EmptyListGoesEmpty(t *testing.T) {
	svc, machine := newService(t, fixtureSource(t, `{"channels": []}`))

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if v := machine.Snapshot(); v.Phase != state.PhaseEmpty {
		t.Errorf("phase = %q, want empty", v.Phase)
	}
}

func TestRefresh_TransportFailureGoesError(t *testing.T) {
	svc, machine := newService(t, snapshot.NewFileSource("fixture", filepath.Join(t.TempDir(), "missing.json")))

	err := svc.Refresh(context.Background())
	if !errors.Is(err, snapshot.ErrTransportFailure) {
		t.Fatalf("err = %v, want ErrTransportFailure", err)
	}
	if v := machine.Snapshot(); v.Phase != state.PhaseError {
		t.Errorf("phase = %q, want error", v.Phase)
	}
}

func TestRefresh_MalformedGoesError(t *testing.T) {
	svc, machine := newService(t, fixtureSource(t, `{"unexpected": true}`))

	err := svc.Refresh(context.Background())
	if !errors.Is(err, snapshot.ErrMalformedSnapshot) {
		t.Fatalf("err = %v, want ErrMalformedSnapshot", err)
	}
	if v := machine.Snapshot(); v.Phase != state.PhaseError {
		t.Errorf("phase = %q, want error", v.Phase)
	}
}

func TestRefresh_SecondRefreshProducesDeltas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	write := func(payload string) {
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write(`{"channels": [{"name": "A", "rank": 1, "total_score": 900}]}`)
	svc, _ := newService(t, snapshot.NewFileSource("fixture", path))
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	write(`{"channels": [{"name": "A", "rank": 1, "total_score": 1000}]}`)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	proj := svc.Projection(model.TabTopCreators)
	d := proj.Rows[0].Delta
	if d == nil || d.Amount != 100 || !d.Up {
		t.Errorf("delta = %+v, want up +100", d)
	}
}

func TestProjection_UsesActiveSnapshot(t *testing.T) {
	svc, _ := newService(t, fixtureSource(t, `{
		"channels": [
			{"name": "A", "rank": 1, "total_score": 1000, "metrics": {"video_count": 5}},
			{"name": "B", "rank": 2, "total_score": 500, "metrics": {"video_count": 10}}
		]
	}`))
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	proj := svc.Projection(model.TabMostActive)
	if proj.Rows[0].Name != "B" {
		t.Errorf("most-active row 0 = %q, want B", proj.Rows[0].Name)
	}
}

func TestThemePersistence_DisabledCacheStillTogglesMachine(t *testing.T) {
	svc, machine := newService(t, fixtureSource(t, `{"channels": []}`))

	if got := svc.ToggleTheme(context.Background()); got != state.ThemeDark {
		t.Errorf("ToggleTheme = %q, want dark", got)
	}
	if v := machine.Snapshot(); v.Theme != state.ThemeDark {
		t.Errorf("machine theme = %q, want dark", v.Theme)
	}
}
