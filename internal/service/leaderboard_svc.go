package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/orngfire/youtube-leaderboard/internal/model"
	"github.com/orngfire/youtube-leaderboard/internal/snapshot"
	"github.com/orngfire/youtube-leaderboard/internal/state"
	"github.com/orngfire/youtube-leaderboard/internal/view"
)

// ErrRefreshInFlight reports a refresh request that arrived while a fetch
// was already running. The request is a no-op, not a failure.
var ErrRefreshInFlight = errors.New("refresh already in flight")

// LeaderboardService orchestrates the pipeline: load raw snapshot, cache
// the last good copy, normalize, commit into the state machine.
type LeaderboardService struct {
	loader  *snapshot.Loader
	cache   *CacheService
	machine *state.Machine
	log     zerolog.Logger
}

func NewLeaderboardService(loader *snapshot.Loader, cache *CacheService, machine *state.Machine, log zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		loader:  loader,
		cache:   cache,
		machine: machine,
		log:     log.With().Str("component", "leaderboard").Logger(),
	}
}

// Machine exposes the state machine to the handlers.
func (s *LeaderboardService) Machine() *state.Machine {
	return s.machine
}

// Refresh runs one full refresh cycle. It is a no-op (ErrRefreshInFlight)
// while another fetch is in flight; any other error has already been
// reflected in the machine's Error state when this returns.
func (s *LeaderboardService) Refresh(ctx context.Context) error {
	gen, ok := s.machine.BeginLoad()
	if !ok {
		return ErrRefreshInFlight
	}

	start := time.Now()
	data, source, err := s.loader.Load(ctx)
	if err != nil {
		s.machine.Fail(gen)
		if Metrics.SnapshotLoads != nil {
			Metrics.SnapshotLoads.WithLabelValues("none", "transport_failure").Inc()
		}
		s.log.Error().Err(err).Msg("refresh failed: all sources exhausted")
		return err
	}

	snap, err := snapshot.Normalize(data)
	if err != nil {
		s.machine.Fail(gen)
		if Metrics.SnapshotLoads != nil {
			Metrics.SnapshotLoads.WithLabelValues(source, "malformed").Inc()
		}
		// Same as a transport failure for display, but a data-contract
		// violation worth telling apart in the logs.
		s.log.Error().Err(err).Str("source", source).Msg("refresh failed: malformed snapshot")
		return err
	}

	if !s.machine.Commit(gen, snap) {
		s.log.Warn().Str("source", source).Msg("stale fetch discarded")
		return nil
	}

	if err := s.cache.SetSnapshot(ctx, data); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache snapshot")
	}

	if Metrics.SnapshotLoads != nil {
		Metrics.SnapshotLoads.WithLabelValues(source, "success").Inc()
		Metrics.RefreshDuration.Observe(time.Since(start).Seconds())
		Metrics.ChannelsTracked.Set(float64(len(snap.Channels)))
	}
	s.log.Info().
		Str("source", source).
		Int("channels", len(snap.Channels)).
		Dur("took", time.Since(start)).
		Msg("snapshot refreshed")
	return nil
}

// Projection derives the ranked view for a tab from the current snapshot,
// with score deltas against the previous one attached.
func (s *LeaderboardService) Projection(tab model.Tab) model.ViewProjection {
	v := s.machine.Snapshot()
	return view.Derive(v.Channels, tab, v.Deltas)
}

// RestoreTheme applies the persisted theme preference, defaulting to light.
func (s *LeaderboardService) RestoreTheme(ctx context.Context) {
	saved, err := s.cache.GetTheme(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read persisted theme")
		return
	}
	if saved == string(state.ThemeDark) {
		s.machine.SetTheme(state.ThemeDark)
	}
}

// SetTheme updates the machine and persists the preference.
func (s *LeaderboardService) SetTheme(ctx context.Context, theme state.Theme) {
	s.machine.SetTheme(theme)
	if err := s.cache.SetTheme(ctx, string(theme)); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist theme")
	}
}

// ToggleTheme flips the theme, persists it, and returns the new value.
func (s *LeaderboardService) ToggleTheme(ctx context.Context) state.Theme {
	theme := s.machine.ToggleTheme()
	if err := s.cache.SetTheme(ctx, string(theme)); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist theme")
	}
	return theme
}
