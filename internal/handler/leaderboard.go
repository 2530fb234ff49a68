package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/orngfire/youtube-leaderboard/internal/format"
	"github.com/orngfire/youtube-leaderboard/internal/middleware"
	"github.com/orngfire/youtube-leaderboard/internal/model"
	"github.com/orngfire/youtube-leaderboard/internal/service"
	"github.com/orngfire/youtube-leaderboard/internal/state"
)

type LeaderboardHandler struct {
	svc *service.LeaderboardService
}

func NewLeaderboardHandler(svc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// GetLeaderboard handles GET /api/leaderboard?tab=
// Responds with the ranked projection for the requested tab (defaulting to
// the active one). The projection is derived fresh on every call.
func (h *LeaderboardHandler) GetLeaderboard(c fiber.Ctx) error {
	tabParam, errMsg := middleware.ValidateTab(fiber.Query[string](c, "tab"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_TAB", errMsg)
	}

	v := h.svc.Machine().Snapshot()
	switch v.Phase {
	case state.PhaseLoading:
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": string(state.PhaseLoading)})
	case state.PhaseError:
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "SNAPSHOT_UNAVAILABLE",
			"Leaderboard data is currently unavailable. Try refreshing later.")
	}

	tab := v.ActiveTab
	if tabParam != "" {
		tab = model.Tab(tabParam)
	}

	proj := h.svc.Projection(tab)
	return c.JSON(fiber.Map{
		"status":       string(v.Phase),
		"tab":          proj.Tab,
		"rows":         proj.Rows,
		"last_updated": format.TimestampOrPlaceholder(v.LastUpdated),
		"period":       v.Period,
	})
}

// GetState handles GET /api/state — the machine's observable state for the
// front end.
func (h *LeaderboardHandler) GetState(c fiber.Ctx) error {
	v := h.svc.Machine().Snapshot()
	return c.JSON(fiber.Map{
		"phase":        string(v.Phase),
		"tab":          string(v.ActiveTab),
		"expanded_row": v.ExpandedRow,
		"theme":        string(v.Theme),
		"layout":       string(v.Layout),
		"last_updated": format.TimestampOrPlaceholder(v.LastUpdated),
		"period":       v.Period,
		"channels":     len(v.Channels),
	})
}
