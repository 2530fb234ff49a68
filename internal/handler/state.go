package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/orngfire/youtube-leaderboard/internal/middleware"
	"github.com/orngfire/youtube-leaderboard/internal/model"
	"github.com/orngfire/youtube-leaderboard/internal/service"
	"github.com/orngfire/youtube-leaderboard/internal/state"
)

// StateHandler owns the endpoints that mutate UI state: refresh, tab
// selection, row expansion, theme and viewport.
type StateHandler struct {
	svc *service.LeaderboardService
}

func NewStateHandler(svc *service.LeaderboardService) *StateHandler {
	return &StateHandler{svc: svc}
}

// Refresh handles POST /api/refresh — the manual refresh trigger. A
// request arriving while a fetch is in flight is acknowledged but does
// nothing.
func (h *StateHandler) Refresh(c fiber.Ctx) error {
	err := h.svc.Refresh(c.Context())
	if errors.Is(err, service.ErrRefreshInFlight) {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "loading"})
	}
	if err != nil {
		// The machine is already in Error; report the generic message.
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "REFRESH_FAILED",
			"Failed to refresh leaderboard data.")
	}
	return c.JSON(fiber.Map{"status": string(h.svc.Machine().Snapshot().Phase)})
}

// SwitchTab handles POST /api/tab.
func (h *StateHandler) SwitchTab(c fiber.Ctx) error {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	tab, errMsg := middleware.ValidateTab(req.Tab)
	if errMsg != "" || tab == "" {
		if errMsg == "" {
			errMsg = "tab is required"
		}
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_TAB", errMsg)
	}

	if !h.svc.Machine().SwitchTab(model.Tab(tab)) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "loading"})
	}
	return c.JSON(fiber.Map{"tab": tab})
}

// ToggleRow handles POST /api/rows/toggle. Expanding a row implicitly
// collapses any other expanded row; outbound channel links bypass this
// endpoint entirely, so they never flip row state.
func (h *StateHandler) ToggleRow(c fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	name, errMsg := middleware.ValidateRowName(req.Name)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if !h.svc.Machine().ToggleRow(name) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "not loaded"})
	}
	return c.JSON(fiber.Map{"expanded_row": h.svc.Machine().Snapshot().ExpandedRow})
}

// SetTheme handles POST /api/theme. An explicit value sets it; an empty
// body toggles.
func (h *StateHandler) SetTheme(c fiber.Ctx) error {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if req.Theme == "" {
		theme := h.svc.ToggleTheme(c.Context())
		return c.JSON(fiber.Map{"theme": string(theme)})
	}

	theme, errMsg := middleware.ValidateTheme(req.Theme)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_THEME", errMsg)
	}
	h.svc.SetTheme(c.Context(), state.Theme(theme))
	return c.JSON(fiber.Map{"theme": theme})
}

// Viewport handles POST /api/viewport — re-evaluates the layout against
// the breakpoint on every reported resize.
func (h *StateHandler) Viewport(c fiber.Ctx) error {
	var req struct {
		Width int `json:"width"`
	}
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	width, errMsg := middleware.ValidateViewportWidth(req.Width)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	layout := h.svc.Machine().Resize(width)
	return c.JSON(fiber.Map{"layout": string(layout)})
}
