package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v3"

	"github.com/orngfire/youtube-leaderboard/internal/middleware"
	"github.com/orngfire/youtube-leaderboard/internal/render"
	"github.com/orngfire/youtube-leaderboard/internal/service"
)

// PageHandler serves the server-rendered leaderboard page.
type PageHandler struct {
	svc      *service.LeaderboardService
	renderer *render.Renderer
}

func NewPageHandler(svc *service.LeaderboardService, renderer *render.Renderer) *PageHandler {
	return &PageHandler{svc: svc, renderer: renderer}
}

// GetPage handles GET / — the full HTML page for the current machine state
// and active tab.
func (h *PageHandler) GetPage(c fiber.Ctx) error {
	v := h.svc.Machine().Snapshot()
	proj := h.svc.Projection(v.ActiveTab)

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, render.Page(v, proj)); err != nil {
		middleware.Logger.Error().Err(err).Msg("failed to render leaderboard page")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "RENDER_FAILED",
			"Failed to render the leaderboard page.")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
