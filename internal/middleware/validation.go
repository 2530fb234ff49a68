package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/orngfire/youtube-leaderboard/internal/model"
	"github.com/orngfire/youtube-leaderboard/internal/state"
)

// Viewport width sanity bounds (logical pixels).
const (
	MinViewportWidth = 1
	MaxViewportWidth = 16384
)

// Max channel name length accepted from a row-toggle request; the snapshot
// producer never emits longer names.
const MaxChannelNameLen = 200

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateTab checks a tab identifier. Empty is allowed (caller defaults to
// the active tab); anything else must name one of the four views.
func ValidateTab(tab string) (string, string) {
	tab = strings.TrimSpace(tab)
	if tab == "" {
		return "", ""
	}
	if !model.ValidTab(tab) {
		return "", "tab must be one of: top-creators, most-active, most-subscribed, viral-hit"
	}
	return tab, ""
}

// ValidateTheme checks a theme value.
func ValidateTheme(theme string) (string, string) {
	theme = strings.TrimSpace(strings.ToLower(theme))
	switch state.Theme(theme) {
	case state.ThemeLight, state.ThemeDark:
		return theme, ""
	}
	return "", "theme must be light or dark"
}

// ValidateRowName checks the channel name in a row-toggle request.
func ValidateRowName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "name is required"
	}
	if len(name) > MaxChannelNameLen {
		return "", "name is too long"
	}
	return name, ""
}

// ValidateViewportWidth checks the reported viewport width.
func ValidateViewportWidth(width int) (int, string) {
	if width < MinViewportWidth || width > MaxViewportWidth {
		return 0, "width must be a positive viewport width"
	}
	return width, ""
}
