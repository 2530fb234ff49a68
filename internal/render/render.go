// Package render produces the server-side HTML of the leaderboard page.
// The page is re-rendered in full on every projection change; nothing is
// patched incrementally.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/orngfire/youtube-leaderboard/internal/format"
	"github.com/orngfire/youtube-leaderboard/internal/model"
	"github.com/orngfire/youtube-leaderboard/internal/state"
)

//go:embed templates/*.html
var templateFS embed.FS

// TabInfo describes one tab button.
type TabInfo struct {
	ID     model.Tab
	Label  string
	Active bool
}

var tabLabels = map[model.Tab]string{
	model.TabTopCreators:    "🏆 톱 크리에이터",
	model.TabMostActive:     "🎬 최다 활동",
	model.TabMostSubscribed: "👥 최다 구독",
	model.TabViralHit:       "🔥 바이럴 히트",
}

// PageData is everything the page template needs for one render pass.
type PageData struct {
	Phase       state.Phase
	Theme       state.Theme
	Layout      state.Layout
	Tabs        []TabInfo
	Projection  model.ViewProjection
	ExpandedRow string
	LastUpdated string
	Period      *model.Period
}

// Renderer holds the parsed page template.
type Renderer struct {
	pageTmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	pageTmpl, err := template.New("leaderboard.html").ParseFS(templateFS, "templates/leaderboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse leaderboard template: %w", err)
	}
	return &Renderer{pageTmpl: pageTmpl}, nil
}

// Page builds PageData from the machine view and its derived projection.
func Page(v state.View, proj model.ViewProjection) PageData {
	tabs := make([]TabInfo, 0, len(model.Tabs))
	for _, tab := range model.Tabs {
		tabs = append(tabs, TabInfo{
			ID:     tab,
			Label:  tabLabels[tab],
			Active: tab == v.ActiveTab,
		})
	}
	return PageData{
		Phase:       v.Phase,
		Theme:       v.Theme,
		Layout:      v.Layout,
		Tabs:        tabs,
		Projection:  proj,
		ExpandedRow: v.ExpandedRow,
		LastUpdated: format.TimestampOrPlaceholder(v.LastUpdated),
		Period:      v.Period,
	}
}

// RenderPage writes the full page HTML.
func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	return r.pageTmpl.Execute(w, data)
}
