package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/orngfire/youtube-leaderboard/internal/model"
	"github.com/orngfire/youtube-leaderboard/internal/state"
)

func loadedView() state.View {
	return state.View{
		Phase:       state.PhaseLoaded,
		ActiveTab:   model.TabTopCreators,
		Theme:       state.ThemeLight,
		Layout:      state.LayoutDesktop,
		LastUpdated: "2025-07-15T03:00:00Z",
		Period:      &model.Period{Start: "2025-07-01", End: "2025-07-15"},
	}
}

func topCreatorsProjection() model.ViewProjection {
	return model.ViewProjection{
		Tab: model.TabTopCreators,
		Rows: []model.ProjectedRow{
			{
				DisplayRank: 1,
				Medal:       "🥇",
				Name:        "침착맨",
				Handle:      "chimchakman",
				URL:         "https://youtube.com/@chimchakman",
				Badges:      []model.BadgeDetail{{Symbol: "⭐", Name: "올라운더"}},
				Scores: &model.ScoreView{
					Total: "1,234", Basic: "500", Engagement: "300", Viral: "234", Growth: "200",
					BasicPercent: 41, EngagementPercent: 24, ViralPercent: 19, GrowthPercent: 16,
				},
				Delta: &model.DeltaView{Amount: 12, Formatted: "+12", Up: true},
			},
			{
				DisplayRank: 2,
				Medal:       "🥈",
				Name:        "슈카월드",
				Scores:      &model.ScoreView{Total: "1,100", Basic: "400", Engagement: "350", Viral: "200", Growth: "150"},
			},
		},
	}
}

func renderToString(t *testing.T, data PageData) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, data); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	return buf.String()
}

func TestRenderLoadedPage(t *testing.T) {
	html := renderToString(t, Page(loadedView(), topCreatorsProjection()))

	for _, want := range []string{
		"theme-light", "layout-desktop",
		"🏆 톱 크리에이터", "🔥 바이럴 히트",
		"🥇", "침착맨", "@chimchakman",
		"1,234", "+12",
		"2025.07.15 12:00", // KST rendering of the update time
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderExpandedRowDetails(t *testing.T) {
	v := loadedView()
	v.ExpandedRow = "침착맨"
	html := renderToString(t, Page(v, topCreatorsProjection()))

	for _, want := range []string{"상세 점수 분석", "41%", "올라운더", "채널 바로가기"} {
		if !strings.Contains(html, want) {
			t.Errorf("expanded details missing %q", want)
		}
	}
}

func TestRenderCollapsedRowHidesDetails(t *testing.T) {
	html := renderToString(t, Page(loadedView(), topCreatorsProjection()))
	if strings.Contains(html, "상세 점수 분석") {
		t.Error("details rendered without an expanded row")
	}
}

func TestRenderLoadingState(t *testing.T) {
	v := loadedView()
	v.Phase = state.PhaseLoading
	html := renderToString(t, Page(v, model.ViewProjection{Tab: model.TabTopCreators}))

	if !strings.Contains(html, "불러오는 중") {
		t.Error("loading indicator missing")
	}
	if strings.Contains(html, "leaderboard-table") {
		t.Error("table rendered during loading")
	}
}

func TestRenderErrorState(t *testing.T) {
	v := loadedView()
	v.Phase = state.PhaseError
	html := renderToString(t, Page(v, model.ViewProjection{Tab: model.TabTopCreators}))

	if !strings.Contains(html, "불러올 수 없습니다") {
		t.Error("error message missing")
	}
}

func TestRenderEmptyState(t *testing.T) {
	v := loadedView()
	v.Phase = state.PhaseEmpty
	html := renderToString(t, Page(v, model.ViewProjection{Tab: model.TabTopCreators}))

	if !strings.Contains(html, "표시할 채널이 없습니다") {
		t.Error("empty message missing")
	}
}

func TestRenderDarkMobileClasses(t *testing.T) {
	v := loadedView()
	v.Theme = state.ThemeDark
	v.Layout = state.LayoutMobile
	html := renderToString(t, Page(v, topCreatorsProjection()))

	if !strings.Contains(html, "theme-dark") || !strings.Contains(html, "layout-mobile") {
		t.Error("theme/layout body classes missing")
	}
}

func TestPageMarksActiveTab(t *testing.T) {
	v := loadedView()
	v.ActiveTab = model.TabViralHit
	data := Page(v, model.ViewProjection{Tab: model.TabViralHit})

	var active []model.Tab
	for _, tab := range data.Tabs {
		if tab.Active {
			active = append(active, tab.ID)
		}
	}
	if len(active) != 1 || active[0] != model.TabViralHit {
		t.Errorf("active tabs = %v, want [%s]", active, model.TabViralHit)
	}
}

func TestPagePlaceholderTimestamp(t *testing.T) {
	v := loadedView()
	v.LastUpdated = "not-a-timestamp"
	data := Page(v, model.ViewProjection{Tab: model.TabTopCreators})

	if data.LastUpdated != "-" {
		t.Errorf("LastUpdated = %q, want placeholder", data.LastUpdated)
	}
}
