package model

// Tab identifies one of the four ranked views.
type Tab string

const (
	TabTopCreators    Tab = "top-creators"
	TabMostActive     Tab = "most-active"
	TabMostSubscribed Tab = "most-subscribed"
	TabViralHit       Tab = "viral-hit"
)

// Tabs lists all tabs in display order.
var Tabs = []Tab{TabTopCreators, TabMostActive, TabMostSubscribed, TabViralHit}

// ValidTab reports whether s names a known tab.
func ValidTab(s string) bool {
	switch Tab(s) {
	case TabTopCreators, TabMostActive, TabMostSubscribed, TabViralHit:
		return true
	}
	return false
}

// ViewProjection is the tab-specific ranked rendering of the current
// snapshot. It is derived on every tab switch or data refresh and never
// persisted.
type ViewProjection struct {
	Tab  Tab            `json:"tab"`
	Rows []ProjectedRow `json:"rows"`
}

// ProjectedRow is one ranked entry with all derived fields pre-formatted
// for direct display. Exactly one of the tab-specific sections is set,
// matching the projection's Tab.
type ProjectedRow struct {
	DisplayRank int    `json:"rank"`
	Medal       string `json:"medal,omitempty"`
	Name        string `json:"name"`
	Handle      string `json:"channel_handle,omitempty"`
	URL         string `json:"channel_url,omitempty"`
	NotFound    bool   `json:"not_found,omitempty"`

	Badges []BadgeDetail `json:"badges,omitempty"`

	Scores      *ScoreView      `json:"scores,omitempty"`
	Activity    *ActivityView   `json:"activity,omitempty"`
	Subscribers *SubscriberView `json:"subscribers,omitempty"`
	Viral       *ViralView      `json:"viral,omitempty"`

	Delta *DeltaView `json:"delta,omitempty"`
}

// BadgeDetail pairs a badge symbol with its resolved description.
type BadgeDetail struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message,omitempty"`
}

// ScoreView carries the top-creators fields: formatted component scores and
// their share of the total, rounded to whole percents (0 when the total is 0).
type ScoreView struct {
	Total             string `json:"total"`
	Basic             string `json:"basic"`
	Engagement        string `json:"engagement"`
	Viral             string `json:"viral"`
	Growth            string `json:"growth"`
	BasicPercent      int    `json:"basic_percent"`
	EngagementPercent int    `json:"engagement_percent"`
	ViralPercent      int    `json:"viral_percent"`
	GrowthPercent     int    `json:"growth_percent"`
}

// ActivityView carries the most-active fields.
type ActivityView struct {
	VideoCount   int    `json:"video_count"`
	AverageViews string `json:"average_views"`
	AverageLikes string `json:"average_likes"`
}

// SubscriberView carries the most-subscribed fields.
type SubscriberView struct {
	Count           string `json:"count"`
	Change          string `json:"change"`
	ChangePositive  bool   `json:"change_positive"`
	TotalVideoCount int    `json:"total_video_count"`
}

// ViralView carries the viral-hit fields. Engagement weighs comments twice:
// (likes + comments*2) / views * 100, "0" when views is 0.
type ViralView struct {
	Views      string `json:"views"`
	Likes      string `json:"likes"`
	Comments   string `json:"comments"`
	Engagement string `json:"engagement"`
}

// DeltaView is the rendered score change versus the previous snapshot.
// Rows with no change between snapshots carry no DeltaView at all.
type DeltaView struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
	Up        bool    `json:"up"`
}
