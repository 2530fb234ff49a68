package model

// Channel status values assigned by the snapshot producer.
const (
	StatusSuccess         = "success"
	StatusChannelNotFound = "channel_not_found"
)

// Channel is the canonical per-creator record after schema normalization.
// Every numeric field is defaulted to zero when absent from the source
// snapshot; badge symbols preserve the producer's insertion order.
type Channel struct {
	Rank              int                         `json:"rank"`
	Name              string                      `json:"name"`
	Handle            string                      `json:"channel_handle,omitempty"`
	URL               string                      `json:"channel_url,omitempty"`
	Badges            []string                    `json:"badges"`
	BadgeDescriptions map[string]BadgeDescription `json:"badge_descriptions,omitempty"`
	TotalScore        float64                     `json:"total_score"`
	Breakdown         ScoreBreakdown              `json:"score_breakdown"`
	Metrics           Metrics                     `json:"metrics"`
	Status            string                      `json:"status"`
}

// ScoreBreakdown holds the four component scores. Their sum need not equal
// TotalScore exactly, but percentage displays treat it as if it does.
type ScoreBreakdown struct {
	Basic      float64 `json:"basic"`
	Engagement float64 `json:"engagement"`
	Viral      float64 `json:"viral"`
	Growth     float64 `json:"growth"`
}

// Metrics carries the pre-computed per-channel statistics from the producer.
type Metrics struct {
	VideoCount              int         `json:"video_count"`
	TotalVideoCount         int         `json:"total_video_count"`
	AverageViews            float64     `json:"average_views"`
	AverageLikes            float64     `json:"average_likes"`
	SubscriberCount         int64       `json:"subscriber_count"`
	SubscriberChange        int64       `json:"subscriber_change"`
	SubscriberChangePercent float64     `json:"subscriber_change_percent"`
	ViralVideo              *ViralVideo `json:"viral_video,omitempty"`
	MedianScore             float64     `json:"median_score"`
	AvgEngagement           float64     `json:"avg_engagement"`
	Top3Avg                 float64     `json:"top3_avg"`
	GrowthRatio             float64     `json:"growth_ratio"`
}

// ViralVideo is the single highest-viewed video in the evaluation window.
type ViralVideo struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// BadgeDescription is the human-readable name/message pair for a badge symbol.
type BadgeDescription struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
