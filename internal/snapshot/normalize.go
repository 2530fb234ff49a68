// Package snapshot loads and normalizes leaderboard payloads. Two snapshot
// generations exist in the wild: an early one with the list under
// "leaderboard" and flat "*_score" fields, and the current one with
// "channels", a nested "score_breakdown" object and a "metrics" object.
// Normalization resolves each logical field through its alias chain, first
// present wins, and defaults anything missing to zero.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/orngfire/youtube-leaderboard/internal/model"
)

// ErrMalformedSnapshot reports a payload with no channel list under either
// accepted key, or a list that is not a sequence. Display-wise it is treated
// like a transport failure; it is logged separately as a data-contract issue.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// listKeys are the accepted top-level channel-list keys, newest first.
var listKeys = []string{"channels", "leaderboard"}

// Normalize parses an arbitrary snapshot document into the canonical model.
// The input is never mutated; all records are freshly built.
func Normalize(data []byte) (*model.Snapshot, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	list, err := channelList(raw)
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		LastUpdated: str(raw, "last_updated"),
		Period:      period(raw),
		Channels:    make([]model.Channel, 0, len(list)),
	}
	for _, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		snap.Channels = append(snap.Channels, normalizeChannel(rec))
	}
	return snap, nil
}

func channelList(raw map[string]any) ([]any, error) {
	for _, key := range listKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a list", ErrMalformedSnapshot, key)
		}
		return list, nil
	}
	return nil, fmt.Errorf("%w: no channel list under %v", ErrMalformedSnapshot, listKeys)
}

func period(raw map[string]any) *model.Period {
	m, ok := raw["period"].(map[string]any)
	if !ok {
		return nil
	}
	return &model.Period{Start: str(m, "start"), End: str(m, "end")}
}

func normalizeChannel(rec map[string]any) model.Channel {
	breakdown, _ := rec["score_breakdown"].(map[string]any)
	metrics, _ := rec["metrics"].(map[string]any)

	ch := model.Channel{
		Rank:   int(num(rec, "rank")),
		Name:   str(rec, "name"),
		Handle: str(rec, "channel_handle"),
		URL:    str(rec, "channel_url"),
		Status: str(rec, "status"),

		TotalScore: num(rec, "total_score"),
		// Breakdown-first precedence: the nested object wins over the
		// legacy flat fields whenever both are present.
		Breakdown: model.ScoreBreakdown{
			Basic:      alias(breakdown, "basic", rec, "basic_score"),
			Engagement: alias(breakdown, "engagement", rec, "engagement_score"),
			Viral:      alias(breakdown, "viral", rec, "viral_score"),
			Growth:     alias(breakdown, "growth", rec, "growth_score"),
		},
		Metrics: model.Metrics{
			VideoCount:              int(num(metrics, "video_count")),
			TotalVideoCount:         int(num(metrics, "total_video_count")),
			AverageViews:            num(metrics, "average_views"),
			AverageLikes:            num(metrics, "average_likes"),
			SubscriberCount:         int64(num(metrics, "subscriber_count")),
			SubscriberChange:        int64(num(metrics, "subscriber_change")),
			SubscriberChangePercent: num(metrics, "subscriber_change_percent"),
			ViralVideo:              viralVideo(metrics),
			MedianScore:             num(metrics, "median_score"),
			AvgEngagement:           num(metrics, "avg_engagement"),
			Top3Avg:                 num(metrics, "top3_avg"),
			GrowthRatio:             num(metrics, "growth_ratio"),
		},

		Badges:            badges(rec),
		BadgeDescriptions: badgeDescriptions(rec),
	}

	if ch.Status == "" {
		ch.Status = model.StatusSuccess
	}
	if ch.Status != model.StatusSuccess {
		// A channel the producer could not resolve scores as zero; its
		// score fields are never shown as real data.
		ch.TotalScore = 0
		ch.Breakdown = model.ScoreBreakdown{}
	}
	if ch.Handle == "" {
		ch.Handle = handleFromURL(ch.URL)
	}
	return ch
}

func viralVideo(metrics map[string]any) *model.ViralVideo {
	m, ok := metrics["viral_video"].(map[string]any)
	if !ok {
		return nil
	}
	return &model.ViralVideo{
		Views:    int64(num(m, "views")),
		Likes:    int64(num(m, "likes")),
		Comments: int64(num(m, "comments")),
	}
}

// badges reads the badge list, dropping non-strings and duplicates while
// preserving first-seen order.
func badges(rec map[string]any) []string {
	list, ok := rec["badges"].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// badgeDescriptions accepts both description shapes: the current
// {name, message} object and the early plain-string message.
func badgeDescriptions(rec map[string]any) map[string]model.BadgeDescription {
	m, ok := rec["badge_descriptions"].(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]model.BadgeDescription, len(m))
	for symbol, v := range m {
		switch d := v.(type) {
		case map[string]any:
			out[symbol] = model.BadgeDescription{
				Name:    str(d, "name"),
				Message: str(d, "message"),
			}
		case string:
			out[symbol] = model.BadgeDescription{Message: d}
		}
	}
	return out
}

// handleFromURL derives a handle from a channel URL: the segment after the
// last '@', as the producer does when exporting.
func handleFromURL(url string) string {
	if i := strings.LastIndex(url, "@"); i >= 0 {
		return url[i+1:]
	}
	return ""
}

// alias resolves a score component: nested breakdown key first, then the
// legacy flat key, then zero.
func alias(breakdown map[string]any, nested string, rec map[string]any, flat string) float64 {
	if breakdown != nil {
		if v, ok := toFloat(breakdown[nested]); ok {
			return v
		}
	}
	return num(rec, flat)
}

func num(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	v, ok := toFloat(m[key])
	if !ok {
		return 0
	}
	return v
}

func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
