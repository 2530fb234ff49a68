// Package view derives the per-tab ranked projections from the canonical
// channel list. Derivation is pure and idempotent: the same channels, tab
// and delta map always produce an identical projection.
package view

import (
	"fmt"
	"math"
	"sort"

	"github.com/orngfire/youtube-leaderboard/internal/format"
	"github.com/orngfire/youtube-leaderboard/internal/model"
)

// medals for the top three display positions, on every tab.
var medals = [3]string{"🥇", "🥈", "🥉"}

// Derive produces the ordered projection for one tab. deltas maps channel
// name to the score change versus the previous snapshot; nil means no diff
// is available. The input slice is not mutated.
func Derive(channels []model.Channel, tab model.Tab, deltas map[string]float64) model.ViewProjection {
	proj := model.ViewProjection{Tab: tab, Rows: make([]model.ProjectedRow, 0, len(channels))}
	if len(channels) == 0 {
		return proj
	}

	sorted := make([]model.Channel, len(channels))
	copy(sorted, channels)
	sortChannels(sorted, tab)

	for i, ch := range sorted {
		row := baseRow(ch, tab, i)
		switch tab {
		case model.TabMostActive:
			row.Activity = activityView(ch)
		case model.TabMostSubscribed:
			row.Subscribers = subscriberView(ch)
		case model.TabViralHit:
			row.Viral = viralView(ch)
		default:
			row.Scores = scoreView(ch)
		}
		if deltas != nil {
			if d, ok := deltas[ch.Name]; ok {
				row.Delta = &model.DeltaView{
					Amount:    d,
					Formatted: format.SignedScore(d),
					Up:        d > 0,
				}
			}
		}
		proj.Rows = append(proj.Rows, row)
	}
	return proj
}

// sortChannels applies the tab's total ordering. Every comparison has an
// explicit tie-break, so the result is deterministic for any input order.
func sortChannels(chs []model.Channel, tab model.Tab) {
	switch tab {
	case model.TabMostActive:
		sort.Slice(chs, func(i, j int) bool {
			a, b := chs[i].Metrics.VideoCount, chs[j].Metrics.VideoCount
			if a != b {
				return a > b
			}
			return chs[i].Name < chs[j].Name
		})
	case model.TabMostSubscribed:
		sort.Slice(chs, func(i, j int) bool {
			a, b := chs[i].Metrics.SubscriberCount, chs[j].Metrics.SubscriberCount
			if a != b {
				return a > b
			}
			return chs[i].Name < chs[j].Name
		})
	case model.TabViralHit:
		sort.Slice(chs, func(i, j int) bool {
			a, b := viralViews(chs[i]), viralViews(chs[j])
			if a != b {
				return a > b
			}
			return chs[i].Name < chs[j].Name
		})
	default: // top-creators
		sort.Slice(chs, func(i, j int) bool {
			if chs[i].TotalScore != chs[j].TotalScore {
				return chs[i].TotalScore > chs[j].TotalScore
			}
			return chs[i].Rank < chs[j].Rank
		})
	}
}

func viralViews(ch model.Channel) int64 {
	if ch.Metrics.ViralVideo == nil {
		return 0
	}
	return ch.Metrics.ViralVideo.Views
}

// baseRow fills the fields common to all tabs. Top-creators keeps the
// snapshot's stored rank for display and medals; the other tabs re-rank by
// position in the freshly sorted order.
func baseRow(ch model.Channel, tab model.Tab, position int) model.ProjectedRow {
	rank := position + 1
	if tab == model.TabTopCreators && ch.Rank > 0 {
		rank = ch.Rank
	}
	row := model.ProjectedRow{
		DisplayRank: rank,
		Name:        ch.Name,
		Handle:      ch.Handle,
		URL:         ch.URL,
		NotFound:    ch.Status == model.StatusChannelNotFound,
	}
	if rank >= 1 && rank <= len(medals) {
		row.Medal = medals[rank-1]
	}
	if tab == model.TabTopCreators {
		row.Badges = badgeDetails(ch)
	}
	return row
}

// badgeDetails resolves each badge symbol to its description; a symbol with
// no description anywhere is kept, description omitted.
func badgeDetails(ch model.Channel) []model.BadgeDetail {
	if len(ch.Badges) == 0 {
		return nil
	}
	out := make([]model.BadgeDetail, 0, len(ch.Badges))
	for _, symbol := range ch.Badges {
		detail := model.BadgeDetail{Symbol: symbol}
		if d, ok := model.DescribeBadge(symbol, ch.BadgeDescriptions); ok {
			detail.Name = d.Name
			detail.Message = d.Message
		}
		out = append(out, detail)
	}
	return out
}

func scoreView(ch model.Channel) *model.ScoreView {
	b := ch.Breakdown
	return &model.ScoreView{
		Total:             format.Number(ch.TotalScore),
		Basic:             format.Number(b.Basic),
		Engagement:        format.Number(b.Engagement),
		Viral:             format.Number(b.Viral),
		Growth:            format.Number(b.Growth),
		BasicPercent:      percentOf(b.Basic, ch.TotalScore),
		EngagementPercent: percentOf(b.Engagement, ch.TotalScore),
		ViralPercent:      percentOf(b.Viral, ch.TotalScore),
		GrowthPercent:     percentOf(b.Growth, ch.TotalScore),
	}
}

// percentOf returns round(component/total*100), and 0 when the total is 0.
func percentOf(component, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(component / total * 100))
}

func activityView(ch model.Channel) *model.ActivityView {
	return &model.ActivityView{
		VideoCount:   ch.Metrics.VideoCount,
		AverageViews: format.Number(ch.Metrics.AverageViews),
		AverageLikes: format.Number(ch.Metrics.AverageLikes),
	}
}

func subscriberView(ch model.Channel) *model.SubscriberView {
	m := ch.Metrics
	return &model.SubscriberView{
		Count:           format.Compact(m.SubscriberCount),
		Change:          format.SignedChange(m.SubscriberChange, m.SubscriberChangePercent),
		ChangePositive:  m.SubscriberChange >= 0,
		TotalVideoCount: m.TotalVideoCount,
	}
}

func viralView(ch model.Channel) *model.ViralView {
	video := ch.Metrics.ViralVideo
	if video == nil {
		video = &model.ViralVideo{}
	}
	return &model.ViralView{
		Views:      format.Count(video.Views),
		Likes:      format.Count(video.Likes),
		Comments:   format.Count(video.Comments),
		Engagement: engagement(video),
	}
}

// engagement weighs comments twice against views, two decimals; "0" when
// the video has no views so the ratio never divides by zero.
func engagement(v *model.ViralVideo) string {
	if v.Views <= 0 {
		return "0"
	}
	rate := float64(v.Likes+v.Comments*2) / float64(v.Views) * 100
	return fmt.Sprintf("%.2f", rate)
}
