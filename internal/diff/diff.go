// Package diff compares consecutive snapshots to annotate score changes.
package diff

import "github.com/orngfire/youtube-leaderboard/internal/model"

// Scores maps channel name to the signed total-score change versus the
// previous snapshot. Channels with no usable previous record, and channels
// whose score did not move, have no entry at all.
func Scores(current, previous []model.Channel) map[string]float64 {
	out := make(map[string]float64)
	if len(previous) == 0 {
		return out
	}

	prevScores := make(map[string]float64, len(previous))
	for _, ch := range previous {
		if ch.Status != model.StatusSuccess {
			continue
		}
		prevScores[ch.Name] = ch.TotalScore
	}

	for _, ch := range current {
		prev, ok := prevScores[ch.Name]
		if !ok {
			continue
		}
		if d := ch.TotalScore - prev; d != 0 {
			out[ch.Name] = d
		}
	}
	return out
}
