package model

// Snapshot is one fetched, normalized leaderboard payload.
// Exactly one previous snapshot is retained at a time, for score diffing.
type Snapshot struct {
	// LastUpdated is the producer's ISO-8601 timestamp, kept verbatim.
	// Formatting (and validation) happens at display time.
	LastUpdated string   `json:"last_updated"`
	Period      *Period  `json:"period,omitempty"`
	Channels    []Channel `json:"channels"`
}

// Period is the evaluation window published alongside the snapshot.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
