package corpus

import (
	"time"

	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
)

// Corpus is the persisted dataset consumed by the ranking model.
type Corpus struct {
	Matches []match.Match `json:"matches"`
	Events  []event.Event `json:"events"`
}

// LatestMatchTime returns the start time of the most recent match, or the
// zero time when the corpus holds no matches.
func (c Corpus) LatestMatchTime() time.Time {
	var latest int64
	for _, item := range c.Matches {
		if item.MatchStartTime > latest {
			latest = item.MatchStartTime
		}
	}
	if latest == 0 {
		return time.Time{}
	}
	return time.Unix(latest, 0).UTC()
}
