package usecase

import (
	"strings"
	"time"

	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/platform/currency"
)

const tournamentDateLayout = "2006-01-02"

// EnrichWithTournaments overlays tournament metadata onto events sharing the
// tournament page. An event whose tournament ends today or later is demoted
// to unfinished so it is not frozen early, e.g. when the last match was a
// forfeit. The prize pool does not account for club shares.
func EnrichWithTournaments(events []event.Event, tournaments []ExternalTournament, today time.Time) {
	byPage := make(map[string]ExternalTournament, len(tournaments))
	for _, item := range tournaments {
		byPage[item.PageName] = item
	}
	day := truncateDay(today)

	for idx := range events {
		found, ok := byPage[events[idx].EventPage]
		if !ok {
			continue
		}
		events[idx].Overlay(tournamentPatch(found, day))
	}
}

func tournamentPatch(t ExternalTournament, today time.Time) event.Patch {
	var patch event.Patch
	if end, err := time.Parse(tournamentDateLayout, strings.TrimSpace(t.EndDate)); err == nil && !today.After(end) {
		unfinished := false
		patch.Finished = &unfinished
	}
	if tier := strings.TrimSpace(t.PublisherTier); tier != "" {
		patch.Tier = &tier
	}
	if !t.PrizePool.IsZero() {
		pool := currency.FormatUSD(t.PrizePool)
		patch.PrizePool = &pool
	}
	return patch
}
