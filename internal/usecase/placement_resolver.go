package usecase

import "github.com/riskibarqy/matchdata-sync/internal/domain/event"

type placementKey struct {
	page     string
	template string
}

// ApplyPlacements fills prize and placement for teams of finished events
// whose standings are final. Placements are looked up on the parent page,
// since the provider records them against the whole tournament.
func ApplyPlacements(events []event.Event, placements []ExternalPlacement) {
	byKey := make(map[placementKey]ExternalPlacement, len(placements))
	for _, item := range placements {
		byKey[placementKey{page: item.PageName, template: item.OpponentTemplate}] = item
	}

	for idx := range events {
		if !events[idx].Finished {
			continue
		}
		for i := range events[idx].PrizeDistribution {
			prize := &events[idx].PrizeDistribution[i]
			if prize.Progress {
				continue
			}
			found, ok := byKey[placementKey{page: events[idx].Parent, template: prize.TeamID}]
			if !ok {
				continue
			}
			prize.Prize = found.PrizeMoney.InexactFloat64()
			prize.Placement = found.Placement
			prize.Shared = event.IsSharedPlacement(found.Placement)
		}
	}
}
