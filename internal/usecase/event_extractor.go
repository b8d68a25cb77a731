package usecase

import (
	"sort"
	"strings"

	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
)

// showmatchToken flags exhibition parents. Stage pages of a showmatch do not
// always carry it in their parent name, so some showmatches slip through.
const showmatchToken = "showmatch"

type eventGroupKey struct {
	eventID string
	lan     bool
}

// ExtractEvents groups matches by (event id, lan) and derives one candidate
// event per group. Groups come out in first-encounter order. Every event
// starts finished with a placeholder prize pool; items of events that are not
// the last stage of their parent tournament are marked in progress.
func ExtractEvents(matches []match.Match) []event.Event {
	groups := make(map[eventGroupKey][]match.Match, len(matches)/4+1)
	order := make([]eventGroupKey, 0, len(matches)/4+1)
	for _, item := range matches {
		key := eventGroupKey{eventID: item.EventID, lan: item.LAN}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}

	events := make([]event.Event, 0, len(order))
	parentLMT := make(map[string]int64, len(order))
	for _, key := range order {
		group := groups[key]
		if isShowmatchParent(group[0].ParentEventPage) {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].MatchStartTime < group[j].MatchStartTime
		})
		first := group[0]

		item := event.Event{
			EventID:           key.eventID,
			EventPage:         first.PageName,
			Parent:            first.ParentEventPage,
			EventName:         event.NameFromPage(first.PageName),
			PrizePool:         event.PlaceholderPrizePool,
			LAN:               key.lan,
			ValveRanked:       true,
			Finished:          true,
			FMT:               first.MatchStartTime,
			LMT:               group[len(group)-1].MatchStartTime,
			DifferingParent:   first.ParentEventPage != first.PageName,
			PrizeDistribution: prizeDistribution(group),
		}
		events = append(events, item)

		if current, ok := parentLMT[item.Parent]; !ok || current < item.LMT {
			parentLMT[item.Parent] = item.LMT
		}
	}

	for idx := range events {
		if events[idx].LMT >= parentLMT[events[idx].Parent] {
			continue
		}
		for i := range events[idx].PrizeDistribution {
			events[idx].PrizeDistribution[i].Progress = true
		}
	}

	return events
}

func prizeDistribution(group []match.Match) []event.PrizeItem {
	seen := make(map[string]struct{}, 16)
	out := make([]event.PrizeItem, 0, 16)
	for _, item := range group {
		for _, teamID := range item.TeamIDs() {
			if teamID == "" {
				continue
			}
			if _, ok := seen[teamID]; ok {
				continue
			}
			seen[teamID] = struct{}{}
			out = append(out, event.NewPrizeItem(teamID))
		}
	}
	return out
}

func isShowmatchParent(parent string) bool {
	return strings.Contains(strings.ToLower(parent), showmatchToken)
}
