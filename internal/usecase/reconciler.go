package usecase

import (
	"time"

	"github.com/riskibarqy/matchdata-sync/internal/domain/blocklist"
	"github.com/riskibarqy/matchdata-sync/internal/domain/corpus"
	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
)

type ReconcileInput struct {
	Previous    corpus.Corpus
	Fetched     []match.Match
	Placements  []ExternalPlacement
	Tournaments []ExternalTournament
	Blocked     blocklist.Set
	Today       time.Time
}

type ReconcileResult struct {
	// Output is the corpus to persist, already filtered by the block-list.
	Output corpus.Corpus
	// Eligible holds the recomputed events allowed to replace persisted ones.
	Eligible   []event.Event
	NewMatches int
}

// Reconcile merges freshly fetched matches into the previous corpus. Events
// are re-derived from the full match history, but an event that is finished
// in the previous corpus is never replaced.
func Reconcile(input ReconcileInput) ReconcileResult {
	known := make(map[string]struct{}, len(input.Previous.Matches)+len(input.Fetched))
	allMatches := make([]match.Match, 0, len(input.Previous.Matches)+len(input.Fetched))
	for _, item := range input.Previous.Matches {
		known[item.MatchID] = struct{}{}
		allMatches = append(allMatches, item)
	}
	newMatches := 0
	for _, item := range input.Fetched {
		if _, ok := known[item.MatchID]; ok {
			continue
		}
		known[item.MatchID] = struct{}{}
		allMatches = append(allMatches, item)
		newMatches++
	}
	for idx := range allMatches {
		allMatches[idx].EventID = match.WithOnlineMarker(allMatches[idx].EventID, allMatches[idx].LAN)
	}

	candidates := ExtractEvents(allMatches)
	ApplyPlacements(candidates, input.Placements)
	EnrichWithTournaments(candidates, input.Tournaments, input.Today)

	previousFinished := make(map[string]bool, len(input.Previous.Events))
	for _, item := range input.Previous.Events {
		previousFinished[item.EventID] = item.Finished
	}
	eligible := make([]event.Event, 0, len(candidates))
	for _, item := range candidates {
		if finished, seen := previousFinished[item.EventID]; seen && finished {
			continue
		}
		eligible = append(eligible, item)
	}

	merged := mergeEvents(input.Previous.Events, eligible)

	return ReconcileResult{
		Output:     filterOutput(allMatches, merged, input.Blocked),
		Eligible:   eligible,
		NewMatches: newMatches,
	}
}

// mergeEvents keeps the order of previous events, replacing in place, and
// appends events that were not persisted before.
func mergeEvents(previous, updates []event.Event) []event.Event {
	position := make(map[string]int, len(previous)+len(updates))
	out := make([]event.Event, 0, len(previous)+len(updates))
	upsert := func(item event.Event) {
		if idx, ok := position[item.EventID]; ok {
			out[idx] = item
			return
		}
		position[item.EventID] = len(out)
		out = append(out, item)
	}
	for _, item := range previous {
		upsert(item.Clone())
	}
	for _, item := range updates {
		upsert(item)
	}
	return out
}

func filterOutput(matches []match.Match, events []event.Event, blocked blocklist.Set) corpus.Corpus {
	retained := make(map[string]struct{}, len(events))
	outEvents := make([]event.Event, 0, len(events))
	for _, item := range events {
		if blocked.EventBlocked(item.EventID) || !item.Finished {
			continue
		}
		retained[item.EventID] = struct{}{}
		outEvents = append(outEvents, item)
	}

	outMatches := make([]match.Match, 0, len(matches))
	for _, item := range matches {
		if blocked.MatchBlocked(item.MatchID) || blocked.EventBlocked(item.EventID) {
			continue
		}
		if _, ok := retained[item.EventID]; !ok {
			continue
		}
		outMatches = append(outMatches, item)
	}

	return corpus.Corpus{Matches: outMatches, Events: outEvents}
}

// ReportSummaries projects the eligible events of a run for human review,
// leaving out block-listed events.
func ReportSummaries(eligible []event.Event, blocked blocklist.Set) []event.Summary {
	out := make([]event.Summary, 0, len(eligible))
	for _, item := range eligible {
		if blocked.EventBlocked(item.EventID) {
			continue
		}
		out = append(out, item.Summary())
	}
	return out
}
