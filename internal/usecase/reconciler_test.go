package usecase

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/matchdata-sync/internal/domain/blocklist"
	"github.com/riskibarqy/matchdata-sync/internal/domain/corpus"
	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
)

var reconcileToday = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func emptyCorpus() corpus.Corpus {
	return corpus.Corpus{Matches: []match.Match{}, Events: []event.Event{}}
}

func TestReconcile_FirstRunBuildsCorpus(t *testing.T) {
	t.Parallel()

	fetched := []match.Match{
		newTestMatch(matchSpec{id: "M1", event: "E1", lan: true, start: 100, team1: "A", team2: "B"}),
		newTestMatch(matchSpec{id: "M2", event: "E1", lan: true, start: 200, team1: "A", team2: "C"}),
		newTestMatch(matchSpec{id: "M1", event: "E1", lan: true, start: 100, team1: "A", team2: "B"}),
		newTestMatch(matchSpec{id: "M3", event: "E1", lan: false, start: 150, team1: "D", team2: "E"}),
	}

	result := Reconcile(ReconcileInput{
		Previous: emptyCorpus(),
		Fetched:  fetched,
		Placements: []ExternalPlacement{
			{PageName: "Cup/2026", OpponentTemplate: "A", PrizeMoney: decimal.NewFromInt(5000), Placement: "1"},
		},
		Blocked: blocklist.List{}.Set(),
		Today:   reconcileToday,
	})

	if result.NewMatches != 3 {
		t.Fatalf("expected 3 new matches after dedup, got=%d", result.NewMatches)
	}
	if len(result.Output.Matches) != 3 {
		t.Fatalf("expected 3 persisted matches, got=%d", len(result.Output.Matches))
	}
	if got := result.Output.Matches[2].EventID; got != "E1_On" {
		t.Fatalf("expected online marker on online match, got=%s", got)
	}
	if len(result.Output.Events) != 2 || len(result.Eligible) != 2 {
		t.Fatalf("expected LAN and online events, got output=%d eligible=%d", len(result.Output.Events), len(result.Eligible))
	}
	winner := result.Output.Events[0].PrizeDistribution[0]
	if winner.TeamID != "A" || winner.Prize != 5000 || winner.Placement != "1" {
		t.Fatalf("expected placement to be applied, got %+v", winner)
	}
	if fetched[3].EventID != "E1" {
		t.Fatalf("fetched input must not be mutated, got event id %s", fetched[3].EventID)
	}
}

func TestReconcile_FinishedEventsAreFrozen(t *testing.T) {
	t.Parallel()

	frozen := finishedEvent("E1", "Cup/2026", "A", "B")
	frozen.EventName = "Frozen name"
	frozen.PrizePool = "$10"
	previous := corpus.Corpus{
		Matches: []match.Match{
			newTestMatch(matchSpec{id: "M1", event: "E1", lan: true, start: 100, team1: "A", team2: "B"}),
		},
		Events: []event.Event{frozen},
	}

	result := Reconcile(ReconcileInput{
		Previous: previous,
		Fetched: []match.Match{
			newTestMatch(matchSpec{id: "M2", event: "E1", lan: true, start: 300, team1: "A", team2: "Z"}),
		},
		Tournaments: []ExternalTournament{{PageName: "Cup/2026", PrizePool: decimal.NewFromInt(99999)}},
		Blocked:     blocklist.List{}.Set(),
		Today:       reconcileToday,
	})

	if len(result.Eligible) != 0 {
		t.Fatalf("finished event must not be eligible, got %+v", result.Eligible)
	}
	if len(result.Output.Events) != 1 {
		t.Fatalf("expected one event, got=%d", len(result.Output.Events))
	}
	got := result.Output.Events[0]
	if got.EventName != "Frozen name" || got.PrizePool != "$10" || len(got.PrizeDistribution) != 2 {
		t.Fatalf("finished event must be kept as persisted, got %+v", got)
	}
	if len(result.Output.Matches) != 2 || result.NewMatches != 1 {
		t.Fatalf("new match of frozen event must still be stored, got matches=%d new=%d", len(result.Output.Matches), result.NewMatches)
	}
}

func TestReconcile_ReplacesPreviouslyUnfinishedEvent(t *testing.T) {
	t.Parallel()

	stale := finishedEvent("E1", "Cup/2026", "A")
	stale.Finished = false
	other := finishedEvent("E0", "Old", "Q")
	previous := corpus.Corpus{
		Matches: []match.Match{
			newTestMatch(matchSpec{id: "M0", event: "E0", lan: true, start: 10, team1: "Q", team2: "R", page: "Old"}),
			newTestMatch(matchSpec{id: "M1", event: "E1", lan: true, start: 100, team1: "A", team2: "B"}),
		},
		Events: []event.Event{other, stale},
	}

	result := Reconcile(ReconcileInput{
		Previous: previous,
		Fetched: []match.Match{
			newTestMatch(matchSpec{id: "M2", event: "E1", lan: true, start: 200, team1: "A", team2: "C"}),
		},
		Tournaments: []ExternalTournament{{PageName: "Cup/2026", EndDate: "2026-10-01", PublisherTier: "1"}},
		Blocked:     blocklist.List{}.Set(),
		Today:       reconcileToday,
	})

	if len(result.Output.Events) != 2 {
		t.Fatalf("expected 2 events, got=%d", len(result.Output.Events))
	}
	if result.Output.Events[0].EventID != "E0" || result.Output.Events[1].EventID != "E1" {
		t.Fatalf("merge must keep previous event order, got %s, %s", result.Output.Events[0].EventID, result.Output.Events[1].EventID)
	}
	replaced := result.Output.Events[1]
	if !replaced.Finished || replaced.Tier != "1" || len(replaced.PrizeDistribution) != 3 {
		t.Fatalf("expected recomputed event, got %+v", replaced)
	}
	if previous.Events[1].Finished || len(previous.Events[1].PrizeDistribution) != 1 {
		t.Fatalf("previous corpus must not be mutated")
	}
}

func TestReconcile_DropsUnfinishedEventsAndTheirMatches(t *testing.T) {
	t.Parallel()

	result := Reconcile(ReconcileInput{
		Previous: emptyCorpus(),
		Fetched: []match.Match{
			newTestMatch(matchSpec{id: "M1", event: "E1", lan: true, start: 100, team1: "A", team2: "B"}),
			newTestMatch(matchSpec{id: "M2", event: "E2", lan: true, start: 100, team1: "A", team2: "B", page: "Live"}),
		},
		Tournaments: []ExternalTournament{{PageName: "Live", EndDate: "2026-10-18"}},
		Blocked:     blocklist.List{}.Set(),
		Today:       reconcileToday,
	})

	if len(result.Output.Events) != 1 || result.Output.Events[0].EventID != "E1" {
		t.Fatalf("expected only finished event, got %+v", result.Output.Events)
	}
	if len(result.Output.Matches) != 1 || result.Output.Matches[0].MatchID != "M1" {
		t.Fatalf("matches of unfinished events must be held back, got %+v", result.Output.Matches)
	}
	if len(result.Eligible) != 2 {
		t.Fatalf("unfinished event stays eligible for review, got=%d", len(result.Eligible))
	}
}

func TestReconcile_AppliesBlockList(t *testing.T) {
	t.Parallel()

	blocked := blocklist.List{Matches: []string{"M2"}, Events: []string{"E2"}}.Set()
	result := Reconcile(ReconcileInput{
		Previous: emptyCorpus(),
		Fetched: []match.Match{
			newTestMatch(matchSpec{id: "M1", event: "E1", lan: true, start: 100, team1: "A", team2: "B"}),
			newTestMatch(matchSpec{id: "M2", event: "E1", lan: true, start: 200, team1: "A", team2: "B"}),
			newTestMatch(matchSpec{id: "M3", event: "E2", lan: true, start: 300, team1: "A", team2: "B", page: "Other"}),
		},
		Blocked: blocked,
		Today:   reconcileToday,
	})

	if len(result.Output.Matches) != 1 || result.Output.Matches[0].MatchID != "M1" {
		t.Fatalf("unexpected persisted matches: %+v", result.Output.Matches)
	}
	if len(result.Output.Events) != 1 || result.Output.Events[0].EventID != "E1" {
		t.Fatalf("unexpected persisted events: %+v", result.Output.Events)
	}

	summaries := ReportSummaries(result.Eligible, blocked)
	if len(summaries) != 1 || summaries[0].EventID != "E1" {
		t.Fatalf("blocked events must not be reported, got %+v", summaries)
	}
}

func TestReconcile_IsIdempotent(t *testing.T) {
	t.Parallel()

	fetched := []match.Match{
		newTestMatch(matchSpec{id: "M1", event: "E1", lan: true, start: 100, team1: "A", team2: "B"}),
		newTestMatch(matchSpec{id: "M2", event: "E1", lan: false, start: 200, team1: "A", team2: "C"}),
		newTestMatch(matchSpec{id: "M3", event: "E2", lan: true, start: 300, team1: "C", team2: "D", page: "Cup/2026/Finals", parent: "Cup/2026"}),
	}
	placements := []ExternalPlacement{
		{PageName: "Cup/2026", OpponentTemplate: "C", PrizeMoney: decimal.NewFromInt(1000), Placement: "1"},
	}
	tournaments := []ExternalTournament{{PageName: "Cup/2026", EndDate: "2026-09-30", PrizePool: decimal.NewFromInt(250000)}}

	run := func(previous corpus.Corpus) corpus.Corpus {
		return Reconcile(ReconcileInput{
			Previous:    previous,
			Fetched:     fetched,
			Placements:  placements,
			Tournaments: tournaments,
			Blocked:     blocklist.List{}.Set(),
			Today:       reconcileToday,
		}).Output
	}

	first := run(emptyCorpus())
	second := run(first)

	firstRaw, err := sonic.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	secondRaw, err := sonic.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if string(firstRaw) != string(secondRaw) {
		t.Fatalf("second run changed the corpus:\nfirst=%s\nsecond=%s", firstRaw, secondRaw)
	}
}
