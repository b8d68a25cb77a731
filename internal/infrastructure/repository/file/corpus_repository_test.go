package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/matchdata-sync/internal/domain/blocklist"
	"github.com/riskibarqy/matchdata-sync/internal/domain/corpus"
	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
	"github.com/riskibarqy/matchdata-sync/internal/usecase"
)

func sampleCorpus(matchID string, startTime int64) corpus.Corpus {
	return corpus.Corpus{
		Matches: []match.Match{{
			MatchID:        matchID,
			EventID:        "E1",
			PageName:       "Cup/2026",
			MatchStartTime: startTime,
			Team1ID:        "a",
			Team2ID:        "b",
			Team1Players:   []match.Player{},
			Team2Players:   []match.Player{},
			Maps:           []match.MapScore{},
			ValveRanked:    true,
			LAN:            true,
		}},
		Events: []event.Event{{
			EventID:           "E1",
			EventPage:         "Cup/2026",
			Parent:            "Cup/2026",
			EventName:         "Cup 2026",
			PrizePool:         event.PlaceholderPrizePool,
			Finished:          true,
			FMT:               startTime,
			LMT:               startTime,
			PrizeDistribution: []event.PrizeItem{event.NewPrizeItem("a"), event.NewPrizeItem("b")},
		}},
	}
}

func TestCorpusRepository_LoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewCorpusRepository(filepath.Join(t.TempDir(), "matchdata.json"), logging.NewNop())
	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	if got.Matches == nil || got.Events == nil {
		t.Fatalf("expected non-nil empty slices, got %+v", got)
	}
	if len(got.Matches) != 0 || len(got.Events) != 0 {
		t.Fatalf("expected empty corpus, got %+v", got)
	}
}

func TestCorpusRepository_LoadCorruptFileIsPersistenceError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "matchdata.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := NewCorpusRepository(path, logging.NewNop()).Load(context.Background())
	if !crerr.Is(err, usecase.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestCorpusRepository_FirstSaveHasNoSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewCorpusRepository(filepath.Join(dir, "matchdata.json"), logging.NewNop())

	snapshot, err := repo.Save(context.Background(), sampleCorpus("M1", 1775066400), time.Time{})
	if err != nil {
		t.Fatalf("save corpus: %v", err)
	}
	if snapshot != "" {
		t.Fatalf("expected no snapshot on first save, got %s", snapshot)
	}

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("reload corpus: %v", err)
	}
	if len(loaded.Matches) != 1 || loaded.Matches[0].MatchID != "M1" {
		t.Fatalf("unexpected reloaded matches: %+v", loaded.Matches)
	}
	if len(loaded.Events) != 1 || len(loaded.Events[0].PrizeDistribution) != 2 {
		t.Fatalf("unexpected reloaded events: %+v", loaded.Events)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the corpus file, got %d entries", len(entries))
	}
}

func TestCorpusRepository_SaveSnapshotsPreviousContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "matchdata.json")
	repo := NewCorpusRepository(path, logging.NewNop())
	ctx := context.Background()

	if _, err := repo.Save(ctx, sampleCorpus("M1", 1775066400), time.Time{}); err != nil {
		t.Fatalf("seed corpus: %v", err)
	}
	previous, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read seeded corpus: %v", err)
	}

	snapshotAt := time.Unix(1775066400, 0)
	snapshot, err := repo.Save(ctx, sampleCorpus("M2", 1775152800), snapshotAt)
	if err != nil {
		t.Fatalf("save corpus: %v", err)
	}

	wantSnapshot := filepath.Join(dir, "matchdata_sample_20260401.json")
	if snapshot != wantSnapshot {
		t.Fatalf("unexpected snapshot path: got=%s want=%s", snapshot, wantSnapshot)
	}
	snapshotRaw, err := os.ReadFile(snapshot)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(snapshotRaw) != string(previous) {
		t.Fatalf("snapshot must hold the previous corpus byte for byte")
	}

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read corpus: %v", err)
	}
	if !strings.Contains(string(current), `"matchId": "M2"`) {
		t.Fatalf("expected new corpus content, got %s", current)
	}
}

func TestCorpusRepository_SnapshotNameNeverOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewCorpusRepository(filepath.Join(dir, "matchdata.json"), logging.NewNop())
	ctx := context.Background()
	snapshotAt := time.Date(2026, 4, 1, 23, 0, 0, 0, time.UTC)

	if _, err := repo.Save(ctx, sampleCorpus("M1", 1), time.Time{}); err != nil {
		t.Fatalf("seed corpus: %v", err)
	}

	want := []string{
		filepath.Join(dir, "matchdata_sample_20260401.json"),
		filepath.Join(dir, "matchdata_sample_20260401_2.json"),
		filepath.Join(dir, "matchdata_sample_20260401_3.json"),
	}
	for i, expected := range want {
		got, err := repo.Save(ctx, sampleCorpus("M1", int64(i+2)), snapshotAt)
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if got != expected {
			t.Fatalf("save %d: got snapshot %s want %s", i, got, expected)
		}
	}
}

func TestCorpusRepository_SnapshotSkipsTakenNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewCorpusRepository(filepath.Join(dir, "matchdata.json"), logging.NewNop())
	for _, name := range []string{"", "_2", "_3"} {
		if err := os.Mkdir(filepath.Join(dir, "matchdata_sample_20260401"+name+".json"), 0o755); err != nil {
			t.Fatalf("create taken name: %v", err)
		}
	}

	got, err := repo.nextSnapshotPath(time.Unix(1775066400, 0))
	if err != nil {
		t.Fatalf("next snapshot path: %v", err)
	}
	if filepath.Base(got) != "matchdata_sample_20260401_4.json" {
		t.Fatalf("unexpected next snapshot path: %s", got)
	}
}

func TestCorpusRepository_FailedSnapshotLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "matchdata.json")
	// A directory where the corpus should be cannot be snapshotted.
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("create blocker: %v", err)
	}

	repo := NewCorpusRepository(path, logging.NewNop())
	_, err := repo.Save(context.Background(), sampleCorpus("M1", 1775066400), time.Unix(1775066400, 0))
	if !crerr.Is(err, usecase.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "matchdata.json" {
			t.Fatalf("unexpected leftover file: %s", entry.Name())
		}
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Fatalf("existing entry must stay untouched")
	}
}

func TestCorpusRepository_EmptyPathIsInvalidInput(t *testing.T) {
	t.Parallel()

	repo := NewCorpusRepository(" ", logging.NewNop())
	if _, err := repo.Load(context.Background()); !crerr.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on load, got %v", err)
	}
	if _, err := repo.Save(context.Background(), corpus.Corpus{}, time.Time{}); !crerr.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on save, got %v", err)
	}
}

func fetchedMatch(matchID, eventID, page string, start int64, lan bool, team1, team2 string) match.Match {
	winner := 1
	return match.Match{
		MatchID:         matchID,
		EventID:         eventID,
		PageName:        page,
		ParentEventPage: "Major/2026",
		MatchStartTime:  start,
		Team1ID:         team1,
		Team1Name:       team1,
		Team2ID:         team2,
		Team2Name:       team2,
		Team1Players:    []match.Player{{PlayerID: "p1", Nick: "p1", Country: "France", CountryISO: "FR", SteamIDs: []string{}}},
		Team2Players:    []match.Player{},
		Maps:            []match.MapScore{{MapName: "mirage", Team1Score: 13, Team2Score: 9}},
		WinningTeam:     &winner,
		ValveRanked:     true,
		LAN:             lan,
	}
}

func TestCorpusRepository_ResyncOfSavedCorpusKeepsBytes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "matchdata.json")
	repo := NewCorpusRepository(path, logging.NewNop())
	ctx := context.Background()

	fetched := []match.Match{
		fetchedMatch("M1", "E1", "Major/2026/Stage_1", 1775066400, true, "vitality", "spirit"),
		fetchedMatch("M2", "E1", "Major/2026/Stage_1", 1775070000, false, "mouz", "vitality"),
		fetchedMatch("M3", "E2", "Major/2026/Playoffs", 1775152800, true, "spirit", "faze"),
	}
	input := usecase.ReconcileInput{
		Fetched: fetched,
		Placements: []usecase.ExternalPlacement{
			{PageName: "Major/2026", OpponentTemplate: "spirit", PrizeMoney: decimal.RequireFromString("1250.5"), Placement: "1"},
			{PageName: "Major/2026", OpponentTemplate: "faze", PrizeMoney: decimal.NewFromInt(500), Placement: "2"},
		},
		Tournaments: []usecase.ExternalTournament{
			{PageName: "Major/2026/Playoffs", EndDate: "2026-04-05", PublisherTier: "1", PrizePool: decimal.NewFromInt(1250000)},
		},
		Blocked: blocklist.List{}.Set(),
		Today:   time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	}

	previous, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load empty corpus: %v", err)
	}
	input.Previous = previous
	if _, err := repo.Save(ctx, usecase.Reconcile(input).Output, previous.LatestMatchTime()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	firstRaw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read first corpus: %v", err)
	}

	reloaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload corpus: %v", err)
	}
	if len(reloaded.Events) != 3 {
		t.Fatalf("expected 3 persisted events, got=%d", len(reloaded.Events))
	}
	input.Previous = reloaded
	snapshot, err := repo.Save(ctx, usecase.Reconcile(input).Output, reloaded.LatestMatchTime())
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	secondRaw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read second corpus: %v", err)
	}

	if string(firstRaw) != string(secondRaw) {
		t.Fatalf("resync changed persisted corpus:\nfirst=%s\nsecond=%s", firstRaw, secondRaw)
	}
	snapshotRaw, err := os.ReadFile(snapshot)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(snapshotRaw) != string(firstRaw) {
		t.Fatalf("snapshot must hold the first corpus")
	}
}
