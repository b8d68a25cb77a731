package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/matchdata-sync/internal/domain/blocklist"
	"github.com/riskibarqy/matchdata-sync/internal/domain/corpus"
	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/platform/id"
	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
)

const defaultLookback = 365 * 24 * time.Hour

type MatchDataSyncConfig struct {
	// Lookback is how far back match and placement fetches reach.
	Lookback time.Duration
}

type MatchDataSyncService struct {
	source    MatchDataSource
	corpus    corpus.Repository
	blocklist blocklist.Repository
	reports   event.ReportWriter
	ids       id.Generator
	logger    *logging.Logger
	cfg       MatchDataSyncConfig
}

func NewMatchDataSyncService(
	source MatchDataSource,
	corpusRepo corpus.Repository,
	blocklistRepo blocklist.Repository,
	reports event.ReportWriter,
	ids id.Generator,
	logger *logging.Logger,
	cfg MatchDataSyncConfig,
) *MatchDataSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = defaultLookback
	}
	return &MatchDataSyncService{
		source:    source,
		corpus:    corpusRepo,
		blocklist: blocklistRepo,
		reports:   reports,
		ids:       ids,
		logger:    logger,
		cfg:       cfg,
	}
}

type SyncInput struct {
	// Today is the reference date for fetch windows and tournament end dates.
	Today time.Time
	// DryRun computes the merge without writing the report or the corpus.
	DryRun bool
}

type SyncResult struct {
	RunID            string `json:"run_id"`
	FetchedMatches   int    `json:"fetched_matches"`
	UntrustedMatches int    `json:"untrusted_matches"`
	MalformedMatches int    `json:"malformed_matches"`
	NewMatches       int    `json:"new_matches"`
	UpdatedEvents    int    `json:"updated_events"`
	PersistedMatches int    `json:"persisted_matches"`
	PersistedEvents  int    `json:"persisted_events"`
	SnapshotPath     string `json:"snapshot_path,omitempty"`
	ReportPath       string `json:"report_path,omitempty"`
	DryRun           bool   `json:"dry_run"`
}

// Run performs one full sync. Every provider fetch completes before anything
// is written, so a fetch failure leaves the persisted data untouched.
func (s *MatchDataSyncService) Run(ctx context.Context, input SyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchDataSyncService.Run")
	defer span.End()

	if input.Today.IsZero() {
		return SyncResult{}, fmt.Errorf("%w: reference date is required", ErrInvalidInput)
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return SyncResult{}, fmt.Errorf("generate run id: %w", err)
	}
	logger := s.logger.With("run_id", runID)
	result := SyncResult{RunID: runID, DryRun: input.DryRun}

	blocked, err := s.blocklist.Load(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load block-list: %w", err)
	}
	previous, err := s.corpus.Load(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("load corpus: %w", err)
	}
	logger.InfoContext(ctx, "loaded persisted corpus",
		"matches", len(previous.Matches),
		"events", len(previous.Events),
		"blocked_matches", len(blocked.Matches),
		"blocked_events", len(blocked.Events),
	)

	window := NewFetchWindow(input.Today, s.cfg.Lookback)
	batch, err := s.source.FetchMatches(ctx, window)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch matches: %w", err)
	}
	result.FetchedMatches = len(batch.Matches)
	result.UntrustedMatches = batch.Untrusted
	result.MalformedMatches = batch.Malformed

	placements, err := s.source.FetchPlacements(ctx, window)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch placements: %w", err)
	}
	logger.InfoContext(ctx, "fetched placements", "count", len(placements))

	tournaments, err := s.source.FetchTournaments(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch tournaments: %w", err)
	}
	logger.InfoContext(ctx, "fetched tournaments", "count", len(tournaments))

	blockedSet := blocked.Set()
	reconciled := Reconcile(ReconcileInput{
		Previous:    previous,
		Fetched:     batch.Matches,
		Placements:  placements,
		Tournaments: tournaments,
		Blocked:     blockedSet,
		Today:       input.Today,
	})
	result.NewMatches = reconciled.NewMatches
	result.UpdatedEvents = len(reconciled.Eligible)
	result.PersistedMatches = len(reconciled.Output.Matches)
	result.PersistedEvents = len(reconciled.Output.Events)

	if input.DryRun {
		logger.InfoContext(ctx, "dry run, skipping writes",
			"new_matches", result.NewMatches,
			"updated_events", result.UpdatedEvents,
		)
		return result, nil
	}

	reportPath, err := s.reports.WriteReport(ctx, ReportSummaries(reconciled.Eligible, blockedSet))
	if err != nil {
		return SyncResult{}, fmt.Errorf("write updated events report: %w", err)
	}
	result.ReportPath = reportPath
	logger.InfoContext(ctx, "updated events report saved", "path", reportPath)

	snapshotPath, err := s.corpus.Save(ctx, reconciled.Output, previous.LatestMatchTime())
	if err != nil {
		return SyncResult{}, fmt.Errorf("save corpus: %w", err)
	}
	result.SnapshotPath = snapshotPath
	if snapshotPath != "" {
		logger.InfoContext(ctx, "previous corpus snapshot created", "path", snapshotPath)
	}

	logger.InfoContext(ctx, "corpus updated",
		"new_matches", result.NewMatches,
		"updated_events", result.UpdatedEvents,
		"persisted_matches", result.PersistedMatches,
		"persisted_events", result.PersistedEvents,
	)
	return result, nil
}
