package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
)

// FetchWindow bounds the match dates requested from the provider. Both ends
// are exclusive, mirroring the provider's date conditions.
type FetchWindow struct {
	After  time.Time
	Before time.Time
}

// NewFetchWindow covers [today-lookback, today+1d) at day granularity.
func NewFetchWindow(today time.Time, lookback time.Duration) FetchWindow {
	day := truncateDay(today)
	return FetchWindow{
		After:  day.Add(-lookback),
		Before: day.AddDate(0, 0, 1),
	}
}

// MatchBatch is the formatted result of a full match fetch.
type MatchBatch struct {
	Matches   []match.Match
	Untrusted int
	Malformed int
}

// ExternalPlacement is one provider placement row.
type ExternalPlacement struct {
	PageName         string
	OpponentTemplate string
	PrizeMoney       decimal.Decimal
	Placement        string
}

// ExternalTournament is the tournament-level metadata for one page.
type ExternalTournament struct {
	PageName      string
	EndDate       string
	PublisherTier string
	PrizePool     decimal.Decimal
}

// MatchDataSource is the paginated provider connector. Any error returned is
// fatal for the run.
type MatchDataSource interface {
	FetchMatches(ctx context.Context, window FetchWindow) (MatchBatch, error)
	FetchPlacements(ctx context.Context, window FetchWindow) ([]ExternalPlacement, error)
	FetchTournaments(ctx context.Context) ([]ExternalTournament, error)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
