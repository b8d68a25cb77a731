package event

import "context"

// ReportWriter persists the summaries of events touched by a run.
type ReportWriter interface {
	WriteReport(ctx context.Context, items []Summary) (string, error)
}
