package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
)

type ReportWriter struct {
	mu      sync.RWMutex
	reports [][]event.Summary
}

var _ event.ReportWriter = (*ReportWriter)(nil)

func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

func (w *ReportWriter) WriteReport(_ context.Context, items []event.Summary) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.reports = append(w.reports, append([]event.Summary{}, items...))
	return "memory://updated_events.json", nil
}

// Reports returns every report written so far, oldest first.
func (w *ReportWriter) Reports() [][]event.Summary {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([][]event.Summary, 0, len(w.reports))
	for _, items := range w.reports {
		out = append(out, append([]event.Summary{}, items...))
	}
	return out
}
