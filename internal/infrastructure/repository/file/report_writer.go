package file

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/matchdata-sync/internal/domain/event"
	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
	"github.com/riskibarqy/matchdata-sync/internal/usecase"
)

// ReportWriter replaces the updated-events report on every run.
type ReportWriter struct {
	path   string
	logger *logging.Logger
}

var _ event.ReportWriter = (*ReportWriter)(nil)

func NewReportWriter(path string, logger *logging.Logger) *ReportWriter {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportWriter{path: path, logger: logger}
}

func (w *ReportWriter) WriteReport(ctx context.Context, items []event.Summary) (string, error) {
	if strings.TrimSpace(w.path) == "" {
		return "", crerr.Wrap(usecase.ErrInvalidInput, "report path is empty")
	}
	if items == nil {
		items = []event.Summary{}
	}

	buf, err := encodeJSON(items)
	if err != nil {
		return "", usecase.Persistence(err, "encode report")
	}
	defer bytebufferpool.Put(buf)

	if err := writeFileAtomic(w.path, buf.B); err != nil {
		return "", usecase.Persistence(err, "write report %s", w.path)
	}

	w.logger.InfoContext(ctx, "updated events report saved", "path", w.path, "events", len(items))
	return w.path, nil
}
