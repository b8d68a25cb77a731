package file

import (
	"context"
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/matchdata-sync/internal/domain/blocklist"
	"github.com/riskibarqy/matchdata-sync/internal/platform/logging"
	"github.com/riskibarqy/matchdata-sync/internal/usecase"
)

// BlocklistRepository reads the hand-maintained {matches, events} file.
type BlocklistRepository struct {
	path   string
	logger *logging.Logger
}

var _ blocklist.Repository = (*BlocklistRepository)(nil)

func NewBlocklistRepository(path string, logger *logging.Logger) *BlocklistRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &BlocklistRepository{path: path, logger: logger}
}

// Load treats a missing file as an empty block-list.
func (r *BlocklistRepository) Load(ctx context.Context) (blocklist.List, error) {
	if strings.TrimSpace(r.path) == "" {
		return blocklist.List{}, crerr.Wrap(usecase.ErrInvalidInput, "block-list path is empty")
	}

	var out blocklist.List
	if err := decodeJSON(r.path, &out); err != nil {
		if os.IsNotExist(err) {
			r.logger.InfoContext(ctx, "block-list not found, nothing blocked", "path", r.path)
			return blocklist.List{Matches: []string{}, Events: []string{}}, nil
		}
		return blocklist.List{}, usecase.Persistence(err, "load block-list %s", r.path)
	}

	if out.Matches == nil {
		out.Matches = []string{}
	}
	if out.Events == nil {
		out.Events = []string{}
	}
	r.logger.DebugContext(ctx, "block-list loaded", "matches", len(out.Matches), "events", len(out.Events))
	return out, nil
}
